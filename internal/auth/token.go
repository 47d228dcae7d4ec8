package auth

import (
	"sync"
	"time"

	"github.com/fivetwenty-io/oadr3/internal/constants"
)

// Token is a cached bearer token with its absolute expiry.
type Token struct {
	AccessToken string
	TokenType   string
	Scope       string
	ExpiresIn   int64
	ExpiresAt   time.Time
}

// Valid reports whether the token can be used now.
func (t *Token) Valid() bool {
	return t.ValidAt(time.Now())
}

// ValidAt reports whether the token is usable at now. A token stays valid
// while at least the 30-second buffer remains before ExpiresAt, so a token
// issued with expires_in=3600 is usable through t=3570 and stale after it.
// A token without an expiry never expires.
func (t *Token) ValidAt(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return !t.ExpiresAt.Before(now.Add(constants.TokenExpiryBuffer))
}

// TokenStore holds the current token. Access is serialized, but concurrent
// callers that both observe a stale token will each fetch a new one.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.Set(nil)
}
