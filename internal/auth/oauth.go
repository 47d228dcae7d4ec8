package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fivetwenty-io/oadr3/internal/constants"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// OAuth2Config configures the client credentials exchange.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// HTTPClient sends the token request. Defaults to a client with the
	// default timeout.
	HTTPClient *http.Client
	// Now is the clock used for expiry decisions. Defaults to time.Now.
	Now func() time.Time
}

// OAuth2TokenManager obtains tokens with the client credentials grant and
// caches them until they are within the expiry buffer.
type OAuth2TokenManager struct {
	credentials *clientcredentials.Config
	httpClient  *http.Client
	store       *TokenStore
	now         func() time.Time
}

// NewOAuth2TokenManager creates a token manager for config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &OAuth2TokenManager{
		credentials: &clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenURL,
			Scopes:       config.Scopes,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: withAcceptJSON(httpClient),
		store:      NewTokenStore(),
		now:        now,
	}
}

// GetToken returns the cached token while it is valid, and otherwise performs
// a new exchange. A token is reused while expires_at >= now + 30s: one issued
// with expires_in=3600 is returned from cache up to and including t=3570 and
// re-exchanged from t=3571 on.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.ValidAt(m.now()) {
		return token.AccessToken, nil
	}

	token, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken discards the cached token and performs a new exchange.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.store.Clear()

	_, err := m.fetch(ctx)

	return err
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// Token returns the cached token, or nil.
func (m *OAuth2TokenManager) Token() *Token {
	return m.store.Get()
}

func (m *OAuth2TokenManager) fetch(ctx context.Context) (*Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	exchanged, err := m.credentials.Token(ctx)
	if err != nil {
		return nil, toAuthenticationError(err)
	}

	expiresIn := exchanged.ExpiresIn
	if seconds, ok := exchanged.Extra("expires_in").(float64); ok && expiresIn == 0 {
		expiresIn = int64(seconds)
	}

	raw := map[string]interface{}{
		"access_token": exchanged.AccessToken,
		"token_type":   exchanged.TokenType,
		"expires_in":   expiresIn,
	}
	if scope, ok := exchanged.Extra("scope").(string); ok {
		raw["scope"] = scope
	}

	result := oadr3.ValidateOAuth2Token(raw)
	if !result.Success {
		return nil, &oadr3.AuthenticationError{
			Message: "invalid token response: " + strings.Join(result.Errors, "; "),
			Err:     result.Err(),
		}
	}

	issuedAt := m.now()
	token := &Token{
		AccessToken: result.Data.AccessToken,
		TokenType:   result.Data.TokenType,
		Scope:       result.Data.Scope,
		ExpiresIn:   result.Data.ExpiresIn,
		ExpiresAt:   issuedAt.Add(time.Duration(result.Data.ExpiresIn) * time.Second),
	}

	m.store.Set(token)

	return token, nil
}

func toAuthenticationError(err error) error {
	if errors.Is(err, oadr3.ErrClientClosed) {
		return oadr3.ErrClientClosed
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &oadr3.AuthenticationError{
			Message:    fmt.Sprintf("token request rejected: %s", strings.TrimSpace(string(retrieveErr.Body))),
			StatusCode: retrieveErr.Response.StatusCode,
			Err:        err,
		}
	}

	return &oadr3.AuthenticationError{
		Message: fmt.Sprintf("token request failed: %v", err),
		Err:     err,
	}
}

// acceptJSONTransport sets Accept: application/json on token requests.
type acceptJSONTransport struct {
	base http.RoundTripper
}

func (t *acceptJSONTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Accept", constants.ContentTypeJSON)

	return t.base.RoundTrip(clone)
}

func withAcceptJSON(client *http.Client) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	wrapped := *client
	wrapped.Transport = &acceptJSONTransport{base: base}

	return &wrapped
}
