// Package oadr3client provides the main entry point for creating OpenADR 3 VTN clients
package oadr3client

import (
	"fmt"

	"github.com/fivetwenty-io/oadr3/internal/client"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// New creates a client that authenticates with the OAuth2 client credentials
// grant against the VTN's /auth/token endpoint. No network call is made until
// the first operation.
func New(config *oadr3.Config, opts ...oadr3.Option) (oadr3.Client, error) {
	c, err := client.New(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithTokenManager creates a client that takes bearer tokens from
// tokenManager, for callers that obtain tokens out of band.
func NewWithTokenManager(config *oadr3.Config, tokenManager oadr3.TokenManager, opts ...oadr3.Option) (oadr3.Client, error) {
	c, err := client.NewWithTokenManager(config, tokenManager, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithClientCredentials builds the configuration and the client in one step.
func NewWithClientCredentials(baseURL, clientID, clientSecret string, opts ...oadr3.Option) (oadr3.Client, error) {
	config, err := oadr3.NewConfig(baseURL, clientID, clientSecret)
	if err != nil {
		return nil, err
	}

	return New(config, opts...)
}
