package oadr3

import (
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/oadr3/internal/constants"
)

// DefaultTimeout is applied to every request when no timeout option is given.
const DefaultTimeout = constants.DefaultHTTPTimeout

// Config holds the validated connection parameters of a client. A Config is
// immutable once built; use NewConfig to construct one.
type Config struct {
	baseURL      string
	clientID     string
	clientSecret string
	scope        string
	timeout      time.Duration
}

// ConfigOption customizes optional Config fields.
type ConfigOption func(*Config)

// WithScope sets the OAuth2 scope requested with every token exchange.
func WithScope(scope string) ConfigOption {
	return func(c *Config) {
		c.scope = scope
	}
}

// WithTimeout sets the per-request timeout. It must be positive.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.timeout = timeout
	}
}

// NewConfig validates the parameters and returns a Config. A single trailing
// slash is removed from baseURL.
func NewConfig(baseURL, clientID, clientSecret string, opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		timeout:      DefaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	switch {
	case cfg.baseURL == "":
		return nil, &ConfigurationError{Message: "base_url cannot be empty"}
	case cfg.clientID == "":
		return nil, &ConfigurationError{Message: "client_id cannot be empty"}
	case cfg.clientSecret == "":
		return nil, &ConfigurationError{Message: "client_secret cannot be empty"}
	case cfg.timeout <= 0:
		return nil, &ConfigurationError{Message: "timeout must be positive"}
	}

	cfg.baseURL = strings.TrimSuffix(cfg.baseURL, "/")

	return cfg, nil
}

// BaseURL returns the VTN base URL without a trailing slash.
func (c *Config) BaseURL() string { return c.baseURL }

// ClientID returns the OAuth2 client identifier.
func (c *Config) ClientID() string { return c.clientID }

// ClientSecret returns the OAuth2 client secret.
func (c *Config) ClientSecret() string { return c.clientSecret }

// Scope returns the requested OAuth2 scope, or "" when unset.
func (c *Config) Scope() string { return c.scope }

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration { return c.timeout }

// TokenURL returns the endpoint used for the client credentials exchange.
func (c *Config) TokenURL() string { return c.baseURL + constants.TokenPath }

// String implements fmt.Stringer without exposing the client secret.
func (c *Config) String() string {
	return fmt.Sprintf("Config(base_url=%q, client_id=%q, client_secret=***, scope=%q, timeout=%s)",
		c.baseURL, c.clientID, c.scope, c.timeout)
}
