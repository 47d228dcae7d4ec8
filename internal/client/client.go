package client

import (
	"context"
	"errors"
	"strings"

	"github.com/fivetwenty-io/oadr3/internal/auth"
	"github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
)

// Client implements oadr3.Client on top of the authenticated transport.
type Client struct {
	httpClient   *http.Client
	tokenManager oadr3.TokenManager
	config       *oadr3.Config
	logger       oadr3.Logger

	programs      *ProgramsClient
	events        *EventsClient
	reports       *ReportsClient
	vens          *VensClient
	subscriptions *SubscriptionsClient
}

// New creates a client that obtains tokens with the OAuth2 client credentials
// grant against {base_url}/auth/token.
func New(config *oadr3.Config, opts ...oadr3.Option) (*Client, error) {
	if config == nil {
		return nil, &oadr3.ConfigurationError{Message: ErrConfigRequired.Error()}
	}

	options := oadr3.ApplyOptions(opts...)
	httpClient := http.NewClient(config.BaseURL(), nil, createHTTPClientOptions(config, options)...)

	var scopes []string
	if scope := strings.TrimSpace(config.Scope()); scope != "" {
		scopes = []string{scope}
	}

	tokenManager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:     config.TokenURL(),
		ClientID:     config.ClientID(),
		ClientSecret: config.ClientSecret(),
		Scopes:       scopes,
		HTTPClient:   httpClient.StandardClient(),
	})
	httpClient.SetTokenManager(tokenManager)

	return newClient(config, httpClient, tokenManager, options), nil
}

// NewWithTokenManager creates a client that takes its bearer tokens from
// tokenManager instead of performing the client credentials exchange.
func NewWithTokenManager(config *oadr3.Config, tokenManager oadr3.TokenManager, opts ...oadr3.Option) (*Client, error) {
	if config == nil {
		return nil, &oadr3.ConfigurationError{Message: ErrConfigRequired.Error()}
	}

	if tokenManager == nil {
		return nil, &oadr3.ConfigurationError{Message: oadr3.ErrTokenManagerNeeded.Error()}
	}

	options := oadr3.ApplyOptions(opts...)
	httpClient := http.NewClient(config.BaseURL(), tokenManager, createHTTPClientOptions(config, options)...)

	return newClient(config, httpClient, tokenManager, options), nil
}

func newClient(config *oadr3.Config, httpClient *http.Client, tokenManager oadr3.TokenManager, options *oadr3.Options) *Client {
	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		config:       config,
		logger:       options.Logger,
	}

	client.initializeResourceClients()

	client.logger.Debug("OpenADR client created", map[string]interface{}{
		"base_url": config.BaseURL(),
		"timeout":  config.Timeout().String(),
	})

	return client
}

func createHTTPClientOptions(config *oadr3.Config, options *oadr3.Options) []http.Option {
	httpOpts := []http.Option{
		http.WithLogger(&loggerAdapter{logger: options.Logger}),
		http.WithTimeout(config.Timeout()),
	}

	if options.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if options.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(options.UserAgent))
	}

	if options.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(options.Interceptors))
	}

	return httpOpts
}

func (c *Client) initializeResourceClients() {
	c.programs = NewProgramsClient(c.httpClient)
	c.events = NewEventsClient(c.httpClient)
	c.reports = NewReportsClient(c.httpClient)
	c.vens = NewVensClient(c.httpClient)
	c.subscriptions = NewSubscriptionsClient(c.httpClient)
}

// Programs implements oadr3.Client.
func (c *Client) Programs() oadr3.ProgramsClient { return c.programs }

// Events implements oadr3.Client.
func (c *Client) Events() oadr3.EventsClient { return c.events }

// Reports implements oadr3.Client.
func (c *Client) Reports() oadr3.ReportsClient { return c.reports }

// Vens implements oadr3.Client.
func (c *Client) Vens() oadr3.VensClient { return c.vens }

// Subscriptions implements oadr3.Client.
func (c *Client) Subscriptions() oadr3.SubscriptionsClient { return c.subscriptions }

// Config returns the connection configuration.
func (c *Client) Config() *oadr3.Config { return c.config }

// GetToken returns the current bearer token.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.httpClient.Closed() {
		return "", oadr3.ErrClientClosed
	}

	return c.tokenManager.GetToken(ctx)
}

// Close releases the client's connections.
func (c *Client) Close() error {
	c.logger.Debug("OpenADR client closed", map[string]interface{}{
		"base_url": c.config.BaseURL(),
	})

	return c.httpClient.Close()
}

// loggerAdapter adapts oadr3.Logger to http.Logger.
type loggerAdapter struct {
	logger oadr3.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
