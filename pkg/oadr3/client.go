package oadr3

import (
	"context"
	"time"
)

// ResourceClients provides access to the per-collection clients.
type ResourceClients interface {
	Programs() ProgramsClient
	Events() EventsClient
	Reports() ReportsClient
	Vens() VensClient
	Subscriptions() SubscriptionsClient
}

// Client is an authenticated OpenADR 3 VTN client. It owns its connections and
// must be closed; after Close every call fails with ErrClientClosed.
type Client interface {
	ResourceClients

	// GetToken returns a valid bearer token, exchanging credentials when the
	// cached token is missing or about to expire.
	GetToken(ctx context.Context) (string, error)

	// Close releases idle connections. It is safe to call more than once.
	Close() error
}

// ProgramsClient manages /programs.
type ProgramsClient interface {
	List(ctx context.Context, search *ProgramSearch) (*APIResponse[[]Program], error)
	Create(ctx context.Context, program *Program) (*APIResponse[Program], error)
	Get(ctx context.Context, programID string) (*APIResponse[Program], error)
	Update(ctx context.Context, programID string, program *Program) (*APIResponse[Program], error)
	Delete(ctx context.Context, programID string) (*APIResponse[any], error)
}

// EventsClient manages /events.
type EventsClient interface {
	List(ctx context.Context, search *EventSearch) (*APIResponse[[]Event], error)
	Create(ctx context.Context, event *Event) (*APIResponse[Event], error)
	Get(ctx context.Context, eventID string) (*APIResponse[Event], error)
	Update(ctx context.Context, eventID string, event *Event) (*APIResponse[Event], error)
	Delete(ctx context.Context, eventID string) (*APIResponse[any], error)
}

// ReportsClient manages /reports.
type ReportsClient interface {
	List(ctx context.Context, search *ReportSearch) (*APIResponse[[]Report], error)
	Create(ctx context.Context, report *Report) (*APIResponse[Report], error)
	Get(ctx context.Context, reportID string) (*APIResponse[Report], error)
	Update(ctx context.Context, reportID string, report *Report) (*APIResponse[Report], error)
	Delete(ctx context.Context, reportID string) (*APIResponse[any], error)
}

// VensClient manages /vens and the resources nested under each VEN.
type VensClient interface {
	List(ctx context.Context, search *VenSearch) (*APIResponse[[]Ven], error)
	Create(ctx context.Context, ven *Ven) (*APIResponse[Ven], error)
	Get(ctx context.Context, venID string) (*APIResponse[Ven], error)
	Update(ctx context.Context, venID string, ven *Ven) (*APIResponse[Ven], error)
	Delete(ctx context.Context, venID string) (*APIResponse[any], error)

	ListResources(ctx context.Context, venID string, search *VenResourceSearch) (*APIResponse[[]VenResource], error)
	CreateResource(ctx context.Context, venID string, resource *VenResource) (*APIResponse[VenResource], error)
	GetResource(ctx context.Context, venID, resourceID string) (*APIResponse[VenResource], error)
	UpdateResource(ctx context.Context, venID, resourceID string, resource *VenResource) (*APIResponse[VenResource], error)
	DeleteResource(ctx context.Context, venID, resourceID string) (*APIResponse[any], error)
}

// SubscriptionsClient manages /subscriptions.
type SubscriptionsClient interface {
	List(ctx context.Context, search *SubscriptionSearch) (*APIResponse[[]Subscription], error)
	Create(ctx context.Context, subscription *Subscription) (*APIResponse[Subscription], error)
	Get(ctx context.Context, subscriptionID string) (*APIResponse[Subscription], error)
	Update(ctx context.Context, subscriptionID string, subscription *Subscription) (*APIResponse[Subscription], error)
	Delete(ctx context.Context, subscriptionID string) (*APIResponse[any], error)
}

// TokenManager supplies bearer tokens to the transport. RefreshToken always
// performs a new exchange; GetToken reuses the cached token while it is valid.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NoopLogger discards every message.
type NoopLogger struct{}

func (NoopLogger) Debug(string, map[string]interface{}) {}
func (NoopLogger) Info(string, map[string]interface{})  {}
func (NoopLogger) Warn(string, map[string]interface{})  {}
func (NoopLogger) Error(string, map[string]interface{}) {}

// Options holds client behaviour that is not part of the connection Config.
type Options struct {
	// Logger receives transport and client logs. Defaults to NoopLogger.
	Logger Logger
	// Debug enables request/response logging through Logger.
	Debug bool
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Interceptors run around every API request.
	Interceptors *InterceptorChain
}

// Option customizes client Options.
type Option func(*Options)

// WithLogger sets the logger used by the client.
func WithLogger(logger Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		o.UserAgent = userAgent
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *InterceptorChain) Option {
	return func(o *Options) {
		o.Interceptors = chain
	}
}

// ApplyOptions returns Options with defaults filled in and opts applied.
func ApplyOptions(opts ...Option) *Options {
	options := &Options{Logger: NoopLogger{}}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = NoopLogger{}
	}

	return options
}
