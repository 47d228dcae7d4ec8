package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// TokenExpiryBuffer is how long before its expiry a cached token is
	// considered stale.
	TokenExpiryBuffer = 30 * time.Second
)

// Transport defaults.
const (
	// DefaultUserAgent is sent when no user agent option is given.
	DefaultUserAgent = "oadr3-go/1.0"

	// ContentTypeJSON is the media type of API bodies.
	ContentTypeJSON = "application/json"
)

// VTN endpoint paths, relative to the configured base URL.
const (
	TokenPath         = "/auth/token"
	ProgramsPath      = "/programs"
	EventsPath        = "/events"
	ReportsPath       = "/reports"
	VensPath          = "/vens"
	SubscriptionsPath = "/subscriptions"
	ResourcesSegment  = "resources"
)

// CLI output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)
