package constants

import "errors"

// Configuration errors.
var (
	ErrNoBaseURL         = errors.New("no base URL configured, use 'oadr3 config set base_url <url>' or --base-url")
	ErrNoClientID        = errors.New("no client ID configured, use 'oadr3 config set client_id <id>' or --client-id")
	ErrNoClientSecret    = errors.New("no client secret configured and stdin is not a terminal")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidOutput     = errors.New("invalid output format")
	ErrInvalidTimeout    = errors.New("timeout must be a positive duration such as 30s")
	ErrFileRequired      = errors.New("--file flag is required")
	ErrDocumentNotObject = errors.New("document must be a mapping of fields")
)

// ErrProblemResponse is returned by CLI commands when the VTN answers with a
// problem document.
var ErrProblemResponse = errors.New("server returned an error response")
