package oadr3

import (
	"net/http"
	"time"
)

// Target selects the entities an object applies to, e.g. a group or a resource name.
type Target struct {
	Type   string   `json:"type"   validate:"required"       yaml:"type"`
	Values []string `json:"values" validate:"required,min=1" yaml:"values"`
}

// IntervalPeriod defines the start, duration and randomization of an interval.
// Duration and RandomizeStart are ISO 8601 durations.
type IntervalPeriod struct {
	Start          time.Time `json:"start"                    validate:"required" yaml:"start"`
	Duration       string    `json:"duration,omitempty"       yaml:"duration,omitempty"`
	RandomizeStart string    `json:"randomizeStart,omitempty" yaml:"randomizeStart,omitempty"`
}

// Interval is one time-slot of an event or report carrying payload values.
type Interval struct {
	ID             int                      `json:"id"                       yaml:"id"`
	IntervalPeriod *IntervalPeriod          `json:"intervalPeriod,omitempty" yaml:"intervalPeriod,omitempty"`
	Payloads       []map[string]interface{} `json:"payloads"                 validate:"required,min=1" yaml:"payloads"`
}

// Resource holds the fields every server-managed object carries.
type Resource struct {
	ID                   string     `json:"id,omitempty"                   yaml:"id,omitempty"`
	CreatedDateTime      *time.Time `json:"createdDateTime,omitempty"      yaml:"createdDateTime,omitempty"`
	ModificationDateTime *time.Time `json:"modificationDateTime,omitempty" yaml:"modificationDateTime,omitempty"`
}

// Program represents an OpenADR demand-response program.
type Program struct {
	Resource `yaml:",inline"`

	ProgramName          string                   `json:"programName"                    validate:"required"            yaml:"programName"`
	ProgramLongName      string                   `json:"programLongName,omitempty"      yaml:"programLongName,omitempty"`
	RetailerName         string                   `json:"retailerName"                   validate:"required"            yaml:"retailerName"`
	RetailerLongName     string                   `json:"retailerLongName,omitempty"     yaml:"retailerLongName,omitempty"`
	ProgramType          string                   `json:"programType"                    validate:"required"            yaml:"programType"`
	Country              string                   `json:"country"                        validate:"required"            yaml:"country"`
	PrincipalSubdivision string                   `json:"principalSubdivision,omitempty" yaml:"principalSubdivision,omitempty"`
	TimeZoneOffset       string                   `json:"timeZoneOffset,omitempty"       yaml:"timeZoneOffset,omitempty"`
	IntervalPeriod       *IntervalPeriod          `json:"intervalPeriod,omitempty"       yaml:"intervalPeriod,omitempty"`
	ProgramDescriptions  []ProgramDescription     `json:"programDescriptions,omitempty"  validate:"omitempty,dive"      yaml:"programDescriptions,omitempty"`
	BindingEvents        *bool                    `json:"bindingEvents,omitempty"        yaml:"bindingEvents,omitempty"`
	LocalPrice           *bool                    `json:"localPrice,omitempty"           yaml:"localPrice,omitempty"`
	PayloadDescriptors   []map[string]interface{} `json:"payloadDescriptors,omitempty"   yaml:"payloadDescriptors,omitempty"`
	Targets              []Target                 `json:"targets,omitempty"              validate:"omitempty,dive"      yaml:"targets,omitempty"`
}

// ProgramDescription links to a human-readable description of a program.
type ProgramDescription struct {
	URL string `json:"URL" validate:"required,url" yaml:"URL"`
}

// Event represents a demand-response event published under a program.
type Event struct {
	Resource `yaml:",inline"`

	ProgramID          string                   `json:"programId"                    validate:"required"       yaml:"programId"`
	EventName          string                   `json:"eventName"                    validate:"required"       yaml:"eventName"`
	Priority           *int                     `json:"priority"                     validate:"required,min=0" yaml:"priority"`
	Targets            []Target                 `json:"targets,omitempty"            validate:"omitempty,dive" yaml:"targets,omitempty"`
	ReportDescriptors  []map[string]interface{} `json:"reportDescriptors,omitempty"  yaml:"reportDescriptors,omitempty"`
	PayloadDescriptors []map[string]interface{} `json:"payloadDescriptors,omitempty" yaml:"payloadDescriptors,omitempty"`
	IntervalPeriod     *IntervalPeriod          `json:"intervalPeriod,omitempty"     yaml:"intervalPeriod,omitempty"`
	Intervals          []Interval               `json:"intervals,omitempty"          validate:"omitempty,dive" yaml:"intervals,omitempty"`
}

// Report represents data a VEN reports back to the VTN.
type Report struct {
	Resource `yaml:",inline"`

	ProgramID          string                   `json:"programId"                    validate:"required" yaml:"programId"`
	EventID            string                   `json:"eventId,omitempty"            yaml:"eventId,omitempty"`
	ClientName         string                   `json:"clientName"                   validate:"required" yaml:"clientName"`
	ReportName         string                   `json:"reportName"                   validate:"required" yaml:"reportName"`
	PayloadDescriptors []map[string]interface{} `json:"payloadDescriptors,omitempty" yaml:"payloadDescriptors,omitempty"`
	Resources          []map[string]interface{} `json:"resources,omitempty"          yaml:"resources,omitempty"`
}

// Ven represents a Virtual End Node registered with the VTN.
type Ven struct {
	Resource `yaml:",inline"`

	VenName    string                   `json:"venName"              validate:"required"       yaml:"venName"`
	Attributes []map[string]interface{} `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Targets    []Target                 `json:"targets,omitempty"    validate:"omitempty,dive" yaml:"targets,omitempty"`
	Resources  []VenResource            `json:"resources,omitempty"  validate:"omitempty,dive" yaml:"resources,omitempty"`
}

// VenResource represents a device or asset belonging to a VEN.
type VenResource struct {
	Resource `yaml:",inline"`

	ResourceName string                   `json:"resourceName"         validate:"required"       yaml:"resourceName"`
	VenID        string                   `json:"venId"                validate:"required"       yaml:"venId"`
	Attributes   []map[string]interface{} `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Targets      []Target                 `json:"targets,omitempty"    validate:"omitempty,dive" yaml:"targets,omitempty"`
}

// ObjectOperation describes the objects and operations a subscription is notified about.
type ObjectOperation struct {
	Objects     []string `json:"objects"               validate:"required,min=1,dive,oneof=PROGRAM EVENT REPORT SUBSCRIPTION VEN RESOURCE" yaml:"objects"`
	Operations  []string `json:"operations"            validate:"required,min=1,dive,oneof=GET POST PUT DELETE"                            yaml:"operations"`
	CallbackURL string   `json:"callbackUrl"           validate:"required,url"                                                             yaml:"callbackUrl"`
	BearerToken string   `json:"bearerToken,omitempty" yaml:"bearerToken,omitempty"`
}

// Subscription represents a client's request to be notified about object changes.
type Subscription struct {
	Resource `yaml:",inline"`

	ClientName       string            `json:"clientName"        validate:"required"            yaml:"clientName"`
	ProgramID        string            `json:"programId"         validate:"required"            yaml:"programId"`
	ObjectOperations []ObjectOperation `json:"objectOperations"  validate:"required,min=1,dive" yaml:"objectOperations"`
	Targets          []Target          `json:"targets,omitempty" validate:"omitempty,dive"      yaml:"targets,omitempty"`
}

// OAuth2Token is the body returned by the token endpoint.
type OAuth2Token struct {
	AccessToken string `json:"access_token" validate:"required"    yaml:"access_token"`
	TokenType   string `json:"token_type"  validate:"required"     yaml:"token_type"`
	ExpiresIn   int64  `json:"expires_in"  validate:"required,gt=0" yaml:"expires_in"`
	Scope       string `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// APIError is a problem document returned by the VTN on failure.
type APIError struct {
	Type     string `json:"type,omitempty"     yaml:"type,omitempty"`
	Title    string `json:"title,omitempty"    yaml:"title,omitempty"`
	Status   int    `json:"status,omitempty"   yaml:"status,omitempty"`
	Detail   string `json:"detail,omitempty"   yaml:"detail,omitempty"`
	Instance string `json:"instance,omitempty" yaml:"instance,omitempty"`
}

// APIResponse is the uniform result of every operation that reached the server.
// Exactly one of Response and Problem is populated.
type APIResponse[T any] struct {
	Status   int       `json:"status"             yaml:"status"`
	Response *T        `json:"response,omitempty" yaml:"response,omitempty"`
	Problem  *APIError `json:"problem,omitempty"  yaml:"problem,omitempty"`
}

// IsSuccess reports whether the status is 2xx and no problem was returned.
func (r *APIResponse[T]) IsSuccess() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices && r.Problem == nil
}

// IsError reports whether the response is not a success.
func (r *APIResponse[T]) IsError() bool {
	return !r.IsSuccess()
}
