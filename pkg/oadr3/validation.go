package oadr3

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// MaxSearchLimit is the largest page size a VTN accepts.
const MaxSearchLimit = 50

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once

	decodeErrorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^'([^']*)' (.*)$`),
		regexp.MustCompile(`^error decoding '([^']*)': (.*)$`),
	}

	errNotInteger = errors.New("expected an integer")
)

// ValidationResult is the outcome of validating untyped data against a schema.
// On success Data holds the typed value; otherwise Errors holds one
// "field: message" entry per violation, sorted lexically.
type ValidationResult[T any] struct {
	Success bool
	Data    *T
	Errors  []string
}

// Err returns a ValidationError carrying the result's errors, or nil when the
// validation succeeded.
func (r *ValidationResult[T]) Err() error {
	if r.Success {
		return nil
	}

	return NewValidationError(r.Errors...)
}

// SearchParams are the paging parameters shared by every collection search.
type SearchParams struct {
	Skip  *int `json:"skip,omitempty"  validate:"omitempty,min=0"`
	Limit *int `json:"limit,omitempty" validate:"omitempty,min=0,max=50"`
}

// ValidateSearchParams checks that skip is non-negative and limit is within
// [0, MaxSearchLimit]. Nil values are not checked. Both violations are reported
// together.
func ValidateSearchParams(skip, limit *int) *ValidationResult[SearchParams] {
	return ValidateStruct(&SearchParams{Skip: skip, Limit: limit})
}

// ValidateProgram decodes and validates a program.
func ValidateProgram(data map[string]interface{}) *ValidationResult[Program] {
	return validateMap[Program](data)
}

// ValidateEvent decodes and validates an event.
func ValidateEvent(data map[string]interface{}) *ValidationResult[Event] {
	return validateMap[Event](data)
}

// ValidateReport decodes and validates a report.
func ValidateReport(data map[string]interface{}) *ValidationResult[Report] {
	return validateMap[Report](data)
}

// ValidateVen decodes and validates a VEN.
func ValidateVen(data map[string]interface{}) *ValidationResult[Ven] {
	return validateMap[Ven](data)
}

// ValidateVenResource decodes and validates a VEN resource.
func ValidateVenResource(data map[string]interface{}) *ValidationResult[VenResource] {
	return validateMap[VenResource](data)
}

// ValidateSubscription decodes and validates a subscription.
func ValidateSubscription(data map[string]interface{}) *ValidationResult[Subscription] {
	return validateMap[Subscription](data)
}

// ValidateOAuth2Token decodes and validates a token endpoint response.
func ValidateOAuth2Token(data map[string]interface{}) *ValidationResult[OAuth2Token] {
	return validateMap[OAuth2Token](data)
}

// ValidateStruct validates an already typed value against its schema tags.
func ValidateStruct[T any](value *T) *ValidationResult[T] {
	if value == nil {
		return &ValidationResult[T]{Errors: []string{ErrNilResource.Error()}}
	}

	err := getValidator().Struct(value)
	if err != nil {
		return &ValidationResult[T]{Errors: formatValidationErrors(err)}
	}

	return &ValidationResult[T]{Success: true, Data: value}
}

// ValidateID returns a ValidationError when id is empty. Name is the field
// reported in the error, e.g. "programId".
func ValidateID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Errors: []string{name + ": cannot be empty"}, Err: ErrEmptyID}
	}

	return nil
}

func validateMap[T any](data map[string]interface{}) *ValidationResult[T] {
	if data == nil {
		return &ValidationResult[T]{Errors: []string{ErrNilResource.Error()}}
	}

	var value T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &value,
		TagName: "json",
		Squash:  true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.DecodeHookFuncKind(rejectFractionalNumbers),
		),
	})
	if err != nil {
		return &ValidationResult[T]{Errors: []string{err.Error()}}
	}

	err = decoder.Decode(data)
	if err == nil {
		return ValidateStruct(&value)
	}

	// Schema rules still run on the partly decoded value so that every
	// failing field is reported, with one entry per field.
	messages := formatDecodeErrors(err)

	reported := make(map[string]bool, len(messages))
	for _, message := range messages {
		reported[messageField(message)] = true
	}

	if structErr := getValidator().Struct(&value); structErr != nil {
		for _, message := range formatValidationErrors(structErr) {
			if !reported[messageField(message)] {
				messages = append(messages, message)
			}
		}
	}

	sort.Strings(messages)

	return &ValidationResult[T]{Errors: messages}
}

// rejectFractionalNumbers stops JSON numbers such as 1.7 from being truncated
// into integer fields.
func rejectFractionalNumbers(_ reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
	switch to {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}

	var number float64

	switch typed := data.(type) {
	case float64:
		number = typed
	case float32:
		number = float64(typed)
	default:
		return data, nil
	}

	if math.IsNaN(number) || math.IsInf(number, 0) || number != math.Trunc(number) {
		return nil, fmt.Errorf("%w, got %v", errNotInteger, number)
	}

	return data, nil
}

// messageField returns the field part of a "field: message" entry.
func messageField(message string) string {
	field, _, _ := strings.Cut(message, ": ")

	return field
}

func getValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}

			return name
		})
	})

	return structValidator
}

func formatValidationErrors(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, fieldPath(fieldErr.Namespace())+": "+fieldMessage(fieldErr))
	}

	sort.Strings(messages)

	return messages
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}

	return namespace
}

func fieldMessage(fieldErr validator.FieldError) string {
	collection := false

	switch fieldErr.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		collection = true
	default:
	}

	switch fieldErr.Tag() {
	case "required":
		return "field required"
	case "min":
		if collection {
			return fmt.Sprintf("must contain at least %s item(s)", fieldErr.Param())
		}

		return "must be greater than or equal to " + fieldErr.Param()
	case "max":
		if collection {
			return fmt.Sprintf("must contain at most %s item(s)", fieldErr.Param())
		}

		return "must be less than or equal to " + fieldErr.Param()
	case "gt":
		return "must be greater than " + fieldErr.Param()
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fieldErr.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag())
	}
}

// formatDecodeErrors turns decoder errors of the form "'field' message" into
// "field: message" entries.
func formatDecodeErrors(err error) []string {
	var lines []string

	for _, leaf := range flattenErrors(err) {
		for _, line := range strings.Split(leaf.Error(), "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
			if line == "" || strings.HasPrefix(line, "decoding failed") {
				continue
			}

			for _, pattern := range decodeErrorPatterns {
				if match := pattern.FindStringSubmatch(line); match != nil {
					line = match[1] + ": " + match[2]

					break
				}
			}

			lines = append(lines, line)
		}
	}

	sort.Strings(lines)

	return lines
}

func flattenErrors(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error }) //nolint:errorlint
	if !ok {
		return []error{err}
	}

	var leaves []error
	for _, inner := range joined.Unwrap() {
		leaves = append(leaves, flattenErrors(inner)...)
	}

	return leaves
}
