package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	oadrhttp "github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// payload converts a parsed 2xx body into the operation's result type.
// Every operation passes its own payload, so the classifier never inspects
// result types at runtime.
type payload[T any] func(body interface{}) (*T, error)

// object expects a single JSON object validated by validate.
func object[T any](validate func(map[string]interface{}) *oadr3.ValidationResult[T]) payload[T] {
	return func(body interface{}) (*T, error) {
		data, ok := body.(map[string]interface{})
		if !ok {
			return nil, &oadr3.ValidationError{
				Errors: []string{"response: expected a JSON object"},
				Err:    oadr3.ErrUnexpectedPayload,
			}
		}

		result := validate(data)
		if !result.Success {
			return nil, result.Err()
		}

		return result.Data, nil
	}
}

// list expects a JSON array whose elements are validated by validate.
func list[T any](validate func(map[string]interface{}) *oadr3.ValidationResult[T]) payload[[]T] {
	return func(body interface{}) (*[]T, error) {
		items, ok := body.([]interface{})
		if !ok {
			return nil, &oadr3.ValidationError{
				Errors: []string{"response: expected a JSON array"},
				Err:    oadr3.ErrUnexpectedPayload,
			}
		}

		values := make([]T, 0, len(items))

		var errs []string

		for i, item := range items {
			data, ok := item.(map[string]interface{})
			if !ok {
				errs = append(errs, fmt.Sprintf("[%d]: expected a JSON object", i))

				continue
			}

			result := validate(data)
			if !result.Success {
				for _, msg := range result.Errors {
					errs = append(errs, fmt.Sprintf("[%d].%s", i, msg))
				}

				continue
			}

			values = append(values, *result.Data)
		}

		if len(errs) > 0 {
			return nil, oadr3.NewValidationError(errs...)
		}

		return &values, nil
	}
}

// untyped passes the parsed body through without a schema.
func untyped(body interface{}) (*any, error) {
	return &body, nil
}

// classify turns a transport response into an APIResponse. Error statuses
// become a Problem; only a 2xx body that fails its schema is an error.
func classify[T any](resp *oadrhttp.Response, shape payload[T]) (*oadr3.APIResponse[T], error) {
	body := parseBody(resp)

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		result := &oadr3.APIResponse[T]{Status: resp.StatusCode}
		if body == nil {
			return result, nil
		}

		data, err := shape(body)
		if err != nil {
			return nil, err
		}

		result.Response = data

		return result, nil
	}

	return &oadr3.APIResponse[T]{
		Status:  resp.StatusCode,
		Problem: parseProblem(resp, body),
	}, nil
}

// parseBody decodes JSON bodies. Other content types, and JSON that does not
// parse, are returned as text. An empty body is nil.
func parseBody(resp *oadrhttp.Response) interface{} {
	if len(strings.TrimSpace(string(resp.Body))) == 0 {
		return nil
	}

	contentType := strings.ToLower(resp.Headers.Get("Content-Type"))
	if strings.HasPrefix(contentType, "application/json") {
		var parsed interface{}

		err := json.Unmarshal(resp.Body, &parsed)
		if err == nil {
			return parsed
		}
	}

	return string(resp.Body)
}

func parseProblem(resp *oadrhttp.Response, body interface{}) *oadr3.APIError {
	if _, ok := body.(map[string]interface{}); ok {
		problem := &oadr3.APIError{}

		err := json.Unmarshal(resp.Body, problem)
		if err == nil {
			if problem.Status == 0 {
				problem.Status = resp.StatusCode
			}

			return problem
		}
	}

	return &oadr3.APIError{
		Status: resp.StatusCode,
		Title:  reasonPhrase(resp),
		Detail: string(resp.Body),
	}
}

func reasonPhrase(resp *oadrhttp.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase != "" {
		return phrase
	}

	return http.StatusText(resp.StatusCode)
}
