package oadr3_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

func TestValidateSearchParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		skip   *int
		limit  *int
		errors []string
	}{
		{name: "both absent"},
		{name: "lower bounds", skip: oadr3.Int(0), limit: oadr3.Int(0)},
		{name: "upper limit", skip: oadr3.Int(1000), limit: oadr3.Int(oadr3.MaxSearchLimit)},
		{
			name:   "negative skip",
			skip:   oadr3.Int(-1),
			errors: []string{"skip: must be greater than or equal to 0"},
		},
		{
			name:   "limit too large",
			limit:  oadr3.Int(51),
			errors: []string{"limit: must be less than or equal to 50"},
		},
		{
			name:  "both invalid are reported together",
			skip:  oadr3.Int(-5),
			limit: oadr3.Int(-1),
			errors: []string{
				"limit: must be greater than or equal to 0",
				"skip: must be greater than or equal to 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := oadr3.ValidateSearchParams(tt.skip, tt.limit)
			if tt.errors == nil {
				assert.True(t, result.Success)
				require.NoError(t, result.Err())

				return
			}

			assert.False(t, result.Success)
			assert.Nil(t, result.Data)
			assert.Equal(t, tt.errors, result.Errors)
			assert.True(t, oadr3.IsValidationError(result.Err()))
		})
	}
}

func TestValidateProgram(t *testing.T) {
	t.Parallel()

	t.Run("decodes a complete program", func(t *testing.T) {
		t.Parallel()

		result := oadr3.ValidateProgram(map[string]interface{}{
			"id":              "p-1",
			"createdDateTime": "2025-01-02T03:04:05Z",
			"programName":     "P1",
			"retailerName":    "R1",
			"programType":     "PRICING_TARIFF",
			"country":         "US",
			"targets": []interface{}{
				map[string]interface{}{"type": "GROUP", "values": []interface{}{"a"}},
			},
		})

		require.True(t, result.Success, result.Errors)
		assert.Equal(t, "p-1", result.Data.ID)
		require.NotNil(t, result.Data.CreatedDateTime)
		assert.True(t, result.Data.CreatedDateTime.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))
		assert.Equal(t, []string{"a"}, result.Data.Targets[0].Values)
	})

	t.Run("missing required fields are sorted", func(t *testing.T) {
		t.Parallel()

		result := oadr3.ValidateProgram(map[string]interface{}{"programName": "P1"})

		assert.False(t, result.Success)
		assert.Equal(t, []string{
			"country: field required",
			"programType: field required",
			"retailerName: field required",
		}, result.Errors)
	})

	t.Run("nested target errors carry their path", func(t *testing.T) {
		t.Parallel()

		result := oadr3.ValidateProgram(map[string]interface{}{
			"programName":  "P1",
			"retailerName": "R1",
			"programType":  "PRICING_TARIFF",
			"country":      "US",
			"targets": []interface{}{
				map[string]interface{}{"type": "GROUP", "values": []interface{}{}},
			},
		})

		assert.Equal(t, []string{"targets[0].values: must contain at least 1 item(s)"}, result.Errors)
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()

		result := oadr3.ValidateProgram(map[string]interface{}{
			"programName":  []interface{}{"not", "a", "string"},
			"retailerName": "R1",
			"programType":  "PRICING_TARIFF",
			"country":      "US",
		})

		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "programName: ")
	})

	t.Run("type errors do not hide missing fields", func(t *testing.T) {
		t.Parallel()

		result := oadr3.ValidateProgram(map[string]interface{}{"programName": 5})

		assert.False(t, result.Success)
		require.Len(t, result.Errors, 4)
		assert.Equal(t, "country: field required", result.Errors[0])
		assert.True(t, strings.HasPrefix(result.Errors[1], "programName: "), result.Errors[1])
		assert.NotEqual(t, "programName: field required", result.Errors[1])
		assert.Equal(t, "programType: field required", result.Errors[2])
		assert.Equal(t, "retailerName: field required", result.Errors[3])
	})

	t.Run("nil data", func(t *testing.T) {
		t.Parallel()

		result := oadr3.ValidateProgram(nil)

		assert.False(t, result.Success)
		assert.Equal(t, []string{oadr3.ErrNilResource.Error()}, result.Errors)
	})
}

func TestValidateEvent_Priority(t *testing.T) {
	t.Parallel()

	valid := oadr3.ValidateEvent(map[string]interface{}{
		"programId": "p-1",
		"eventName": "peak",
		"priority":  float64(0),
	})
	require.True(t, valid.Success, valid.Errors)
	assert.Equal(t, 0, *valid.Data.Priority)

	negative := oadr3.ValidateEvent(map[string]interface{}{
		"programId": "p-1",
		"eventName": "peak",
		"priority":  float64(-1),
	})
	assert.Equal(t, []string{"priority: must be greater than or equal to 0"}, negative.Errors)
}

func TestValidateEvent_RejectsFractionalIntegers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event map[string]interface{}
		field string
	}{
		{
			name:  "priority",
			event: map[string]interface{}{"programId": "p-1", "eventName": "peak", "priority": 1.7},
			field: "priority: ",
		},
		{
			name: "interval id",
			event: map[string]interface{}{
				"programId": "p-1",
				"eventName": "peak",
				"priority":  float64(1),
				"intervals": []interface{}{
					map[string]interface{}{
						"id":       2.5,
						"payloads": []interface{}{map[string]interface{}{"type": "PRICE"}},
					},
				},
			},
			field: "intervals[0].id: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := oadr3.ValidateEvent(tt.event)

			assert.False(t, result.Success)
			assert.Nil(t, result.Data)
			require.Len(t, result.Errors, 1)
			assert.True(t, strings.HasPrefix(result.Errors[0], tt.field), result.Errors[0])
			assert.Contains(t, result.Errors[0], "expected an integer")
		})
	}

	whole := oadr3.ValidateEvent(map[string]interface{}{
		"programId": "p-1",
		"eventName": "peak",
		"priority":  float64(2),
	})
	require.True(t, whole.Success, whole.Errors)
	assert.Equal(t, 2, *whole.Data.Priority)
}

func TestValidateOAuth2Token(t *testing.T) {
	t.Parallel()

	valid := oadr3.ValidateOAuth2Token(map[string]interface{}{
		"access_token": "abc",
		"token_type":   "Bearer",
		"expires_in":   float64(3600),
	})
	require.True(t, valid.Success, valid.Errors)
	assert.Equal(t, int64(3600), valid.Data.ExpiresIn)

	fractional := oadr3.ValidateOAuth2Token(map[string]interface{}{
		"access_token": "abc",
		"token_type":   "Bearer",
		"expires_in":   3599.5,
	})
	assert.False(t, fractional.Success)
	require.Len(t, fractional.Errors, 1)
	assert.True(t, strings.HasPrefix(fractional.Errors[0], "expires_in: "), fractional.Errors[0])

	invalid := oadr3.ValidateOAuth2Token(map[string]interface{}{
		"token_type": "Bearer",
		"expires_in": float64(0),
	})
	assert.Equal(t, []string{
		"access_token: field required",
		"expires_in: field required",
	}, invalid.Errors)
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	resource := &oadr3.VenResource{ResourceName: "meter", VenID: "v-1"}
	result := oadr3.ValidateStruct(resource)
	assert.True(t, result.Success)
	assert.Same(t, resource, result.Data)

	var missing *oadr3.Ven

	result2 := oadr3.ValidateStruct(missing)
	assert.False(t, result2.Success)
	assert.Equal(t, []string{oadr3.ErrNilResource.Error()}, result2.Errors)
	assert.True(t, oadr3.IsValidationError(result2.Err()))
}

func TestValidateID(t *testing.T) {
	t.Parallel()

	require.NoError(t, oadr3.ValidateID("programId", "p-1"))

	err := oadr3.ValidateID("programId", "  ")
	require.ErrorIs(t, err, oadr3.ErrEmptyID)
	assert.Equal(t, "validation failed: programId: cannot be empty", err.Error())
}
