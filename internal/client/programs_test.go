package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

const programBody = `{"id":"p-1","programName":"P1","retailerName":"R1","programType":"PRICING_TARIFF","country":"US"}`

func validProgram() *oadr3.Program {
	return &oadr3.Program{
		ProgramName:  "P1",
		RetailerName: "R1",
		ProgramType:  "PRICING_TARIFF",
		Country:      "US",
	}
}

func TestProgramsClient_List(t *testing.T) {
	t.Parallel()

	vtn, server := newFakeVTN(t, http.StatusOK, "["+programBody+"]")
	programs := NewProgramsClient(newTestTransport(server.URL))

	resp, err := programs.List(context.Background(), &oadr3.ProgramSearch{
		Targets:      []string{"group-a", "group-b"},
		SearchParams: oadr3.SearchParams{Skip: oadr3.Int(5), Limit: oadr3.Int(50)},
	})
	require.NoError(t, err)
	require.Len(t, *resp.Response, 1)
	assert.Equal(t, "p-1", (*resp.Response)[0].ID)

	recorded := vtn.recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, http.MethodGet, recorded[0].Method)
	assert.Equal(t, "/programs", recorded[0].Path)
	assert.Equal(t, []string{"group-a", "group-b"}, recorded[0].Query["targets"])
	assert.Equal(t, []string{"5"}, recorded[0].Query["skip"])
	assert.Equal(t, []string{"50"}, recorded[0].Query["limit"])
}

func TestProgramsClient_ListRejectsBadPaging(t *testing.T) {
	t.Parallel()

	vtn, server := newFakeVTN(t, http.StatusOK, "[]")
	programs := NewProgramsClient(newTestTransport(server.URL))

	_, err := programs.List(context.Background(), &oadr3.ProgramSearch{
		SearchParams: oadr3.SearchParams{Skip: oadr3.Int(-1), Limit: oadr3.Int(51)},
	})

	var validationErr *oadr3.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 2)
	assert.Empty(t, vtn.recorded())
}

func TestProgramsClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("sends the validated body", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusCreated, programBody)
		programs := NewProgramsClient(newTestTransport(server.URL))

		resp, err := programs.Create(context.Background(), validProgram())
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.Status)
		assert.Equal(t, "p-1", resp.Response.ID)

		recorded := vtn.recorded()
		require.Len(t, recorded, 1)
		assert.Equal(t, http.MethodPost, recorded[0].Method)
		assert.Equal(t, "P1", recorded[0].Body["programName"])
		assert.Equal(t, "US", recorded[0].Body["country"])
		assert.NotContains(t, recorded[0].Body, "id")
	})

	t.Run("missing country fails before any request", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusCreated, programBody)
		programs := NewProgramsClient(newTestTransport(server.URL))

		program := validProgram()
		program.Country = ""

		_, err := programs.Create(context.Background(), program)

		var validationErr *oadr3.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"country: field required"}, validationErr.Errors)
		assert.Empty(t, vtn.recorded())
	})

	t.Run("nil program", func(t *testing.T) {
		t.Parallel()

		_, server := newFakeVTN(t, http.StatusCreated, programBody)
		programs := NewProgramsClient(newTestTransport(server.URL))

		_, err := programs.Create(context.Background(), nil)
		assert.True(t, oadr3.IsValidationError(err))
	})

	t.Run("conflict is a problem not an error", func(t *testing.T) {
		t.Parallel()

		_, server := newFakeVTN(t, http.StatusConflict, `{"title":"Conflict","status":409,"detail":"program name exists"}`)
		programs := NewProgramsClient(newTestTransport(server.URL))

		resp, err := programs.Create(context.Background(), validProgram())
		require.NoError(t, err)
		assert.True(t, resp.IsError())
		assert.Equal(t, 409, resp.Problem.Status)
		assert.Equal(t, "program name exists", resp.Problem.Detail)
	})
}

func TestProgramsClient_ItemOperations(t *testing.T) {
	t.Parallel()

	t.Run("get escapes the id", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, programBody)
		programs := NewProgramsClient(newTestTransport(server.URL))

		resp, err := programs.Get(context.Background(), "p 1/x")
		require.NoError(t, err)
		assert.Equal(t, "P1", resp.Response.ProgramName)
		assert.Equal(t, "/programs/p%201%2Fx", vtn.recorded()[0].Path)
	})

	t.Run("update puts the body", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, programBody)
		programs := NewProgramsClient(newTestTransport(server.URL))

		_, err := programs.Update(context.Background(), "p-1", validProgram())
		require.NoError(t, err)

		recorded := vtn.recorded()[0]
		assert.Equal(t, http.MethodPut, recorded.Method)
		assert.Equal(t, "/programs/p-1", recorded.Path)
		assert.Equal(t, "R1", recorded.Body["retailerName"])
	})

	t.Run("delete returns the raw body", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, programBody)
		programs := NewProgramsClient(newTestTransport(server.URL))

		resp, err := programs.Delete(context.Background(), "p-1")
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())
		assert.Equal(t, http.MethodDelete, vtn.recorded()[0].Method)

		body, ok := (*resp.Response).(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "p-1", body["id"])
	})

	t.Run("empty ids are rejected", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, programBody)
		programs := NewProgramsClient(newTestTransport(server.URL))
		ctx := context.Background()

		_, err := programs.Get(ctx, "")
		assert.ErrorIs(t, err, oadr3.ErrEmptyID)

		_, err = programs.Update(ctx, " ", validProgram())
		assert.ErrorIs(t, err, oadr3.ErrEmptyID)

		_, err = programs.Delete(ctx, "")
		assert.ErrorIs(t, err, oadr3.ErrEmptyID)

		assert.Empty(t, vtn.recorded())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, server := newFakeVTN(t, http.StatusNotFound, `{"title":"Not Found","status":404}`)
		programs := NewProgramsClient(newTestTransport(server.URL))

		resp, err := programs.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.True(t, oadr3.IsNotFound(resp))
		assert.Nil(t, resp.Response)
	})
}
