package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

func TestEventsClient(t *testing.T) {
	t.Parallel()

	t.Run("list filters by program", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK,
			`[{"id":"e-1","programId":"p-1","eventName":"peak","priority":0,"intervalPeriod":{"start":"2025-07-01T16:00:00Z","duration":"PT2H"}}]`)
		events := NewEventsClient(newTestTransport(server.URL))

		resp, err := events.List(context.Background(), &oadr3.EventSearch{ProgramID: "p-1"})
		require.NoError(t, err)

		event := (*resp.Response)[0]
		assert.Equal(t, "peak", event.EventName)
		require.NotNil(t, event.Priority)
		assert.Equal(t, 0, *event.Priority)
		require.NotNil(t, event.IntervalPeriod)
		assert.Equal(t, "PT2H", event.IntervalPeriod.Duration)
		assert.True(t, event.IntervalPeriod.Start.Equal(time.Date(2025, 7, 1, 16, 0, 0, 0, time.UTC)))

		recorded := vtn.recorded()[0]
		assert.Equal(t, "/events", recorded.Path)
		assert.Equal(t, []string{"p-1"}, recorded.Query["programId"])
	})

	t.Run("create requires priority", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusCreated, `{}`)
		events := NewEventsClient(newTestTransport(server.URL))

		_, err := events.Create(context.Background(), &oadr3.Event{ProgramID: "p-1", EventName: "peak"})

		var validationErr *oadr3.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"priority: field required"}, validationErr.Errors)
		assert.Empty(t, vtn.recorded())
	})
}

func TestReportsClient_List(t *testing.T) {
	t.Parallel()

	vtn, server := newFakeVTN(t, http.StatusOK, `[{"programId":"p-1","clientName":"ven-1","reportName":"usage"}]`)
	reports := NewReportsClient(newTestTransport(server.URL))

	resp, err := reports.List(context.Background(), &oadr3.ReportSearch{ProgramID: "p-1", ClientName: "ven-1"})
	require.NoError(t, err)
	assert.Equal(t, "usage", (*resp.Response)[0].ReportName)

	recorded := vtn.recorded()[0]
	assert.Equal(t, "/reports", recorded.Path)
	assert.Equal(t, []string{"p-1"}, recorded.Query["programId"])
	assert.Equal(t, []string{"ven-1"}, recorded.Query["clientName"])
}

func TestVensClient(t *testing.T) {
	t.Parallel()

	t.Run("list filters by name", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, `[{"id":"v-1","venName":"ven-1"}]`)
		vens := NewVensClient(newTestTransport(server.URL))

		resp, err := vens.List(context.Background(), &oadr3.VenSearch{VenName: "ven-1"})
		require.NoError(t, err)
		assert.Equal(t, "v-1", (*resp.Response)[0].ID)
		assert.Equal(t, []string{"ven-1"}, vtn.recorded()[0].Query["venName"])
	})

	t.Run("resources are nested under the ven", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, `[{"id":"r-1","resourceName":"meter","venId":"v-1"}]`)
		vens := NewVensClient(newTestTransport(server.URL))

		resp, err := vens.ListResources(context.Background(), "v-1", &oadr3.VenResourceSearch{ResourceName: "meter"})
		require.NoError(t, err)
		assert.Equal(t, "meter", (*resp.Response)[0].ResourceName)

		recorded := vtn.recorded()[0]
		assert.Equal(t, "/vens/v-1/resources", recorded.Path)
		assert.Equal(t, []string{"meter"}, recorded.Query["resourceName"])
	})

	t.Run("resource item operations", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, `{"id":"r-1","resourceName":"meter","venId":"v-1"}`)
		vens := NewVensClient(newTestTransport(server.URL))
		ctx := context.Background()
		resource := &oadr3.VenResource{ResourceName: "meter", VenID: "v-1"}

		_, err := vens.CreateResource(ctx, "v-1", resource)
		require.NoError(t, err)

		_, err = vens.GetResource(ctx, "v-1", "r-1")
		require.NoError(t, err)

		_, err = vens.UpdateResource(ctx, "v-1", "r-1", resource)
		require.NoError(t, err)

		_, err = vens.DeleteResource(ctx, "v-1", "r-1")
		require.NoError(t, err)

		recorded := vtn.recorded()
		require.Len(t, recorded, 4)
		assert.Equal(t, http.MethodPost, recorded[0].Method)
		assert.Equal(t, "/vens/v-1/resources", recorded[0].Path)

		for i, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			assert.Equal(t, method, recorded[i+1].Method)
			assert.Equal(t, "/vens/v-1/resources/r-1", recorded[i+1].Path)
		}
	})

	t.Run("empty ven id", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, `[]`)
		vens := NewVensClient(newTestTransport(server.URL))

		_, err := vens.ListResources(context.Background(), "", nil)

		var validationErr *oadr3.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"venId: cannot be empty"}, validationErr.Errors)
		assert.Empty(t, vtn.recorded())
	})
}

func TestSubscriptionsClient(t *testing.T) {
	t.Parallel()

	subscription := &oadr3.Subscription{
		ClientName: "ven-1",
		ProgramID:  "p-1",
		ObjectOperations: []oadr3.ObjectOperation{{
			Objects:     []string{"EVENT"},
			Operations:  []string{"POST", "PUT"},
			CallbackURL: "https://ven.example/notify",
		}},
	}

	t.Run("list with repeated objects", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusOK, `[]`)
		subscriptions := NewSubscriptionsClient(newTestTransport(server.URL))

		_, err := subscriptions.List(context.Background(), &oadr3.SubscriptionSearch{
			ProgramID: "p-1",
			Objects:   []string{"EVENT", "PROGRAM"},
		})
		require.NoError(t, err)

		recorded := vtn.recorded()[0]
		assert.Equal(t, "/subscriptions", recorded.Path)
		assert.Equal(t, []string{"EVENT", "PROGRAM"}, recorded.Query["objects"])
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusCreated,
			`{"id":"s-1","clientName":"ven-1","programId":"p-1","objectOperations":[{"objects":["EVENT"],"operations":["POST"],"callbackUrl":"https://ven.example/notify"}]}`)
		subscriptions := NewSubscriptionsClient(newTestTransport(server.URL))

		resp, err := subscriptions.Create(context.Background(), subscription)
		require.NoError(t, err)
		assert.Equal(t, "s-1", resp.Response.ID)
		assert.Equal(t, "https://ven.example/notify", resp.Response.ObjectOperations[0].CallbackURL)
		assert.Equal(t, http.MethodPost, vtn.recorded()[0].Method)
	})

	t.Run("invalid operation", func(t *testing.T) {
		t.Parallel()

		vtn, server := newFakeVTN(t, http.StatusCreated, `{}`)
		subscriptions := NewSubscriptionsClient(newTestTransport(server.URL))

		invalid := *subscription
		invalid.ObjectOperations = []oadr3.ObjectOperation{{
			Objects:     []string{"EVENT"},
			Operations:  []string{"PATCH"},
			CallbackURL: "not a url",
		}}

		_, err := subscriptions.Create(context.Background(), &invalid)

		var validationErr *oadr3.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{
			"objectOperations[0].callbackUrl: must be a valid URL",
			"objectOperations[0].operations[0]: must be one of [GET POST PUT DELETE]",
		}, validationErr.Errors)
		assert.Empty(t, vtn.recorded())
	})
}
