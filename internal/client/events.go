package client

import (
	"context"

	"github.com/fivetwenty-io/oadr3/internal/constants"
	"github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// EventsClient implements oadr3.EventsClient.
type EventsClient struct {
	*resourceClient[oadr3.Event]
}

// NewEventsClient creates a new events client.
func NewEventsClient(httpClient *http.Client) *EventsClient {
	return &EventsClient{
		resourceClient: newResourceClient(httpClient, constants.EventsPath, "event", "eventId", oadr3.ValidateEvent),
	}
}

// List searches events. A nil search lists without filters.
func (c *EventsClient) List(ctx context.Context, search *oadr3.EventSearch) (*oadr3.APIResponse[[]oadr3.Event], error) {
	if search == nil {
		search = &oadr3.EventSearch{}
	}

	return c.list(ctx, search)
}

// Create validates and creates a event.
func (c *EventsClient) Create(ctx context.Context, event *oadr3.Event) (*oadr3.APIResponse[oadr3.Event], error) {
	return c.create(ctx, event)
}

// Get retrieves a event by ID.
func (c *EventsClient) Get(ctx context.Context, eventID string) (*oadr3.APIResponse[oadr3.Event], error) {
	return c.get(ctx, eventID)
}

// Update validates and replaces a event.
func (c *EventsClient) Update(ctx context.Context, eventID string, event *oadr3.Event) (*oadr3.APIResponse[oadr3.Event], error) {
	return c.update(ctx, eventID, event)
}

// Delete deletes a event.
func (c *EventsClient) Delete(ctx context.Context, eventID string) (*oadr3.APIResponse[any], error) {
	return c.delete(ctx, eventID)
}
