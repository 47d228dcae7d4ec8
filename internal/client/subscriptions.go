package client

import (
	"context"

	"github.com/fivetwenty-io/oadr3/internal/constants"
	"github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// SubscriptionsClient implements oadr3.SubscriptionsClient.
type SubscriptionsClient struct {
	*resourceClient[oadr3.Subscription]
}

// NewSubscriptionsClient creates a new subscriptions client.
func NewSubscriptionsClient(httpClient *http.Client) *SubscriptionsClient {
	return &SubscriptionsClient{
		resourceClient: newResourceClient(httpClient, constants.SubscriptionsPath, "subscription", "subscriptionId", oadr3.ValidateSubscription),
	}
}

// List searches subscriptions. A nil search lists without filters.
func (c *SubscriptionsClient) List(ctx context.Context, search *oadr3.SubscriptionSearch) (*oadr3.APIResponse[[]oadr3.Subscription], error) {
	if search == nil {
		search = &oadr3.SubscriptionSearch{}
	}

	return c.list(ctx, search)
}

// Create validates and creates a subscription.
func (c *SubscriptionsClient) Create(ctx context.Context, subscription *oadr3.Subscription) (*oadr3.APIResponse[oadr3.Subscription], error) {
	return c.create(ctx, subscription)
}

// Get retrieves a subscription by ID.
func (c *SubscriptionsClient) Get(ctx context.Context, subscriptionID string) (*oadr3.APIResponse[oadr3.Subscription], error) {
	return c.get(ctx, subscriptionID)
}

// Update validates and replaces a subscription.
func (c *SubscriptionsClient) Update(ctx context.Context, subscriptionID string, subscription *oadr3.Subscription) (*oadr3.APIResponse[oadr3.Subscription], error) {
	return c.update(ctx, subscriptionID, subscription)
}

// Delete deletes a subscription.
func (c *SubscriptionsClient) Delete(ctx context.Context, subscriptionID string) (*oadr3.APIResponse[any], error) {
	return c.delete(ctx, subscriptionID)
}
