package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/oadr3/internal/constants"
	"github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// VensClient implements oadr3.VensClient.
type VensClient struct {
	*resourceClient[oadr3.Ven]
}

// NewVensClient creates a new VENs client.
func NewVensClient(httpClient *http.Client) *VensClient {
	return &VensClient{
		resourceClient: newResourceClient(httpClient, constants.VensPath, "ven", "venId", oadr3.ValidateVen),
	}
}

// List searches VENs. A nil search lists without filters.
func (c *VensClient) List(ctx context.Context, search *oadr3.VenSearch) (*oadr3.APIResponse[[]oadr3.Ven], error) {
	if search == nil {
		search = &oadr3.VenSearch{}
	}

	return c.list(ctx, search)
}

// Create validates and creates a VEN.
func (c *VensClient) Create(ctx context.Context, ven *oadr3.Ven) (*oadr3.APIResponse[oadr3.Ven], error) {
	return c.create(ctx, ven)
}

// Get retrieves a VEN by ID.
func (c *VensClient) Get(ctx context.Context, venID string) (*oadr3.APIResponse[oadr3.Ven], error) {
	return c.get(ctx, venID)
}

// Update validates and replaces a VEN.
func (c *VensClient) Update(ctx context.Context, venID string, ven *oadr3.Ven) (*oadr3.APIResponse[oadr3.Ven], error) {
	return c.update(ctx, venID, ven)
}

// Delete deletes a VEN.
func (c *VensClient) Delete(ctx context.Context, venID string) (*oadr3.APIResponse[any], error) {
	return c.delete(ctx, venID)
}

// ListResources searches the resources of a VEN.
func (c *VensClient) ListResources(
	ctx context.Context, venID string, search *oadr3.VenResourceSearch,
) (*oadr3.APIResponse[[]oadr3.VenResource], error) {
	resources, err := c.resources(venID)
	if err != nil {
		return nil, err
	}

	if search == nil {
		search = &oadr3.VenResourceSearch{}
	}

	return resources.list(ctx, search)
}

// CreateResource validates and creates a resource under a VEN.
func (c *VensClient) CreateResource(
	ctx context.Context, venID string, resource *oadr3.VenResource,
) (*oadr3.APIResponse[oadr3.VenResource], error) {
	resources, err := c.resources(venID)
	if err != nil {
		return nil, err
	}

	return resources.create(ctx, resource)
}

// GetResource retrieves one resource of a VEN.
func (c *VensClient) GetResource(ctx context.Context, venID, resourceID string) (*oadr3.APIResponse[oadr3.VenResource], error) {
	resources, err := c.resources(venID)
	if err != nil {
		return nil, err
	}

	return resources.get(ctx, resourceID)
}

// UpdateResource validates and replaces one resource of a VEN.
func (c *VensClient) UpdateResource(
	ctx context.Context, venID, resourceID string, resource *oadr3.VenResource,
) (*oadr3.APIResponse[oadr3.VenResource], error) {
	resources, err := c.resources(venID)
	if err != nil {
		return nil, err
	}

	return resources.update(ctx, resourceID, resource)
}

// DeleteResource deletes one resource of a VEN.
func (c *VensClient) DeleteResource(ctx context.Context, venID, resourceID string) (*oadr3.APIResponse[any], error) {
	resources, err := c.resources(venID)
	if err != nil {
		return nil, err
	}

	return resources.delete(ctx, resourceID)
}

// resources returns a client scoped to /vens/{venID}/resources.
func (c *VensClient) resources(venID string) (*resourceClient[oadr3.VenResource], error) {
	if c.httpClient.Closed() {
		return nil, oadr3.ErrClientClosed
	}

	err := oadr3.ValidateID("venId", venID)
	if err != nil {
		return nil, err
	}

	path := constants.VensPath + "/" + url.PathEscape(venID) + "/" + constants.ResourcesSegment

	return newResourceClient(c.httpClient, path, "resource", "resourceId", oadr3.ValidateVenResource), nil
}
