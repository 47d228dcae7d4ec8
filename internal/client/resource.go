package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// resourceClient implements the five collection operations shared by every
// resource type.
type resourceClient[T any] struct {
	httpClient   *http.Client
	resourcePath string
	resourceName string
	idField      string
	validate     func(map[string]interface{}) *oadr3.ValidationResult[T]
}

func newResourceClient[T any](
	httpClient *http.Client,
	resourcePath, resourceName, idField string,
	validate func(map[string]interface{}) *oadr3.ValidationResult[T],
) *resourceClient[T] {
	return &resourceClient[T]{
		httpClient:   httpClient,
		resourcePath: resourcePath,
		resourceName: resourceName,
		idField:      idField,
		validate:     validate,
	}
}

func (c *resourceClient[T]) list(ctx context.Context, query oadr3.Query) (*oadr3.APIResponse[[]T], error) {
	if c.httpClient.Closed() {
		return nil, oadr3.ErrClientClosed
	}

	paging := query.Paging()

	err := oadr3.ValidateSearchParams(paging.Skip, paging.Limit).Err()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, c.resourcePath, query.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", c.resourceName, err)
	}

	result, err := classify(resp, list(c.validate))
	if err != nil {
		return nil, fmt.Errorf("parsing %ss list response: %w", c.resourceName, err)
	}

	return result, nil
}

func (c *resourceClient[T]) create(ctx context.Context, value *T) (*oadr3.APIResponse[T], error) {
	if c.httpClient.Closed() {
		return nil, oadr3.ErrClientClosed
	}

	err := oadr3.ValidateStruct(value).Err()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, c.resourcePath, value)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.resourceName, err)
	}

	result, err := classify(resp, object(c.validate))
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.resourceName, err)
	}

	return result, nil
}

func (c *resourceClient[T]) get(ctx context.Context, id string) (*oadr3.APIResponse[T], error) {
	path, err := c.itemPath(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", c.resourceName, err)
	}

	result, err := classify(resp, object(c.validate))
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.resourceName, err)
	}

	return result, nil
}

func (c *resourceClient[T]) update(ctx context.Context, id string, value *T) (*oadr3.APIResponse[T], error) {
	path, err := c.itemPath(id)
	if err != nil {
		return nil, err
	}

	err = oadr3.ValidateStruct(value).Err()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, value)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.resourceName, err)
	}

	result, err := classify(resp, object(c.validate))
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.resourceName, err)
	}

	return result, nil
}

func (c *resourceClient[T]) delete(ctx context.Context, id string) (*oadr3.APIResponse[any], error) {
	path, err := c.itemPath(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting %s: %w", c.resourceName, err)
	}

	return classify[any](resp, untyped)
}

func (c *resourceClient[T]) itemPath(id string) (string, error) {
	if c.httpClient.Closed() {
		return "", oadr3.ErrClientClosed
	}

	err := oadr3.ValidateID(c.idField, id)
	if err != nil {
		return "", err
	}

	return c.resourcePath + "/" + url.PathEscape(id), nil
}
