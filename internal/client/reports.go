package client

import (
	"context"

	"github.com/fivetwenty-io/oadr3/internal/constants"
	"github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// ReportsClient implements oadr3.ReportsClient.
type ReportsClient struct {
	*resourceClient[oadr3.Report]
}

// NewReportsClient creates a new reports client.
func NewReportsClient(httpClient *http.Client) *ReportsClient {
	return &ReportsClient{
		resourceClient: newResourceClient(httpClient, constants.ReportsPath, "report", "reportId", oadr3.ValidateReport),
	}
}

// List searches reports. A nil search lists without filters.
func (c *ReportsClient) List(ctx context.Context, search *oadr3.ReportSearch) (*oadr3.APIResponse[[]oadr3.Report], error) {
	if search == nil {
		search = &oadr3.ReportSearch{}
	}

	return c.list(ctx, search)
}

// Create validates and creates a report.
func (c *ReportsClient) Create(ctx context.Context, report *oadr3.Report) (*oadr3.APIResponse[oadr3.Report], error) {
	return c.create(ctx, report)
}

// Get retrieves a report by ID.
func (c *ReportsClient) Get(ctx context.Context, reportID string) (*oadr3.APIResponse[oadr3.Report], error) {
	return c.get(ctx, reportID)
}

// Update validates and replaces a report.
func (c *ReportsClient) Update(ctx context.Context, reportID string, report *oadr3.Report) (*oadr3.APIResponse[oadr3.Report], error) {
	return c.update(ctx, reportID, report)
}

// Delete deletes a report.
func (c *ReportsClient) Delete(ctx context.Context, reportID string) (*oadr3.APIResponse[any], error) {
	return c.delete(ctx, reportID)
}
