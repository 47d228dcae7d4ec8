package client

import (
	"context"

	"github.com/fivetwenty-io/oadr3/internal/constants"
	"github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// ProgramsClient implements oadr3.ProgramsClient.
type ProgramsClient struct {
	*resourceClient[oadr3.Program]
}

// NewProgramsClient creates a new programs client.
func NewProgramsClient(httpClient *http.Client) *ProgramsClient {
	return &ProgramsClient{
		resourceClient: newResourceClient(httpClient, constants.ProgramsPath, "program", "programId", oadr3.ValidateProgram),
	}
}

// List searches programs. A nil search lists without filters.
func (c *ProgramsClient) List(ctx context.Context, search *oadr3.ProgramSearch) (*oadr3.APIResponse[[]oadr3.Program], error) {
	if search == nil {
		search = &oadr3.ProgramSearch{}
	}

	return c.list(ctx, search)
}

// Create validates and creates a program.
func (c *ProgramsClient) Create(ctx context.Context, program *oadr3.Program) (*oadr3.APIResponse[oadr3.Program], error) {
	return c.create(ctx, program)
}

// Get retrieves a program by ID.
func (c *ProgramsClient) Get(ctx context.Context, programID string) (*oadr3.APIResponse[oadr3.Program], error) {
	return c.get(ctx, programID)
}

// Update validates and replaces a program.
func (c *ProgramsClient) Update(ctx context.Context, programID string, program *oadr3.Program) (*oadr3.APIResponse[oadr3.Program], error) {
	return c.update(ctx, programID, program)
}

// Delete deletes a program.
func (c *ProgramsClient) Delete(ctx context.Context, programID string) (*oadr3.APIResponse[any], error) {
	return c.delete(ctx, programID)
}
