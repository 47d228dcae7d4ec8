package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

var venColumns = []string{"ID", "Name", "Resources", "Created"}

func venRow(ven *oadr3.Ven) []string {
	return []string{ven.ID, ven.VenName, strconv.Itoa(len(ven.Resources)), formatTime(ven.CreatedDateTime)}
}

var venResourceColumns = []string{"ID", "Name", "VEN", "Created"}

func venResourceRow(resource *oadr3.VenResource) []string {
	return []string{resource.ID, resource.ResourceName, resource.VenID, formatTime(resource.CreatedDateTime)}
}

// NewVensCommand creates the vens command group, including the nested
// resources group.
func NewVensCommand() *cobra.Command {
	resource := &resourceCommand[oadr3.Ven, *oadr3.VenSearch]{
		use:      "vens",
		aliases:  []string{"ven"},
		singular: "VEN",
		plural:   "VENs",
		idArg:    "VEN_ID",
		columns:  venColumns,
		row:      venRow,
		validate: oadr3.ValidateVen,
		client: func(_ *cobra.Command, client oadr3.Client) crudClient[oadr3.Ven, *oadr3.VenSearch] {
			return client.Vens()
		},
		filters: func(cmd *cobra.Command) func(oadr3.SearchParams) *oadr3.VenSearch {
			var venName string

			cmd.Flags().StringVar(&venName, "ven-name", "", "filter by VEN name")

			return func(paging oadr3.SearchParams) *oadr3.VenSearch {
				return &oadr3.VenSearch{SearchParams: paging, VenName: venName}
			}
		},
	}

	cmd := resource.build()
	cmd.AddCommand(newVenResourcesCommand())

	return cmd
}

func newVenResourcesCommand() *cobra.Command {
	resource := &resourceCommand[oadr3.VenResource, *oadr3.VenResourceSearch]{
		use:      "resources",
		aliases:  []string{"resource"},
		singular: "resource",
		plural:   "resources",
		idArg:    "RESOURCE_ID",
		columns:  venResourceColumns,
		row:      venResourceRow,
		validate: oadr3.ValidateVenResource,
		client: func(cmd *cobra.Command, client oadr3.Client) crudClient[oadr3.VenResource, *oadr3.VenResourceSearch] {
			venID, _ := cmd.Flags().GetString("ven")

			return &venResources{vens: client.Vens(), venID: venID}
		},
		filters: func(cmd *cobra.Command) func(oadr3.SearchParams) *oadr3.VenResourceSearch {
			var resourceName string

			cmd.Flags().StringVar(&resourceName, "resource-name", "", "filter by resource name")

			return func(paging oadr3.SearchParams) *oadr3.VenResourceSearch {
				return &oadr3.VenResourceSearch{SearchParams: paging, ResourceName: resourceName}
			}
		},
	}

	cmd := resource.build()
	cmd.PersistentFlags().String("ven", "", "ID of the VEN owning the resources")
	_ = cmd.MarkPersistentFlagRequired("ven")

	return cmd
}

// venResources binds the nested resource operations to one VEN.
type venResources struct {
	vens  oadr3.VensClient
	venID string
}

func (v *venResources) List(ctx context.Context, search *oadr3.VenResourceSearch) (*oadr3.APIResponse[[]oadr3.VenResource], error) {
	return v.vens.ListResources(ctx, v.venID, search)
}

func (v *venResources) Create(ctx context.Context, resource *oadr3.VenResource) (*oadr3.APIResponse[oadr3.VenResource], error) {
	return v.vens.CreateResource(ctx, v.venID, resource)
}

func (v *venResources) Get(ctx context.Context, resourceID string) (*oadr3.APIResponse[oadr3.VenResource], error) {
	return v.vens.GetResource(ctx, v.venID, resourceID)
}

func (v *venResources) Update(
	ctx context.Context, resourceID string, resource *oadr3.VenResource,
) (*oadr3.APIResponse[oadr3.VenResource], error) {
	return v.vens.UpdateResource(ctx, v.venID, resourceID, resource)
}

func (v *venResources) Delete(ctx context.Context, resourceID string) (*oadr3.APIResponse[any], error) {
	return v.vens.DeleteResource(ctx, v.venID, resourceID)
}
