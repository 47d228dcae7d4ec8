package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// crudClient is the operation set shared by every collection client.
type crudClient[T any, S any] interface {
	List(ctx context.Context, search S) (*oadr3.APIResponse[[]T], error)
	Create(ctx context.Context, value *T) (*oadr3.APIResponse[T], error)
	Get(ctx context.Context, id string) (*oadr3.APIResponse[T], error)
	Update(ctx context.Context, id string, value *T) (*oadr3.APIResponse[T], error)
	Delete(ctx context.Context, id string) (*oadr3.APIResponse[any], error)
}

// resourceCommand describes the list/get/create/update/delete command group
// of one collection. S is the collection's search type.
type resourceCommand[T any, S any] struct {
	use      string
	aliases  []string
	singular string
	plural   string
	idArg    string
	columns  []string
	row      func(*T) []string
	validate func(map[string]interface{}) *oadr3.ValidationResult[T]
	client   func(cmd *cobra.Command, client oadr3.Client) crudClient[T, S]
	// filters registers the list filter flags and returns the search builder.
	filters func(cmd *cobra.Command) func(paging oadr3.SearchParams) S
}

func (r *resourceCommand[T, S]) build() *cobra.Command {
	cmd := &cobra.Command{
		Use:     r.use,
		Aliases: r.aliases,
		Short:   "Manage " + r.plural,
		Long:    fmt.Sprintf("List, inspect, create, update and delete %s on the VTN", r.plural),
	}

	cmd.AddCommand(r.newListCommand())
	cmd.AddCommand(r.newGetCommand())
	cmd.AddCommand(r.newCreateCommand())
	cmd.AddCommand(r.newUpdateCommand())
	cmd.AddCommand(r.newDeleteCommand())

	return cmd
}

func (r *resourceCommand[T, S]) withClient(cmd *cobra.Command, fn func(ctx context.Context, resources crudClient[T, S]) error) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	return fn(cmd.Context(), r.client(cmd, client))
}

func (r *resourceCommand[T, S]) newListCommand() *cobra.Command {
	var skip, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + r.plural,
		Long:  fmt.Sprintf("List %s, optionally filtered and paged with --skip and --limit", r.plural),
		Args:  cobra.NoArgs,
	}

	search := r.filters(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var paging oadr3.SearchParams
		if cmd.Flags().Changed("skip") {
			paging.Skip = oadr3.Int(skip)
		}

		if cmd.Flags().Changed("limit") {
			paging.Limit = oadr3.Int(limit)
		}

		return r.withClient(cmd, func(ctx context.Context, resources crudClient[T, S]) error {
			resp, err := resources.List(ctx, search(paging))
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", r.plural, err)
			}

			return renderResponse(cmd, resp, listTable(r.columns, r.row))
		})
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "number of records to skip")
	cmd.Flags().IntVar(&limit, "limit", oadr3.MaxSearchLimit, "maximum number of records to return")

	return cmd
}

func (r *resourceCommand[T, S]) newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get " + r.idArg,
		Short: "Get " + r.singular + " details",
		Long:  "Display detailed information about a specific " + r.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withClient(cmd, func(ctx context.Context, resources crudClient[T, S]) error {
				resp, err := resources.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get %s: %w", r.singular, err)
				}

				return renderResponse(cmd, resp, detailTable(r.columns, r.row))
			})
		},
	}
}

func (r *resourceCommand[T, S]) newCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + r.singular,
		Long:  fmt.Sprintf("Create a %s from a YAML or JSON document (use - to read stdin)", r.singular),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := r.readDocument(cmd, file)
			if err != nil {
				return err
			}

			return r.withClient(cmd, func(ctx context.Context, resources crudClient[T, S]) error {
				resp, err := resources.Create(ctx, value)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", r.singular, err)
				}

				return renderResponse(cmd, resp, detailTable(r.columns, r.row))
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON document describing the "+r.singular)

	return cmd
}

func (r *resourceCommand[T, S]) newUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update " + r.idArg,
		Short: "Update a " + r.singular,
		Long:  fmt.Sprintf("Replace a %s with the content of a YAML or JSON document", r.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := r.readDocument(cmd, file)
			if err != nil {
				return err
			}

			return r.withClient(cmd, func(ctx context.Context, resources crudClient[T, S]) error {
				resp, err := resources.Update(ctx, args[0], value)
				if err != nil {
					return fmt.Errorf("failed to update %s: %w", r.singular, err)
				}

				return renderResponse(cmd, resp, detailTable(r.columns, r.row))
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON document describing the "+r.singular)

	return cmd
}

func (r *resourceCommand[T, S]) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete " + r.idArg,
		Short: "Delete a " + r.singular,
		Long:  "Delete a " + r.singular + " from the VTN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withClient(cmd, func(ctx context.Context, resources crudClient[T, S]) error {
				resp, err := resources.Delete(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to delete %s: %w", r.singular, err)
				}

				return renderResponse(cmd, resp, func(out io.Writer, _ *any) error {
					_, err := fmt.Fprintf(out, "Deleted %s %s\n", r.singular, args[0])

					return err
				})
			})
		},
	}
}

// readDocument loads the --file document and validates it before any request.
func (r *resourceCommand[T, S]) readDocument(cmd *cobra.Command, file string) (*T, error) {
	document, err := loadDocument(file, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	result := r.validate(document)
	if !result.Success {
		return nil, result.Err()
	}

	return result.Data, nil
}
