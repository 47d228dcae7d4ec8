package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

var programColumns = []string{"ID", "Name", "Retailer", "Type", "Country", "Created"}

func programRow(program *oadr3.Program) []string {
	return []string{
		program.ID,
		program.ProgramName,
		program.RetailerName,
		program.ProgramType,
		program.Country,
		formatTime(program.CreatedDateTime),
	}
}

// NewProgramsCommand creates the programs command group.
func NewProgramsCommand() *cobra.Command {
	resource := &resourceCommand[oadr3.Program, *oadr3.ProgramSearch]{
		use:      "programs",
		aliases:  []string{"program"},
		singular: "program",
		plural:   "programs",
		idArg:    "PROGRAM_ID",
		columns:  programColumns,
		row:      programRow,
		validate: oadr3.ValidateProgram,
		client: func(_ *cobra.Command, client oadr3.Client) crudClient[oadr3.Program, *oadr3.ProgramSearch] {
			return client.Programs()
		},
		filters: func(cmd *cobra.Command) func(oadr3.SearchParams) *oadr3.ProgramSearch {
			var targets string

			cmd.Flags().StringVar(&targets, "targets", "", "comma-separated target values")

			return func(paging oadr3.SearchParams) *oadr3.ProgramSearch {
				return &oadr3.ProgramSearch{SearchParams: paging, Targets: splitList(targets)}
			}
		},
	}

	return resource.build()
}

func splitList(value string) []string {
	var items []string

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
