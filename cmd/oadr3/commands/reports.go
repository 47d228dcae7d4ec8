package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

var reportColumns = []string{"ID", "Name", "Program", "Event", "Client", "Created"}

func reportRow(report *oadr3.Report) []string {
	return []string{
		report.ID,
		report.ReportName,
		report.ProgramID,
		report.EventID,
		report.ClientName,
		formatTime(report.CreatedDateTime),
	}
}

// NewReportsCommand creates the reports command group.
func NewReportsCommand() *cobra.Command {
	resource := &resourceCommand[oadr3.Report, *oadr3.ReportSearch]{
		use:      "reports",
		aliases:  []string{"report"},
		singular: "report",
		plural:   "reports",
		idArg:    "REPORT_ID",
		columns:  reportColumns,
		row:      reportRow,
		validate: oadr3.ValidateReport,
		client: func(_ *cobra.Command, client oadr3.Client) crudClient[oadr3.Report, *oadr3.ReportSearch] {
			return client.Reports()
		},
		filters: func(cmd *cobra.Command) func(oadr3.SearchParams) *oadr3.ReportSearch {
			var programID, clientName string

			cmd.Flags().StringVar(&programID, "program-id", "", "filter by program ID")
			cmd.Flags().StringVar(&clientName, "client-name", "", "filter by reporting client name")

			return func(paging oadr3.SearchParams) *oadr3.ReportSearch {
				return &oadr3.ReportSearch{SearchParams: paging, ProgramID: programID, ClientName: clientName}
			}
		},
	}

	return resource.build()
}
