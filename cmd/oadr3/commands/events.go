package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

var eventColumns = []string{"ID", "Name", "Program", "Priority", "Start", "Duration"}

func eventRow(event *oadr3.Event) []string {
	priority := ""
	if event.Priority != nil {
		priority = strconv.Itoa(*event.Priority)
	}

	start, duration := "", ""
	if event.IntervalPeriod != nil {
		start = formatTime(&event.IntervalPeriod.Start)
		duration = event.IntervalPeriod.Duration
	}

	return []string{event.ID, event.EventName, event.ProgramID, priority, start, duration}
}

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	resource := &resourceCommand[oadr3.Event, *oadr3.EventSearch]{
		use:      "events",
		aliases:  []string{"event"},
		singular: "event",
		plural:   "events",
		idArg:    "EVENT_ID",
		columns:  eventColumns,
		row:      eventRow,
		validate: oadr3.ValidateEvent,
		client: func(_ *cobra.Command, client oadr3.Client) crudClient[oadr3.Event, *oadr3.EventSearch] {
			return client.Events()
		},
		filters: func(cmd *cobra.Command) func(oadr3.SearchParams) *oadr3.EventSearch {
			var programID string

			cmd.Flags().StringVar(&programID, "program-id", "", "filter by program ID")

			return func(paging oadr3.SearchParams) *oadr3.EventSearch {
				return &oadr3.EventSearch{SearchParams: paging, ProgramID: programID}
			}
		},
	}

	return resource.build()
}
