package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

var subscriptionColumns = []string{"ID", "Client", "Program", "Objects", "Callbacks"}

func subscriptionRow(subscription *oadr3.Subscription) []string {
	var objects, callbacks []string

	for _, operation := range subscription.ObjectOperations {
		objects = append(objects, operation.Objects...)
		callbacks = append(callbacks, operation.CallbackURL)
	}

	return []string{
		subscription.ID,
		subscription.ClientName,
		subscription.ProgramID,
		strings.Join(objects, ", "),
		strings.Join(callbacks, ", "),
	}
}

// NewSubscriptionsCommand creates the subscriptions command group.
func NewSubscriptionsCommand() *cobra.Command {
	resource := &resourceCommand[oadr3.Subscription, *oadr3.SubscriptionSearch]{
		use:      "subscriptions",
		aliases:  []string{"subscription", "subs"},
		singular: "subscription",
		plural:   "subscriptions",
		idArg:    "SUBSCRIPTION_ID",
		columns:  subscriptionColumns,
		row:      subscriptionRow,
		validate: oadr3.ValidateSubscription,
		client: func(_ *cobra.Command, client oadr3.Client) crudClient[oadr3.Subscription, *oadr3.SubscriptionSearch] {
			return client.Subscriptions()
		},
		filters: func(cmd *cobra.Command) func(oadr3.SearchParams) *oadr3.SubscriptionSearch {
			var programID, clientName, objects string

			cmd.Flags().StringVar(&programID, "program-id", "", "filter by program ID")
			cmd.Flags().StringVar(&clientName, "client-name", "", "filter by subscribing client name")
			cmd.Flags().StringVar(&objects, "objects", "", "comma-separated object types, e.g. EVENT,PROGRAM")

			return func(paging oadr3.SearchParams) *oadr3.SubscriptionSearch {
				return &oadr3.SubscriptionSearch{
					SearchParams: paging,
					ProgramID:    programID,
					ClientName:   clientName,
					Objects:      splitList(objects),
				}
			}
		},
	}

	return resource.build()
}
