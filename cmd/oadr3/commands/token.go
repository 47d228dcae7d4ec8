package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print an access token",
		Long:  "Exchange the configured client credentials for an access token and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			token, err := client.GetToken(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get token: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)

			return err
		},
	}
}
