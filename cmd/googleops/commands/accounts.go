package commands

import (
	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
)

// NewAccountsCommand creates the parent 'accounts' command.
func NewAccountsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect GA4 accounts",
	}

	cmd.AddCommand(newAccountsListCommand(cfg))

	return cmd
}

func newAccountsListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the GA4 accounts visible to the service account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}
