package commands

import (
	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
)

// NewAudiencesCommand creates the parent 'audiences' command.
func NewAudiencesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audiences",
		Short: "Inspect a property's audiences",
	}

	cmd.AddCommand(newAudiencesListCommand(cfg))

	return cmd
}

func newAudiencesListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list <property-id>",
		Short: "List the audiences of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.ListAudiences(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}
