package commands

import (
	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
)

// NewStreamsCommand creates the parent 'streams' command.
func NewStreamsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streams",
		Short: "Manage a property's data streams",
		Long: `List and create GA4 data streams.

Examples:
  googleops streams list 123456
  googleops streams create 123456 "Terprint Web" https://terprint.acidni.com`,
	}

	cmd.AddCommand(
		newStreamsListCommand(cfg),
		newStreamsCreateCommand(cfg),
	)

	return cmd
}

func newStreamsListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list <property-id>",
		Short: "List the data streams of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.ListStreams(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}

func newStreamsCreateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "create <property-id> <display-name> <url>",
		Short: "Create a web data stream on a property",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.CreateStream(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}
