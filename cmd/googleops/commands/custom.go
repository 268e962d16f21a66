package commands

import (
	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
)

// NewCustomCommand creates the parent 'custom' command for custom dimensions
// and metrics.
func NewCustomCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Inspect a property's custom dimensions and metrics",
		Long: `List the custom dimensions and custom metrics defined on a property.

Examples:
  googleops custom dimensions 123456
  googleops custom metrics 123456`,
	}

	cmd.AddCommand(
		newCustomDimensionsCommand(cfg),
		newCustomMetricsCommand(cfg),
	)

	return cmd
}

func newCustomDimensionsCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dimensions <property-id>",
		Short: "List the custom dimensions of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.ListCustomDimensions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}

func newCustomMetricsCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <property-id>",
		Short: "List the custom metrics of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.ListCustomMetrics(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}
