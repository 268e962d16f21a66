package commands

import (
	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/analytics"
	"github.com/acidni/googleops/internal/config"
)

// NewPropertiesCommand creates the parent 'properties' command.
func NewPropertiesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Manage GA4 properties",
		Long: `Create, inspect, and delete GA4 properties.

Examples:
  googleops properties list
  googleops properties get 123456
  googleops properties create "Terprint Web" 100 --url https://terprint.acidni.com
  googleops properties delete 123456`,
	}

	cmd.AddCommand(
		newPropertiesListCommand(cfg),
		newPropertiesGetCommand(cfg),
		newPropertiesCreateCommand(cfg),
		newPropertiesDeleteCommand(cfg),
	)

	return cmd
}

func newPropertiesListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List properties across all accessible accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.ListProperties(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}

func newPropertiesGetCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <property-id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.GetProperty(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}

func newPropertiesCreateCommand(cfg *config.Config) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "create <display-name> <account-id>",
		Short: "Create a property, optionally with a web data stream",
		Long: `Create a GA4 property under an account.

With --url the admin script also provisions a web data stream for that URL
and reports its measurement id in the result's "stream" block.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.CreateProperty(cmd.Context(), args[0], args[1], analytics.CreatePropertyOptions{URL: url})
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Website URL for an auto-provisioned web data stream")

	return cmd
}

func newPropertiesDeleteCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <property-id>",
		Short: "Soft-delete a property (moves it to GA4's trash)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.DeleteProperty(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}
}
