package commands

import (
	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
	"github.com/acidni/googleops/internal/setup"
)

// NewSetupCommand creates the 'setup' command.
func NewSetupCommand(cfg *config.Config) *cobra.Command {
	var storeType string

	cmd := &cobra.Command{
		Use:   "setup <product-name> <account-id> <url> <secret-name>",
		Short: "Provision GA4 for a product end to end",
		Long: `Create a GA4 property for a product, let the admin script provision a web
data stream for the product URL, and store the stream's measurement id in
the secret vault under the given name.

When the create-property result carries no measurement id the property still
counts as created: the command prints a warning and stores nothing.

Examples:
  googleops setup "Terprint" 100 https://terprint.acidni.com terprint-measurement-id`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			client, err := newAnalyticsClient(cfg)
			if err != nil {
				return err
			}

			store, err := newVaultStore(cfg, storeType)
			if err != nil {
				return err
			}

			provisioner := &setup.Provisioner{
				Analytics: client,
				Vault:     store,
				Logger:    cfg.Logger,
			}

			outcome, err := provisioner.SetupProduct(cmd.Context(), args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}

			if outcome.Warning != "" {
				cfg.Logger.Warn("%s", outcome.Warning)
			}

			payload := map[string]interface{}{
				"property":   outcome.Property,
				"secretName": outcome.SecretName,
			}
			if outcome.MeasurementID != "" {
				payload["measurementId"] = outcome.MeasurementID
			}
			if outcome.Warning != "" {
				payload["warning"] = outcome.Warning
			}

			return printJSON(payload)
		},
	}

	cmd.Flags().StringVar(&storeType, "store", "", "Secret store backend (default from config, else azure.cli)")

	return cmd
}
