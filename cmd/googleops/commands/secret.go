package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
	"github.com/acidni/googleops/internal/secure"
)

// NewSecretCommand creates the parent 'secret' command.
func NewSecretCommand(cfg *config.Config) *cobra.Command {
	var storeType string

	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Store and retrieve secrets from the configured vault",
		Long: `Store and retrieve named secrets (measurement IDs, API keys) in the
configured secret store. The default backend is the Azure CLI; --store
selects another backend for a single invocation.

Examples:
  googleops secret set terprint-measurement-id G-ABC123
  googleops secret get terprint-measurement-id
  googleops secret get terprint-measurement-id --store azure.keyvault

  # Use in scripts
  export GA_MEASUREMENT_ID=$(googleops secret get terprint-measurement-id)`,
	}

	cmd.PersistentFlags().StringVar(&storeType, "store", "", "Secret store backend (default from config, else azure.cli)")

	cmd.AddCommand(
		newSecretSetCommand(cfg, &storeType),
		newSecretGetCommand(cfg, &storeType),
	)

	return cmd
}

func newSecretSetCommand(cfg *config.Config, storeType *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a secret value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			store, err := newVaultStore(cfg, *storeType)
			if err != nil {
				return err
			}

			if err := store.Set(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			cfg.Logger.Info("✓ Stored secret '%s' in %s", args[0], store.Name())
			return nil
		},
	}
}

func newSecretGetCommand(cfg *config.Config, storeType *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print a secret value on stdout",
		Long: `Retrieve one secret and print its raw value on stdout, with no trailing
newline, so the output can feed command substitution directly. The value is
held in a locked memory enclave between retrieval and printing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			store, err := newVaultStore(cfg, *storeType)
			if err != nil {
				return err
			}

			value, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if value == "" {
				return nil
			}

			buf, err := secure.NewSecureBufferFromString(value)
			if err != nil {
				return err
			}
			defer buf.Destroy()

			locked, err := buf.Open()
			if err != nil {
				return err
			}
			defer locked.Destroy()

			_, err = os.Stdout.Write(locked.Bytes())
			return err
		},
	}
}
