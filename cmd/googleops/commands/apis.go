package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/products"
)

// NewAPIsCommand creates the parent 'apis' command.
func NewAPIsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apis",
		Short: "Manage which Google services a product has enabled",
		Long: `Enable, disable, and inspect the Google service configuration of an Acidni
product. Configurations live in the google_configs Cosmos DB container, one
document per product code.

Examples:
  googleops apis enable TERP --services analytics,tags --product-name Terprint
  googleops apis disable TERP --services tags
  googleops apis status TERP`,
	}

	cmd.AddCommand(
		newAPIsEnableCommand(cfg),
		newAPIsDisableCommand(cfg),
		newAPIsStatusCommand(cfg),
	)

	return cmd
}

// newProductsStore builds the Cosmos-backed store from the server section.
func newProductsStore(cfg *config.Config) (*products.Store, error) {
	server := cfg.Server()
	return products.NewStore(products.Options{
		Endpoint: server.CosmosEndpoint,
		Database: server.CosmosDatabase,
		Logger:   cfg.Logger,
	})
}

// splitServices parses the --services flag into the service list.
func splitServices(value string) ([]string, error) {
	var services []string
	for _, service := range strings.Split(value, ",") {
		service = strings.TrimSpace(service)
		if service != "" {
			services = append(services, service)
		}
	}
	if len(services) == 0 {
		return nil, gopserrors.UserError{
			Message:    "No services given",
			Suggestion: "Pass --services with a comma-separated list, e.g. --services analytics,tags",
		}
	}
	return services, nil
}

func newAPIsEnableCommand(cfg *config.Config) *cobra.Command {
	var (
		servicesFlag string
		productName  string
	)

	cmd := &cobra.Command{
		Use:   "enable <product-code>",
		Short: "Enable Google services for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			services, err := splitServices(servicesFlag)
			if err != nil {
				return err
			}

			store, err := newProductsStore(cfg)
			if err != nil {
				return err
			}

			serviceConfig := map[string]interface{}{}
			if productName != "" {
				serviceConfig["productName"] = productName
			}

			result, err := store.EnableAPIs(cmd.Context(), args[0], services, serviceConfig)
			if err != nil {
				return err
			}

			cfg.Logger.Info("✓ Enabled %s for %s", strings.Join(services, ", "), args[0])
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&servicesFlag, "services", "", "Comma-separated services to enable: analytics, tags, adsense, ads (required)")
	cmd.Flags().StringVar(&productName, "product-name", "", "Human-readable product name stored with the configuration")
	_ = cmd.MarkFlagRequired("services")

	return cmd
}

func newAPIsDisableCommand(cfg *config.Config) *cobra.Command {
	var servicesFlag string

	cmd := &cobra.Command{
		Use:   "disable <product-code>",
		Short: "Disable Google services for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			services, err := splitServices(servicesFlag)
			if err != nil {
				return err
			}

			store, err := newProductsStore(cfg)
			if err != nil {
				return err
			}

			result, err := store.DisableAPIs(cmd.Context(), args[0], services)
			if err != nil {
				return err
			}

			cfg.Logger.Info("✓ Disabled %s for %s", strings.Join(services, ", "), args[0])
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&servicesFlag, "services", "", "Comma-separated services to disable (required)")
	_ = cmd.MarkFlagRequired("services")

	return cmd
}

func newAPIsStatusCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status <product-code>",
		Short: "Show which services a product has enabled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			store, err := newProductsStore(cfg)
			if err != nil {
				return err
			}

			status, err := store.GetStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(status)
		},
	}
}
