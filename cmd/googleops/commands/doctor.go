package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
	"github.com/acidni/googleops/internal/products"
	"github.com/acidni/googleops/internal/vault"
)

// NewDoctorCommand creates the 'doctor' command.
func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, the admin script, and the secret store",
		Long: `Verify that googleops is ready to run.

This command checks:
- Configuration file validity
- The GA4 admin script and its interpreter
- Secret store construction and connectivity
- The Cosmos DB settings the apis commands will use`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]checkResult, 0, 6)

			cfg.Logger.Info("Checking googleops configuration...")
			if err := cfg.Load(); err != nil {
				results = append(results, checkResult{Name: "config", Status: "error", Detail: err.Error()})
				displayChecks(results)
				return fmt.Errorf("configuration check failed")
			}
			results = append(results, checkResult{Name: "config", Status: "ok", Detail: cfg.Path})

			if client, err := newAnalyticsClient(cfg); err != nil {
				results = append(results, checkResult{Name: "admin script", Status: "error", Detail: err.Error()})
			} else {
				results = append(results, checkResult{
					Name:   "admin script",
					Status: "ok",
					Detail: fmt.Sprintf("%s %s", client.Interpreter(), client.ScriptPath()),
				})
			}

			results = append(results, checkResult{
				Name:   "ga4 secret",
				Status: "ok",
				Detail: fmt.Sprintf("script reads GA4_SECRET_NAME=%s", config.GA4SecretName()),
			})

			registry := vault.NewRegistry()
			if store, err := registry.Create(cfg.Vault()); err != nil {
				results = append(results, checkResult{Name: "vault", Status: "error", Detail: err.Error()})
			} else if err := store.Validate(cmd.Context()); err != nil {
				results = append(results, checkResult{Name: "vault", Status: "error", Detail: err.Error()})
			} else {
				results = append(results, checkResult{Name: "vault", Status: "ok", Detail: store.Name()})
			}

			results = append(results, checkResult{
				Name:   "vault backends",
				Status: "ok",
				Detail: strings.Join(registry.SupportedTypes(), ", "),
			})

			results = append(results, checkResult{Name: "cosmos", Status: "ok", Detail: cosmosDetail(cfg)})

			displayChecks(results)

			failed := 0
			for _, result := range results {
				if result.Status == "error" {
					failed++
				}
			}

			fmt.Printf("\nSummary: %d/%d checks passed\n", len(results)-failed, len(results))
			if failed > 0 {
				return fmt.Errorf("%d checks failed", failed)
			}

			cfg.Logger.Info("✓ All systems operational!")
			return nil
		},
	}

	return cmd
}

// checkResult is one row of the doctor report.
type checkResult struct {
	Name   string
	Status string // ok, error
	Detail string
}

// displayChecks shows the doctor results in a formatted table.
func displayChecks(results []checkResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "CHECK\tSTATUS\tDETAIL\n")
	_, _ = fmt.Fprintf(w, "-----\t------\t------\n")

	for _, result := range results {
		status := result.Status
		switch result.Status {
		case "ok":
			status = "✓ " + status
		case "error":
			status = "✗ " + status
		}

		// Errors can be multi-line; the table shows the first line only.
		detail := result.Detail
		if i := strings.IndexByte(detail, '\n'); i >= 0 {
			detail = detail[:i]
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", result.Name, status, detail)
	}

	_ = w.Flush()
}

// cosmosDetail reports the endpoint and database the apis commands will use.
func cosmosDetail(cfg *config.Config) string {
	endpoint := cfg.Server().CosmosEndpoint
	if endpoint == "" {
		endpoint = products.DefaultEndpoint
	}
	database := cfg.Server().CosmosDatabase
	if database == "" {
		database = products.DefaultDatabase
	}
	return fmt.Sprintf("%s (database %s)", endpoint, database)
}
