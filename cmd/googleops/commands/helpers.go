package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/acidni/googleops/internal/analytics"
	"github.com/acidni/googleops/internal/config"
	"github.com/acidni/googleops/internal/vault"
)

// runClient loads the configuration and builds the admin-script client.
// Every GA4 command starts this way.
func runClient(cfg *config.Config) (*analytics.Client, error) {
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return newAnalyticsClient(cfg)
}

// newAnalyticsClient builds the admin-script client from the loaded
// configuration. The --timeout flag wins over cli.timeout_ms.
func newAnalyticsClient(cfg *config.Config) (*analytics.Client, error) {
	cli := cfg.CLI()

	timeoutMs := cli.TimeoutMs
	if cfg.TimeoutMs > 0 {
		timeoutMs = cfg.TimeoutMs
	}

	return analytics.New(analytics.Options{
		ScriptPath:  cli.Script,
		Interpreter: cli.Interpreter,
		Executor:    cfg.Executor,
		Logger:      cfg.Logger,
		Timeout:     time.Duration(timeoutMs) * time.Millisecond,
	})
}

// newVaultStore builds the secret store. overrideType (--store) wins over
// vault.type from the file; both empty selects azure.cli.
func newVaultStore(cfg *config.Config, overrideType string) (vault.Store, error) {
	vaultCfg := cfg.Vault()
	if overrideType != "" {
		vaultCfg.Type = overrideType
	}

	registry := vault.NewRegistry()
	if cfg.Executor != nil {
		// Route the az CLI backend through the injected executor too.
		registry.RegisterFactory("azure.cli", func(configMap map[string]interface{}) (vault.Store, error) {
			var azCfg vault.AzureCLIConfig
			if vaultName, ok := configMap["vault_name"].(string); ok {
				azCfg.VaultName = vaultName
			}
			if binary, ok := configMap["binary"].(string); ok {
				azCfg.Binary = binary
			}
			return vault.NewAzureCLIStoreWithExecutor(azCfg, cfg.Executor)
		})
	}

	return registry.Create(vaultCfg)
}

// printResult renders a command result on stdout: structured results as
// indented JSON, the raw-text fallback verbatim.
func printResult(result analytics.Result) error {
	if text, ok := result.Text(); ok {
		fmt.Println(text)
		return nil
	}
	return printJSON(result.Value())
}

// printJSON writes v as indented JSON on stdout.
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
