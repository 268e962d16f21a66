// Package config loads googleops.yaml and overlays the process environment
// on top of it. The file is optional: with no file present the tool runs on
// conventional defaults plus whatever the environment supplies.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
	pkgexec "github.com/acidni/googleops/pkg/exec"
)

// DefaultFile is the conventional configuration file name, looked up in the
// working directory when no path is given.
const DefaultFile = "googleops.yaml"

// Config holds the runtime configuration carrier handed to commands.
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition

	// TimeoutMs carries the --timeout flag; positive values override
	// cli.timeout_ms from the file.
	TimeoutMs int
	// Executor overrides the child-process runner for commands that shell
	// out. Nil selects the real one; tests inject a mock.
	Executor pkgexec.CommandExecutor
}

// Definition represents the googleops.yaml structure.
type Definition struct {
	CLI    CLIConfig    `yaml:"cli,omitempty"`
	Vault  VaultConfig  `yaml:"vault,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
}

// CLIConfig configures the GA4 admin script invocation.
type CLIConfig struct {
	Script      string `yaml:"script,omitempty"`      // path to google-cli.py
	Interpreter string `yaml:"interpreter,omitempty"` // defaults to python3
	TimeoutMs   int    `yaml:"timeout_ms,omitempty"`  // 0 = no timeout
}

// VaultConfig selects a secret store backend. Everything besides type is
// backend-specific and passed through to the backend's factory.
type VaultConfig struct {
	Type   string                 `yaml:"type"`
	Config map[string]interface{} `yaml:",inline"`
}

// ServerConfig configures the HTTP service and its Cosmos DB backend.
type ServerConfig struct {
	Addr           string `yaml:"addr,omitempty"`
	CosmosEndpoint string `yaml:"cosmos_endpoint,omitempty"`
	CosmosDatabase string `yaml:"cosmos_database,omitempty"`
}

// envOverlay captures the environment variables that override file values.
type envOverlay struct {
	Addr           string `env:"GOOGLEOPS_ADDR"`
	VaultName      string `env:"AZURE_KEY_VAULT_NAME"`
	VaultURL       string `env:"AZURE_KEY_VAULT_URL"`
	CosmosEndpoint string `env:"COSMOS_ENDPOINT"`
	CosmosDatabase string `env:"COSMOS_DATABASE"`
}

// Load reads the googleops.yaml file, validates it against the schema, and
// applies the environment overlay. A missing file is only an error when the
// path was requested explicitly (flag or GOOGLEOPS_CONFIG).
func (c *Config) Load() error {
	explicit := c.Path != ""
	if !explicit {
		if envPath := os.Getenv("GOOGLEOPS_CONFIG"); envPath != "" {
			c.Path = envPath
			explicit = true
		} else {
			c.Path = DefaultFile
		}
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				c.Definition = &Definition{}
				return applyEnvOverlay(c.Definition)
			}
			return gopserrors.ConfigError{
				Field:      "config",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Check the --config path or unset GOOGLEOPS_CONFIG to run on defaults",
			}
		}
		return gopserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	if err := validateSchema(data); err != nil {
		return err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return gopserrors.ConfigError{
			Field:      "config",
			Value:      c.Path,
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}

	if err := applyEnvOverlay(&def); err != nil {
		return err
	}

	c.Definition = &def
	return nil
}

// applyEnvOverlay merges the process environment into def. Environment
// values win over file values.
func applyEnvOverlay(def *Definition) error {
	var overlay envOverlay
	if err := env.Parse(&overlay); err != nil {
		return gopserrors.ConfigError{
			Field:      "environment",
			Message:    "failed to parse environment variables",
			Suggestion: err.Error(),
		}
	}

	if overlay.Addr != "" {
		def.Server.Addr = overlay.Addr
	}
	if overlay.CosmosEndpoint != "" {
		def.Server.CosmosEndpoint = overlay.CosmosEndpoint
	}
	if overlay.CosmosDatabase != "" {
		def.Server.CosmosDatabase = overlay.CosmosDatabase
	}

	if overlay.VaultName != "" {
		def.Vault.setKey("vault_name", overlay.VaultName)
	}
	if overlay.VaultURL != "" {
		def.Vault.setKey("vault_url", overlay.VaultURL)
	}

	return nil
}

func (v *VaultConfig) setKey(key, value string) {
	if v.Config == nil {
		v.Config = make(map[string]interface{})
	}
	v.Config[key] = value
}

// CLI returns the cli section, tolerating an unloaded Definition.
func (c *Config) CLI() CLIConfig {
	if c.Definition == nil {
		return CLIConfig{}
	}
	return c.Definition.CLI
}

// Vault returns the vault section, tolerating an unloaded Definition.
func (c *Config) Vault() VaultConfig {
	if c.Definition == nil {
		return VaultConfig{}
	}
	return c.Definition.Vault
}

// Server returns the server section, tolerating an unloaded Definition.
func (c *Config) Server() ServerConfig {
	if c.Definition == nil {
		return ServerConfig{}
	}
	return c.Definition.Server
}

// GA4SecretName names the Key Vault secret holding the service account JSON
// the admin script authenticates with. The script reads GA4_SECRET_NAME from
// its own (inherited) environment; this accessor exists so doctor can report
// what the script will see.
func GA4SecretName() string {
	if name := os.Getenv("GA4_SECRET_NAME"); name != "" {
		return name
	}
	return "ga4-service-account-json"
}
