package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "googleops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearOverlayEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLEOPS_CONFIG", "GOOGLEOPS_ADDR",
		"AZURE_KEY_VAULT_NAME", "AZURE_KEY_VAULT_URL",
		"COSMOS_ENDPOINT", "COSMOS_DATABASE",
	} {
		t.Setenv(key, "")
	}
}

func TestConfigLoad(t *testing.T) {
	clearOverlayEnv(t)

	path := writeConfig(t, `cli:
  script: ./scripts/google-cli.py
  interpreter: python3
  timeout_ms: 30000

vault:
  type: azure.cli
  vault_name: kv-terprint-dev

server:
  addr: ":8000"
  cosmos_database: TerprintAI
`)

	cfg := &Config{Path: path, Logger: logging.New(false, false)}
	require.NoError(t, cfg.Load())

	assert.Equal(t, "./scripts/google-cli.py", cfg.CLI().Script)
	assert.Equal(t, "python3", cfg.CLI().Interpreter)
	assert.Equal(t, 30000, cfg.CLI().TimeoutMs)

	assert.Equal(t, "azure.cli", cfg.Vault().Type)
	assert.Equal(t, "kv-terprint-dev", cfg.Vault().Config["vault_name"])

	assert.Equal(t, ":8000", cfg.Server().Addr)
	assert.Equal(t, "TerprintAI", cfg.Server().CosmosDatabase)
}

func TestConfigLoadVaultInlineKeys(t *testing.T) {
	clearOverlayEnv(t)

	path := writeConfig(t, `vault:
  type: aws.parameterstore
  region: eu-west-1
  parameter_prefix: /googleops/
`)

	cfg := &Config{Path: path}
	require.NoError(t, cfg.Load())

	vault := cfg.Vault()
	assert.Equal(t, "aws.parameterstore", vault.Type)
	assert.Equal(t, "eu-west-1", vault.Config["region"])
	assert.Equal(t, "/googleops/", vault.Config["parameter_prefix"])
	assert.NotContains(t, vault.Config, "type", "the type key stays out of the backend block")
}

func TestConfigLoadMissingFileRunsOnDefaults(t *testing.T) {
	clearOverlayEnv(t)

	cfg := &Config{Path: filepath.Join(t.TempDir(), "googleops.yaml")}
	err := cfg.Load()
	require.Error(t, err, "explicit path must exist")

	var configErr gopserrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "config", configErr.Field)
}

func TestConfigLoadNoPathNoFile(t *testing.T) {
	clearOverlayEnv(t)
	t.Chdir(t.TempDir())

	cfg := &Config{}
	require.NoError(t, cfg.Load(), "conventional file is optional")
	require.NotNil(t, cfg.Definition)
	assert.Empty(t, cfg.Vault().Type)
}

func TestConfigLoadHonorsConfigEnv(t *testing.T) {
	clearOverlayEnv(t)

	path := writeConfig(t, `vault:
  type: memory
`)
	t.Setenv("GOOGLEOPS_CONFIG", path)

	cfg := &Config{}
	require.NoError(t, cfg.Load())
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "memory", cfg.Vault().Type)
}

func TestConfigEnvOverlayWinsOverFile(t *testing.T) {
	clearOverlayEnv(t)

	path := writeConfig(t, `vault:
  type: azure.cli
  vault_name: kv-from-file

server:
  addr: ":8000"
  cosmos_database: FromFile
`)

	t.Setenv("AZURE_KEY_VAULT_NAME", "kv-from-env")
	t.Setenv("GOOGLEOPS_ADDR", ":9000")
	t.Setenv("COSMOS_DATABASE", "FromEnv")
	t.Setenv("COSMOS_ENDPOINT", "https://cosmos-from-env.documents.azure.com:443/")

	cfg := &Config{Path: path}
	require.NoError(t, cfg.Load())

	assert.Equal(t, "kv-from-env", cfg.Vault().Config["vault_name"])
	assert.Equal(t, ":9000", cfg.Server().Addr)
	assert.Equal(t, "FromEnv", cfg.Server().CosmosDatabase)
	assert.Equal(t, "https://cosmos-from-env.documents.azure.com:443/", cfg.Server().CosmosEndpoint)
}

func TestConfigEnvOverlayPopulatesVaultWithoutFile(t *testing.T) {
	clearOverlayEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("AZURE_KEY_VAULT_URL", "https://kv-terprint-dev.vault.azure.net")

	cfg := &Config{}
	require.NoError(t, cfg.Load())
	assert.Equal(t, "https://kv-terprint-dev.vault.azure.net", cfg.Vault().Config["vault_url"])
}

func TestConfigLoadInvalidYAML(t *testing.T) {
	clearOverlayEnv(t)

	path := writeConfig(t, "cli:\n  script: [unclosed\n")

	cfg := &Config{Path: path}
	err := cfg.Load()
	require.Error(t, err)

	var configErr gopserrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Message, "invalid YAML syntax")
}

func TestConfigAccessorsTolerateUnloaded(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Empty(t, cfg.CLI().Script)
	assert.Empty(t, cfg.Vault().Type)
	assert.Empty(t, cfg.Server().Addr)
}

func TestGA4SecretName(t *testing.T) {
	t.Setenv("GA4_SECRET_NAME", "")
	assert.Equal(t, "ga4-service-account-json", GA4SecretName())

	t.Setenv("GA4_SECRET_NAME", "custom-ga4-secret")
	assert.Equal(t, "custom-ga4-secret", GA4SecretName())
}
