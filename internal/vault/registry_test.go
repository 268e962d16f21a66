package vault_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acidni/googleops/internal/config"
	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/vault"
)

func TestRegistrySupportedTypes(t *testing.T) {
	t.Parallel()

	registry := vault.NewRegistry()

	assert.Equal(t, []string{
		"aws.parameterstore",
		"aws.secretsmanager",
		"azure.cli",
		"azure.keyvault",
		"gcp.secretmanager",
		"keyring",
		"memory",
	}, registry.SupportedTypes())
}

func TestRegistryIsSupported(t *testing.T) {
	t.Parallel()

	registry := vault.NewRegistry()

	assert.True(t, registry.IsSupported("azure.cli"))
	assert.True(t, registry.IsSupported("memory"))
	assert.False(t, registry.IsSupported("hashicorp.vault"))
}

func TestRegistryCreateUnknownType(t *testing.T) {
	t.Parallel()

	registry := vault.NewRegistry()

	_, err := registry.Create(config.VaultConfig{Type: "hashicorp.vault"})
	require.Error(t, err)

	var configErr gopserrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "vault.type", configErr.Field)
	assert.Contains(t, configErr.Suggestion, "Supported backends:")
	assert.Contains(t, configErr.Suggestion, "azure.keyvault")
}

func TestRegistryCreateDefaultsToAzureCLI(t *testing.T) {
	t.Parallel()

	registry := vault.NewRegistry()

	store, err := registry.Create(config.VaultConfig{
		Config: map[string]interface{}{"vault_name": "kv-terprint-dev"},
	})
	require.NoError(t, err)
	assert.Equal(t, "azure.cli", store.Name())
}

func TestRegistryCreateAzureCLIMissingVaultName(t *testing.T) {
	t.Parallel()

	registry := vault.NewRegistry()

	_, err := registry.Create(config.VaultConfig{Type: "azure.cli"})
	require.Error(t, err)

	var configErr gopserrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "vault.vault_name", configErr.Field)
}

func TestRegistryCreateMemoryWithSeedValues(t *testing.T) {
	t.Parallel()

	registry := vault.NewRegistry()

	store, err := registry.Create(config.VaultConfig{
		Type: "memory",
		Config: map[string]interface{}{
			"values": map[string]interface{}{"acme-mid": "G-ABC123"},
		},
	})
	require.NoError(t, err)

	value, err := store.Get(context.Background(), "acme-mid")
	require.NoError(t, err)
	assert.Equal(t, "G-ABC123", value)
}

func TestRegistryCreateKeyring(t *testing.T) {
	t.Parallel()

	registry := vault.NewRegistry()

	store, err := registry.Create(config.VaultConfig{
		Type:   "keyring",
		Config: map[string]interface{}{"service": "googleops-test"},
	})
	require.NoError(t, err)
	assert.Equal(t, "keyring", store.Name())
}

func TestRegistryRegisterFactoryOverrides(t *testing.T) {
	t.Parallel()

	registry := vault.NewRegistry()
	registry.RegisterFactory("memory", func(map[string]interface{}) (vault.Store, error) {
		store := vault.NewMemoryStore()
		_ = store.Set(context.Background(), "seeded", "yes")
		return store, nil
	})

	store, err := registry.Create(config.VaultConfig{Type: "memory"})
	require.NoError(t, err)

	value, err := store.Get(context.Background(), "seeded")
	require.NoError(t, err)
	assert.Equal(t, "yes", value)
}
