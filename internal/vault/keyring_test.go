package vault_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/vault"
)

// keyring.MockInit swaps the process-wide backend, so these tests must not
// run in parallel with each other.

func TestKeyringStoreSetAndGet(t *testing.T) {
	keyring.MockInit()

	store := vault.NewKeyringStore(vault.KeyringConfig{})
	require.NoError(t, store.Set(context.Background(), "acme-mid", "G-ABC123"))

	value, err := store.Get(context.Background(), "acme-mid")
	require.NoError(t, err)
	assert.Equal(t, "G-ABC123", value)
}

func TestKeyringStoreGetNotFound(t *testing.T) {
	keyring.MockInit()

	store := vault.NewKeyringStore(vault.KeyringConfig{})

	_, err := store.Get(context.Background(), "missing-mid")
	require.Error(t, err)

	var storeErr gopserrors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "keyring", storeErr.Store)
	assert.Equal(t, "secret not found", storeErr.Message)
	assert.Contains(t, storeErr.Suggestion, "googleops secret set")
}

func TestKeyringStoreServiceNamespacesEntries(t *testing.T) {
	keyring.MockInit()

	first := vault.NewKeyringStore(vault.KeyringConfig{Service: "googleops-dev"})
	second := vault.NewKeyringStore(vault.KeyringConfig{Service: "googleops-prod"})

	require.NoError(t, first.Set(context.Background(), "acme-mid", "G-DEV"))
	require.NoError(t, second.Set(context.Background(), "acme-mid", "G-PROD"))

	value, err := first.Get(context.Background(), "acme-mid")
	require.NoError(t, err)
	assert.Equal(t, "G-DEV", value)
}

func TestKeyringStoreValidate(t *testing.T) {
	keyring.MockInit()

	store := vault.NewKeyringStore(vault.KeyringConfig{})
	require.NoError(t, store.Validate(context.Background()))
}

func TestKeyringStoreName(t *testing.T) {
	store := vault.NewKeyringStore(vault.KeyringConfig{})
	assert.Equal(t, "keyring", store.Name())
}
