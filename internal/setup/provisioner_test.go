package setup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acidni/googleops/internal/analytics"
	"github.com/acidni/googleops/internal/setup"
	"github.com/acidni/googleops/internal/vault"
)

// fakeAnalytics cans the create-property result and records the call.
type fakeAnalytics struct {
	result analytics.Result
	err    error

	displayName string
	accountID   string
	opts        analytics.CreatePropertyOptions
	calls       int
}

func (f *fakeAnalytics) CreateProperty(ctx context.Context, displayName, accountID string, opts analytics.CreatePropertyOptions) (analytics.Result, error) {
	f.calls++
	f.displayName = displayName
	f.accountID = accountID
	f.opts = opts
	return f.result, f.err
}

// failingStore rejects every write.
type failingStore struct {
	vault.Store
	err error
}

func (f *failingStore) Set(ctx context.Context, name, value string) error {
	return f.err
}

func propertyWithStream() analytics.Result {
	return analytics.ObjectResult(map[string]interface{}{
		"name":        "properties/1",
		"displayName": "Acme",
		"stream": map[string]interface{}{
			"name":          "properties/1/dataStreams/2",
			"measurementId": "G-ABC123",
			"defaultUri":    "https://acme.test",
		},
	})
}

func TestSetupProductStoresMeasurementID(t *testing.T) {
	t.Parallel()

	fake := &fakeAnalytics{result: propertyWithStream()}
	store := vault.NewMemoryStore()
	provisioner := &setup.Provisioner{Analytics: fake, Vault: store}

	outcome, err := provisioner.SetupProduct(context.Background(), "Acme", "123", "https://acme.test", "acme-mid")
	require.NoError(t, err)

	assert.Equal(t, "Acme", fake.displayName)
	assert.Equal(t, "123", fake.accountID)
	assert.Equal(t, "https://acme.test", fake.opts.URL)

	assert.Equal(t, fake.result, outcome.Property, "the create-property result passes through untouched")
	assert.Equal(t, "G-ABC123", outcome.MeasurementID)
	assert.Equal(t, "acme-mid", outcome.SecretName)
	assert.Empty(t, outcome.Warning)

	assert.Equal(t, 1, store.SetCalls, "exactly one secret write")
	value, err := store.Get(context.Background(), "acme-mid")
	require.NoError(t, err)
	assert.Equal(t, "G-ABC123", value)
}

func TestSetupProductWithoutStreamWarns(t *testing.T) {
	t.Parallel()

	result := analytics.ObjectResult(map[string]interface{}{
		"name":        "properties/1",
		"displayName": "Acme",
	})
	fake := &fakeAnalytics{result: result}
	store := vault.NewMemoryStore()
	provisioner := &setup.Provisioner{Analytics: fake, Vault: store}

	outcome, err := provisioner.SetupProduct(context.Background(), "Acme", "123", "https://acme.test", "acme-mid")
	require.NoError(t, err, "a missing stream is a warning, never an error")

	assert.Equal(t, result, outcome.Property)
	assert.Empty(t, outcome.MeasurementID)
	assert.Contains(t, outcome.Warning, "acme-mid")
	assert.Zero(t, store.SetCalls, "nothing may be written without a measurement id")
}

func TestSetupProductEmptyMeasurementIDWarns(t *testing.T) {
	t.Parallel()

	fake := &fakeAnalytics{result: analytics.ObjectResult(map[string]interface{}{
		"name":   "properties/1",
		"stream": map[string]interface{}{"measurementId": ""},
	})}
	store := vault.NewMemoryStore()
	provisioner := &setup.Provisioner{Analytics: fake, Vault: store}

	outcome, err := provisioner.SetupProduct(context.Background(), "Acme", "123", "https://acme.test", "acme-mid")
	require.NoError(t, err)

	assert.NotEmpty(t, outcome.Warning)
	assert.Zero(t, store.SetCalls)
}

func TestSetupProductNonObjectResultWarns(t *testing.T) {
	t.Parallel()

	fake := &fakeAnalytics{result: analytics.TextResult("created properties/1")}
	store := vault.NewMemoryStore()
	provisioner := &setup.Provisioner{Analytics: fake, Vault: store}

	outcome, err := provisioner.SetupProduct(context.Background(), "Acme", "123", "https://acme.test", "acme-mid")
	require.NoError(t, err)

	assert.Equal(t, fake.result, outcome.Property)
	assert.NotEmpty(t, outcome.Warning)
	assert.Zero(t, store.SetCalls)
}

func TestSetupProductCreateFailurePropagates(t *testing.T) {
	t.Parallel()

	fake := &fakeAnalytics{err: errors.New("create-property failed")}
	store := vault.NewMemoryStore()
	provisioner := &setup.Provisioner{Analytics: fake, Vault: store}

	_, err := provisioner.SetupProduct(context.Background(), "Acme", "123", "https://acme.test", "acme-mid")
	require.Error(t, err)
	assert.Zero(t, store.SetCalls)
}

func TestSetupProductStoreFailureIsAnError(t *testing.T) {
	t.Parallel()

	fake := &fakeAnalytics{result: propertyWithStream()}
	provisioner := &setup.Provisioner{
		Analytics: fake,
		Vault:     &failingStore{err: errors.New("vault unreachable")},
	}

	_, err := provisioner.SetupProduct(context.Background(), "Acme", "123", "https://acme.test", "acme-mid")
	require.Error(t, err, "a measurement id that fails to store must not be silently dropped")
	assert.Contains(t, err.Error(), "vault unreachable")
}
