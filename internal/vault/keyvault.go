package vault

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
)

// KeyVaultClientAPI defines the interface for Azure Key Vault operations.
// This allows for mocking in tests.
type KeyVaultClientAPI interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
	SetSecret(ctx context.Context, name string, parameters azsecrets.SetSecretParameters, options *azsecrets.SetSecretOptions) (azsecrets.SetSecretResponse, error)
	// Note: NewListSecretPropertiesPager is excluded from the interface
	// because it returns a concrete pager type that is difficult to mock.
	// Validate type-asserts to the real client for the paging probe.
}

// KeyVaultStore talks to Azure Key Vault through the azsecrets SDK. Unlike
// azure.cli it needs no az binary, so it fits CI and service deployments.
type KeyVaultStore struct {
	config KeyVaultConfig
	client KeyVaultClientAPI
	logger *logging.Logger
}

// KeyVaultConfig configures the Azure Key Vault SDK backend.
type KeyVaultConfig struct {
	VaultURL     string `yaml:"vault_url"`               // e.g. https://my-vault.vault.azure.net/
	TenantID     string `yaml:"tenant_id,omitempty"`     // service principal auth
	ClientID     string `yaml:"client_id,omitempty"`     // service principal auth
	ClientSecret string `yaml:"client_secret,omitempty"` // service principal auth
}

// KeyVaultOption is a functional option for configuring the store.
type KeyVaultOption func(*KeyVaultStore)

// WithKeyVaultClient sets a custom Key Vault client (for testing).
func WithKeyVaultClient(client KeyVaultClientAPI) KeyVaultOption {
	return func(s *KeyVaultStore) {
		s.client = client
	}
}

// NewKeyVaultStore creates a new Azure Key Vault store.
func NewKeyVaultStore(config KeyVaultConfig, opts ...KeyVaultOption) (*KeyVaultStore, error) {
	if config.VaultURL == "" {
		return nil, gopserrors.ConfigError{
			Field:      "vault.vault_url",
			Message:    "vault_url is required for the azure.keyvault backend",
			Suggestion: "Provide the Key Vault URL (e.g., https://my-vault.vault.azure.net/)",
		}
	}
	if _, err := url.Parse(config.VaultURL); err != nil {
		return nil, gopserrors.ConfigError{
			Field:      "vault.vault_url",
			Value:      config.VaultURL,
			Message:    "invalid vault_url format",
			Suggestion: "Use format: https://vault-name.vault.azure.net/",
		}
	}

	store := &KeyVaultStore{
		config: config,
		logger: logging.New(false, false),
	}

	// Apply options (allows mock client injection)
	for _, opt := range opts {
		opt(store)
	}

	if store.client == nil {
		client, err := createKeyVaultClient(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Key Vault client: %w", err)
		}
		store.client = client
	}

	return store, nil
}

// createKeyVaultClient creates an azsecrets client with appropriate
// authentication. A full service principal triple selects client secret
// auth; otherwise the default credential chain covers managed identity,
// environment variables, and az CLI sessions.
func createKeyVaultClient(config KeyVaultConfig) (*azsecrets.Client, error) {
	var cred azcore.TokenCredential
	var err error

	if config.TenantID != "" && config.ClientID != "" && config.ClientSecret != "" {
		cred, err = azidentity.NewClientSecretCredential(config.TenantID, config.ClientID, config.ClientSecret, nil)
	} else {
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azsecrets.NewClient(config.VaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	return client, nil
}

// Name returns the backend identifier.
func (s *KeyVaultStore) Name() string {
	return "azure.keyvault"
}

// Set writes value under name. Key Vault versions automatically.
func (s *KeyVaultStore) Set(ctx context.Context, name, value string) error {
	params := azsecrets.SetSecretParameters{Value: &value}
	if _, err := s.client.SetSecret(ctx, name, params, nil); err != nil {
		return gopserrors.WrapStoreError(s.Name(), "set", name, err)
	}

	s.logger.Debug("Stored secret '%s' in %s", name, s.config.VaultURL)
	return nil
}

// Get returns the latest version of name.
func (s *KeyVaultStore) Get(ctx context.Context, name string) (string, error) {
	resp, err := s.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return "", gopserrors.WrapStoreError(s.Name(), "get", name, err)
	}

	if resp.Value == nil {
		return "", gopserrors.StoreError{
			Store:   s.Name(),
			Op:      "get",
			Secret:  name,
			Message: "secret has no value",
		}
	}

	return *resp.Value, nil
}

// Validate checks connectivity by requesting the first page of secret
// properties. Mock clients skip the probe; tests inject errors through the
// mock's own methods instead.
func (s *KeyVaultStore) Validate(ctx context.Context) error {
	if realClient, ok := s.client.(*azsecrets.Client); ok {
		pager := realClient.NewListSecretPropertiesPager(nil)
		if _, err := pager.NextPage(ctx); err != nil {
			return gopserrors.WrapStoreError(s.Name(), "validate", "", err)
		}
	}

	return nil
}
