package vault

import (
	"sort"
	"strings"

	"github.com/acidni/googleops/internal/config"
	gopserrors "github.com/acidni/googleops/internal/errors"
)

// Factory builds a Store from the backend's configuration block.
type Factory func(config map[string]interface{}) (Store, error)

// Registry maps backend types to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry with all built-in backends registered.
func NewRegistry() *Registry {
	registry := &Registry{
		factories: make(map[string]Factory),
	}

	registry.RegisterFactory("azure.cli", NewAzureCLIStoreFactory)
	registry.RegisterFactory("azure.keyvault", NewKeyVaultStoreFactory)
	registry.RegisterFactory("gcp.secretmanager", NewGCPSecretManagerStoreFactory)
	registry.RegisterFactory("aws.secretsmanager", NewSecretsManagerStoreFactory)
	registry.RegisterFactory("aws.parameterstore", NewParameterStoreFactory)
	registry.RegisterFactory("keyring", NewKeyringStoreFactory)
	registry.RegisterFactory("memory", NewMemoryStoreFactory)

	return registry
}

// RegisterFactory registers a factory for a backend type, replacing any
// existing registration.
func (r *Registry) RegisterFactory(storeType string, factory Factory) {
	r.factories[storeType] = factory
}

// Create builds the Store described by cfg. The zero-value Type selects
// the default azure.cli backend.
func (r *Registry) Create(cfg config.VaultConfig) (Store, error) {
	storeType := cfg.Type
	if storeType == "" {
		storeType = "azure.cli"
	}

	factory, ok := r.factories[storeType]
	if !ok {
		return nil, gopserrors.ConfigError{
			Field:      "vault.type",
			Value:      storeType,
			Message:    "unknown vault backend",
			Suggestion: "Supported backends: " + strings.Join(r.SupportedTypes(), ", "),
		}
	}

	return factory(cfg.Config)
}

// SupportedTypes returns the registered backend types, sorted.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.factories))
	for storeType := range r.factories {
		types = append(types, storeType)
	}
	sort.Strings(types)
	return types
}

// IsSupported reports whether a backend type is registered.
func (r *Registry) IsSupported(storeType string) bool {
	_, ok := r.factories[storeType]
	return ok
}

// Factory functions for built-in backends

// NewAzureCLIStoreFactory builds the az CLI backed store.
func NewAzureCLIStoreFactory(configMap map[string]interface{}) (Store, error) {
	var cfg AzureCLIConfig
	if vaultName, ok := configMap["vault_name"].(string); ok {
		cfg.VaultName = vaultName
	}
	if binary, ok := configMap["binary"].(string); ok {
		cfg.Binary = binary
	}
	return NewAzureCLIStore(cfg)
}

// NewKeyVaultStoreFactory builds the Azure Key Vault SDK store.
func NewKeyVaultStoreFactory(configMap map[string]interface{}) (Store, error) {
	var cfg KeyVaultConfig
	if vaultURL, ok := configMap["vault_url"].(string); ok {
		cfg.VaultURL = vaultURL
	}
	if tenantID, ok := configMap["tenant_id"].(string); ok {
		cfg.TenantID = tenantID
	}
	if clientID, ok := configMap["client_id"].(string); ok {
		cfg.ClientID = clientID
	}
	if clientSecret, ok := configMap["client_secret"].(string); ok {
		cfg.ClientSecret = clientSecret
	}
	return NewKeyVaultStore(cfg)
}

// NewGCPSecretManagerStoreFactory builds the Google Secret Manager store.
func NewGCPSecretManagerStoreFactory(configMap map[string]interface{}) (Store, error) {
	var cfg GCPSecretManagerConfig
	if projectID, ok := configMap["project_id"].(string); ok {
		cfg.ProjectID = projectID
	}
	if keyPath, ok := configMap["credentials_file"].(string); ok {
		cfg.CredentialsFile = keyPath
	}
	return NewGCPSecretManagerStore(cfg)
}

// NewSecretsManagerStoreFactory builds the AWS Secrets Manager store.
func NewSecretsManagerStoreFactory(configMap map[string]interface{}) (Store, error) {
	cfg := parseAWSConfig(configMap)
	return NewSecretsManagerStore(cfg)
}

// NewParameterStoreFactory builds the AWS SSM Parameter Store store.
func NewParameterStoreFactory(configMap map[string]interface{}) (Store, error) {
	cfg := parseAWSConfig(configMap)
	if prefix, ok := configMap["parameter_prefix"].(string); ok {
		cfg.ParameterPrefix = prefix
	}
	return NewParameterStore(cfg)
}

// NewKeyringStoreFactory builds the OS keyring store.
func NewKeyringStoreFactory(configMap map[string]interface{}) (Store, error) {
	var cfg KeyringConfig
	if service, ok := configMap["service"].(string); ok {
		cfg.Service = service
	}
	return NewKeyringStore(cfg), nil
}

// NewMemoryStoreFactory builds the in-process store.
func NewMemoryStoreFactory(configMap map[string]interface{}) (Store, error) {
	store := NewMemoryStore()
	if values, ok := configMap["values"].(map[string]interface{}); ok {
		for name, value := range values {
			if str, ok := value.(string); ok {
				store.values[name] = str
			}
		}
	}
	return store, nil
}

// parseAWSConfig extracts the fields shared by both AWS backends.
func parseAWSConfig(configMap map[string]interface{}) AWSConfig {
	var cfg AWSConfig
	if region, ok := configMap["region"].(string); ok {
		cfg.Region = region
	}
	if profile, ok := configMap["profile"].(string); ok {
		cfg.Profile = profile
	}
	if endpoint, ok := configMap["endpoint"].(string); ok {
		cfg.Endpoint = endpoint
	}
	if accessKey, ok := configMap["access_key_id"].(string); ok {
		cfg.AccessKeyID = accessKey
	}
	if secretKey, ok := configMap["secret_access_key"].(string); ok {
		cfg.SecretAccessKey = secretKey
	}
	return cfg
}
