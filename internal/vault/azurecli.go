package vault

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
	pkgexec "github.com/acidni/googleops/pkg/exec"
)

// AzureCLIStore writes secrets to Azure Key Vault by shelling out to the az
// binary. It is the default backend: any machine with a logged-in az session
// can use it without SDK credentials or a service principal.
type AzureCLIStore struct {
	config   AzureCLIConfig
	logger   *logging.Logger
	executor pkgexec.CommandExecutor
}

// AzureCLIConfig configures the az CLI backend.
type AzureCLIConfig struct {
	VaultName string `yaml:"vault_name"`       // Key Vault name, required
	Binary    string `yaml:"binary,omitempty"` // az binary override, defaults to "az"
}

// NewAzureCLIStore creates a new az CLI store.
func NewAzureCLIStore(config AzureCLIConfig) (*AzureCLIStore, error) {
	return NewAzureCLIStoreWithExecutor(config, pkgexec.DefaultExecutor())
}

// NewAzureCLIStoreWithExecutor creates a new az CLI store with a custom
// executor. This is primarily for testing, allowing command execution to be
// mocked.
func NewAzureCLIStoreWithExecutor(config AzureCLIConfig, executor pkgexec.CommandExecutor) (*AzureCLIStore, error) {
	if config.VaultName == "" {
		return nil, gopserrors.ConfigError{
			Field:      "vault.vault_name",
			Message:    "vault_name is required for the azure.cli backend",
			Suggestion: "Set vault.vault_name in googleops.yaml or export AZURE_KEY_VAULT_NAME",
		}
	}
	if config.Binary == "" {
		config.Binary = "az"
	}

	return &AzureCLIStore{
		config:   config,
		logger:   logging.New(false, false),
		executor: executor,
	}, nil
}

// Name returns the backend identifier.
func (s *AzureCLIStore) Name() string {
	return "azure.cli"
}

// Set stores value under name with 'az keyvault secret set'. Key Vault
// versions automatically, so setting an existing name adds a new version.
func (s *AzureCLIStore) Set(ctx context.Context, name, value string) error {
	stdout, stderr, err := s.executor.Execute(ctx, s.config.Binary,
		"keyvault", "secret", "set",
		"--vault-name", s.config.VaultName,
		"--name", name,
		"--value", value)
	if err != nil {
		// az argument errors echo the command line, value included.
		return s.wrapCLIError("set", name, stdout, stderr, err, value)
	}

	s.logger.Debug("Stored secret '%s' in key vault %s", name, s.config.VaultName)
	return nil
}

// Get reads the current value of name with 'az keyvault secret show'.
// The --output tsv format prints the bare value followed by a newline,
// which is stripped.
func (s *AzureCLIStore) Get(ctx context.Context, name string) (string, error) {
	stdout, stderr, err := s.executor.Execute(ctx, s.config.Binary,
		"keyvault", "secret", "show",
		"--vault-name", s.config.VaultName,
		"--name", name,
		"--query", "value",
		"--output", "tsv")
	if err != nil {
		return "", s.wrapCLIError("get", name, stdout, stderr, err)
	}

	return strings.TrimRight(string(stdout), "\r\n"), nil
}

// Validate checks that the az binary exists and a session is logged in.
func (s *AzureCLIStore) Validate(ctx context.Context) error {
	if _, err := exec.LookPath(s.config.Binary); err != nil {
		return gopserrors.WrapCommandNotFound(s.config.Binary, err)
	}

	stdout, stderr, err := s.executor.Execute(ctx, s.config.Binary,
		"account", "show", "--output", "none")
	if err != nil {
		return s.wrapCLIError("validate", "", stdout, stderr, err)
	}

	return nil
}

// wrapCLIError folds az's own words into the store error so the suggestion
// matcher sees codes like SecretNotFound or AADSTS. Any sensitive values are
// redacted from the payload first.
func (s *AzureCLIStore) wrapCLIError(op, secret string, stdout, stderr []byte, err error, sensitive ...string) error {
	payload := strings.TrimSpace(string(stderr))
	if payload == "" {
		payload = strings.TrimSpace(string(stdout))
	}
	if payload != "" {
		payload = logging.Redact(payload, sensitive)
		err = fmt.Errorf("%s: %w", payload, err)
	}
	return gopserrors.WrapStoreError(s.Name(), op, secret, err)
}
