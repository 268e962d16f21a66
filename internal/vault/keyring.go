package vault

import (
	"context"
	"errors"

	"github.com/zalando/go-keyring"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
)

// defaultKeyringService namespaces googleops entries in the OS keyring.
const defaultKeyringService = "googleops"

// KeyringStore keeps secrets in the operating system credential store
// (macOS Keychain, Linux Secret Service, Windows Credential Manager).
// Useful for developer workstations that should not hold cloud credentials.
type KeyringStore struct {
	config KeyringConfig
	logger *logging.Logger
}

// KeyringConfig configures the OS keyring backend.
type KeyringConfig struct {
	Service string `yaml:"service,omitempty"` // entry namespace, defaults to "googleops"
}

// NewKeyringStore creates a new OS keyring store.
func NewKeyringStore(config KeyringConfig) *KeyringStore {
	if config.Service == "" {
		config.Service = defaultKeyringService
	}
	return &KeyringStore{
		config: config,
		logger: logging.New(false, false),
	}
}

// Name returns the backend identifier.
func (s *KeyringStore) Name() string {
	return "keyring"
}

// Set writes value under name in the OS keyring.
func (s *KeyringStore) Set(ctx context.Context, name, value string) error {
	if err := keyring.Set(s.config.Service, name, value); err != nil {
		return gopserrors.WrapStoreError(s.Name(), "set", name, err)
	}

	s.logger.Debug("Stored secret '%s' in OS keyring service %s", name, s.config.Service)
	return nil
}

// Get returns the value stored under name.
func (s *KeyringStore) Get(ctx context.Context, name string) (string, error) {
	value, err := keyring.Get(s.config.Service, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", gopserrors.StoreError{
				Store:      s.Name(),
				Op:         "get",
				Secret:     name,
				Message:    "secret not found",
				Suggestion: "Store it first with 'googleops secret set'",
				Err:        err,
			}
		}
		return "", gopserrors.WrapStoreError(s.Name(), "get", name, err)
	}

	return value, nil
}

// Validate checks that a keyring backend is reachable. A not-found result
// for the probe entry still proves the keyring answered.
func (s *KeyringStore) Validate(ctx context.Context) error {
	_, err := keyring.Get(s.config.Service, "googleops-probe")
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return gopserrors.WrapStoreError(s.Name(), "validate", "", err)
	}
	return nil
}
