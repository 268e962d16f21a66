package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
)

// GCPSecretManagerStore keeps secrets in Google Secret Manager. It is the
// natural backend when the GA4 properties and the secrets should live in
// the same cloud.
type GCPSecretManagerStore struct {
	config GCPSecretManagerConfig
	client *secretmanager.Client
	logger *logging.Logger
}

// GCPSecretManagerConfig configures the Google Secret Manager backend.
type GCPSecretManagerConfig struct {
	ProjectID       string `yaml:"project_id"`                 // falls back to GOOGLE_CLOUD_PROJECT
	CredentialsFile string `yaml:"credentials_file,omitempty"` // service account key, ADC when empty
}

// NewGCPSecretManagerStore creates a new Google Secret Manager store.
func NewGCPSecretManagerStore(config GCPSecretManagerConfig) (*GCPSecretManagerStore, error) {
	if config.ProjectID == "" {
		if projectID := gcpProjectFromEnv(); projectID != "" {
			config.ProjectID = projectID
		} else {
			return nil, gopserrors.ConfigError{
				Field:      "vault.project_id",
				Message:    "project_id is required for the gcp.secretmanager backend",
				Suggestion: "Set vault.project_id in googleops.yaml or export GOOGLE_CLOUD_PROJECT",
			}
		}
	}

	client, err := createGCPSecretManagerClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &GCPSecretManagerStore{
		config: config,
		client: client,
		logger: logging.New(false, false),
	}, nil
}

// createGCPSecretManagerClient creates a Secret Manager client, with a
// service account key file when configured and application default
// credentials otherwise.
func createGCPSecretManagerClient(config GCPSecretManagerConfig) (*secretmanager.Client, error) {
	ctx := context.Background()

	var clientOptions []option.ClientOption
	if config.CredentialsFile != "" {
		keyPath := config.CredentialsFile
		if strings.HasPrefix(keyPath, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			keyPath = filepath.Join(home, keyPath[2:])
		}
		clientOptions = append(clientOptions, option.WithCredentialsFile(keyPath))
	}

	return secretmanager.NewClient(ctx, clientOptions...)
}

// gcpProjectFromEnv attempts to get the GCP project ID from the environment.
func gcpProjectFromEnv() string {
	for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT", "GCP_PROJECT"} {
		if projectID := os.Getenv(key); projectID != "" {
			return projectID
		}
	}
	return ""
}

// Name returns the backend identifier.
func (s *GCPSecretManagerStore) Name() string {
	return "gcp.secretmanager"
}

// Set adds a new version of name, creating the secret first when it does
// not exist yet.
func (s *GCPSecretManagerStore) Set(ctx context.Context, name, value string) error {
	parent := fmt.Sprintf("projects/%s/secrets/%s", s.config.ProjectID, name)

	addReq := &secretmanagerpb.AddSecretVersionRequest{
		Parent: parent,
		Payload: &secretmanagerpb.SecretPayload{
			Data: []byte(value),
		},
	}

	_, err := s.client.AddSecretVersion(ctx, addReq)
	if err == nil {
		s.logger.Debug("Added version to secret '%s' in project %s", name, s.config.ProjectID)
		return nil
	}

	if !strings.Contains(err.Error(), "NotFound") {
		return gopserrors.WrapStoreError(s.Name(), "set", name, err)
	}

	createReq := &secretmanagerpb.CreateSecretRequest{
		Parent:   fmt.Sprintf("projects/%s", s.config.ProjectID),
		SecretId: name,
		Secret: &secretmanagerpb.Secret{
			Replication: &secretmanagerpb.Replication{
				Replication: &secretmanagerpb.Replication_Automatic_{
					Automatic: &secretmanagerpb.Replication_Automatic{},
				},
			},
		},
	}
	if _, err := s.client.CreateSecret(ctx, createReq); err != nil {
		return gopserrors.WrapStoreError(s.Name(), "set", name, err)
	}

	if _, err := s.client.AddSecretVersion(ctx, addReq); err != nil {
		return gopserrors.WrapStoreError(s.Name(), "set", name, err)
	}

	s.logger.Debug("Created secret '%s' in project %s", name, s.config.ProjectID)
	return nil
}

// Get returns the latest version of name.
func (s *GCPSecretManagerStore) Get(ctx context.Context, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.config.ProjectID, name),
	}

	result, err := s.client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", gopserrors.WrapStoreError(s.Name(), "get", name, err)
	}

	if result.Payload == nil || result.Payload.Data == nil {
		return "", gopserrors.StoreError{
			Store:   s.Name(),
			Op:      "get",
			Secret:  name,
			Message: "secret has no data",
		}
	}

	return string(result.Payload.Data), nil
}

// Validate checks access by listing at most one secret.
func (s *GCPSecretManagerStore) Validate(ctx context.Context) error {
	req := &secretmanagerpb.ListSecretsRequest{
		Parent:   fmt.Sprintf("projects/%s", s.config.ProjectID),
		PageSize: 1,
	}

	iter := s.client.ListSecrets(ctx, req)
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return gopserrors.WrapStoreError(s.Name(), "validate", "", err)
	}

	return nil
}
