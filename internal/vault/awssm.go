package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
)

// SecretsManagerClientAPI defines the interface for AWS Secrets Manager
// operations. This allows for mocking in tests.
type SecretsManagerClientAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
}

// AWSConfig holds the fields shared by both AWS backends. Endpoint and the
// static credential pair exist for LocalStack and testing.
type AWSConfig struct {
	Region          string `yaml:"region,omitempty"`
	Profile         string `yaml:"profile,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty"`
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
	ParameterPrefix string `yaml:"parameter_prefix,omitempty"` // aws.parameterstore only
}

// SecretsManagerStore keeps secrets in AWS Secrets Manager.
type SecretsManagerStore struct {
	config AWSConfig
	client SecretsManagerClientAPI
	logger *logging.Logger
}

// SecretsManagerOption is a functional option for configuring the store.
type SecretsManagerOption func(*SecretsManagerStore)

// WithSecretsManagerClient sets a custom Secrets Manager client (for testing).
func WithSecretsManagerClient(client SecretsManagerClientAPI) SecretsManagerOption {
	return func(s *SecretsManagerStore) {
		s.client = client
	}
}

// NewSecretsManagerStore creates a new AWS Secrets Manager store.
func NewSecretsManagerStore(config AWSConfig, opts ...SecretsManagerOption) (*SecretsManagerStore, error) {
	store := &SecretsManagerStore{
		config: config,
		logger: logging.New(false, false),
	}

	// Apply options (allows mock client injection)
	for _, opt := range opts {
		opt(store)
	}

	if store.client == nil {
		cfg, err := loadAWSConfig(config)
		if err != nil {
			return nil, err
		}

		var clientOpts []func(*secretsmanager.Options)
		if config.Endpoint != "" {
			clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
				o.BaseEndpoint = aws.String(config.Endpoint)
			})
		}
		store.client = secretsmanager.NewFromConfig(cfg, clientOpts...)
	}

	return store, nil
}

// loadAWSConfig resolves the AWS SDK configuration from the backend config,
// falling back to the default credential chain.
func loadAWSConfig(config AWSConfig) (aws.Config, error) {
	var configOpts []func(*awsconfig.LoadOptions) error

	if config.Region != "" {
		configOpts = append(configOpts, awsconfig.WithRegion(config.Region))
	}
	if config.Profile != "" {
		configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(config.Profile))
	}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return cfg, nil
}

// Name returns the backend identifier.
func (s *SecretsManagerStore) Name() string {
	return "aws.secretsmanager"
}

// Set writes value under name, creating the secret on first use and adding
// a new version afterwards.
func (s *SecretsManagerStore) Set(ctx context.Context, name, value string) error {
	putInput := &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(name),
		SecretString: aws.String(value),
	}

	_, err := s.client.PutSecretValue(ctx, putInput)
	if err == nil {
		s.logger.Debug("Added version to secret '%s'", name)
		return nil
	}

	if !isSecretNotFoundError(err) {
		return gopserrors.WrapStoreError(s.Name(), "set", name, err)
	}

	createInput := &secretsmanager.CreateSecretInput{
		Name:         aws.String(name),
		SecretString: aws.String(value),
	}
	if _, err := s.client.CreateSecret(ctx, createInput); err != nil {
		return gopserrors.WrapStoreError(s.Name(), "set", name, err)
	}

	s.logger.Debug("Created secret '%s'", name)
	return nil
}

// Get returns the current value of name.
func (s *SecretsManagerStore) Get(ctx context.Context, name string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	}

	result, err := s.client.GetSecretValue(ctx, input)
	if err != nil {
		return "", gopserrors.WrapStoreError(s.Name(), "get", name, err)
	}

	if result.SecretString != nil {
		return *result.SecretString, nil
	}
	if result.SecretBinary != nil {
		return string(result.SecretBinary), nil
	}

	return "", gopserrors.StoreError{
		Store:   s.Name(),
		Op:      "get",
		Secret:  name,
		Message: "secret has no value",
	}
}

// Validate checks access by listing at most one secret.
func (s *SecretsManagerStore) Validate(ctx context.Context) error {
	input := &secretsmanager.ListSecretsInput{
		MaxResults: aws.Int32(1),
	}

	if _, err := s.client.ListSecrets(ctx, input); err != nil {
		return gopserrors.WrapStoreError(s.Name(), "validate", "", err)
	}

	return nil
}

// isSecretNotFoundError checks for the typed not-found error.
func isSecretNotFoundError(err error) bool {
	var resourceNotFound *types.ResourceNotFoundException
	return errors.As(err, &resourceNotFound)
}
