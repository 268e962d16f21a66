package vault

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
)

// SSMClientAPI defines the interface for AWS SSM Parameter Store operations.
// This allows for mocking in tests.
type SSMClientAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
}

// ParameterStore keeps secrets as SecureString parameters in AWS Systems
// Manager Parameter Store. Cheaper than Secrets Manager for plain values
// like measurement IDs.
type ParameterStore struct {
	config AWSConfig
	client SSMClientAPI
	logger *logging.Logger
}

// ParameterStoreOption is a functional option for configuring the store.
type ParameterStoreOption func(*ParameterStore)

// WithSSMClient sets a custom SSM client (for testing).
func WithSSMClient(client SSMClientAPI) ParameterStoreOption {
	return func(s *ParameterStore) {
		s.client = client
	}
}

// NewParameterStore creates a new SSM Parameter Store store.
func NewParameterStore(config AWSConfig, opts ...ParameterStoreOption) (*ParameterStore, error) {
	store := &ParameterStore{
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

		var clientOpts []func(*ssm.Options)
		if config.Endpoint != "" {
			clientOpts = append(clientOpts, func(o *ssm.Options) {
				o.BaseEndpoint = aws.String(config.Endpoint)
			})
		}
		store.client = ssm.NewFromConfig(cfg, clientOpts...)
	}

	return store, nil
}

// Name returns the backend identifier.
func (s *ParameterStore) Name() string {
	return "aws.parameterstore"
}

// Set writes value as a SecureString parameter, overwriting any existing
// version.
func (s *ParameterStore) Set(ctx context.Context, name, value string) error {
	input := &ssm.PutParameterInput{
		Name:      aws.String(s.parameterName(name)),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	}

	if _, err := s.client.PutParameter(ctx, input); err != nil {
		return gopserrors.WrapStoreError(s.Name(), "set", name, err)
	}

	s.logger.Debug("Stored parameter '%s'", s.parameterName(name))
	return nil
}

// Get returns the decrypted value of name.
func (s *ParameterStore) Get(ctx context.Context, name string) (string, error) {
	input := &ssm.GetParameterInput{
		Name:           aws.String(s.parameterName(name)),
		WithDecryption: aws.Bool(true),
	}

	result, err := s.client.GetParameter(ctx, input)
	if err != nil {
		return "", gopserrors.WrapStoreError(s.Name(), "get", name, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", gopserrors.StoreError{
			Store:   s.Name(),
			Op:      "get",
			Secret:  name,
			Message: "parameter has no value",
		}
	}

	return *result.Parameter.Value, nil
}

// Validate checks access by describing at most one parameter.
func (s *ParameterStore) Validate(ctx context.Context) error {
	input := &ssm.DescribeParametersInput{
		MaxResults: aws.Int32(1),
	}

	if _, err := s.client.DescribeParameters(ctx, input); err != nil {
		return gopserrors.WrapStoreError(s.Name(), "validate", "", err)
	}

	return nil
}

// parameterName applies the configured prefix.
func (s *ParameterStore) parameterName(name string) string {
	if s.config.ParameterPrefix != "" {
		return s.config.ParameterPrefix + name
	}
	return name
}
