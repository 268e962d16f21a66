package fakes

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// FakeSecretsManagerClient is an in-memory stand-in for the AWS Secrets
// Manager client used by the aws.secretsmanager vault backend.
type FakeSecretsManagerClient struct {
	// Secrets maps secret names to their data.
	Secrets map[string]*SecretData
	// Errors maps secret names to errors to return.
	Errors map[string]error
	// ListErr is returned by ListSecrets when set.
	ListErr error
	// PutCalls counts PutSecretValue invocations.
	PutCalls int
	// CreateCalls counts CreateSecret invocations.
	CreateCalls int
}

// SecretData holds the data for a fake secret.
type SecretData struct {
	SecretString *string
	SecretBinary []byte
	VersionId    *string
	CreatedDate  *time.Time
}

// NewFakeSecretsManagerClient creates an empty fake Secrets Manager client.
func NewFakeSecretsManagerClient() *FakeSecretsManagerClient {
	return &FakeSecretsManagerClient{
		Secrets: make(map[string]*SecretData),
		Errors:  make(map[string]error),
	}
}

// AddSecretString seeds a string secret.
func (f *FakeSecretsManagerClient) AddSecretString(name, value string) {
	now := time.Now()
	f.Secrets[name] = &SecretData{
		SecretString: aws.String(value),
		VersionId:    aws.String("v1-abc123"),
		CreatedDate:  &now,
	}
}

// AddError configures the fake to return an error for a specific secret.
func (f *FakeSecretsManagerClient) AddError(name string, err error) {
	f.Errors[name] = err
}

// GetSecretValue returns the seeded value or ResourceNotFoundException.
func (f *FakeSecretsManagerClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	secretName := aws.ToString(params.SecretId)

	if err, exists := f.Errors[secretName]; exists {
		return nil, err
	}

	data, exists := f.Secrets[secretName]
	if !exists {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("Secrets Manager can't find the specified secret: %s", secretName)),
		}
	}

	return &secretsmanager.GetSecretValueOutput{
		ARN:          aws.String(fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", secretName)),
		Name:         params.SecretId,
		SecretString: data.SecretString,
		SecretBinary: data.SecretBinary,
		VersionId:    data.VersionId,
		CreatedDate:  data.CreatedDate,
	}, nil
}

// PutSecretValue adds a version to an existing secret or returns
// ResourceNotFoundException, matching the real service.
func (f *FakeSecretsManagerClient) PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error) {
	f.PutCalls++
	secretName := aws.ToString(params.SecretId)

	if err, exists := f.Errors[secretName]; exists {
		return nil, err
	}

	data, exists := f.Secrets[secretName]
	if !exists {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("Secrets Manager can't find the specified secret: %s", secretName)),
		}
	}

	data.SecretString = params.SecretString
	data.VersionId = aws.String(fmt.Sprintf("v%d-xyz789", f.PutCalls+1))

	return &secretsmanager.PutSecretValueOutput{
		ARN:       aws.String(fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", secretName)),
		Name:      params.SecretId,
		VersionId: data.VersionId,
	}, nil
}

// CreateSecret creates a new secret with the given initial value.
func (f *FakeSecretsManagerClient) CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	f.CreateCalls++
	secretName := aws.ToString(params.Name)

	if err, exists := f.Errors[secretName]; exists {
		return nil, err
	}

	if _, exists := f.Secrets[secretName]; exists {
		return nil, &types.ResourceExistsException{
			Message: aws.String(fmt.Sprintf("The operation failed because the secret %s already exists.", secretName)),
		}
	}

	now := time.Now()
	f.Secrets[secretName] = &SecretData{
		SecretString: params.SecretString,
		VersionId:    aws.String("v1-abc123"),
		CreatedDate:  &now,
	}

	return &secretsmanager.CreateSecretOutput{
		ARN:  aws.String(fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", secretName)),
		Name: params.Name,
	}, nil
}

// ListSecrets returns the seeded secrets, or ListErr when configured.
func (f *FakeSecretsManagerClient) ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	var entries []types.SecretListEntry
	for name := range f.Secrets {
		entries = append(entries, types.SecretListEntry{Name: aws.String(name)})
	}
	return &secretsmanager.ListSecretsOutput{SecretList: entries}, nil
}

// FakeSSMClient is an in-memory stand-in for the AWS SSM client used by
// the aws.parameterstore vault backend.
type FakeSSMClient struct {
	// Parameters maps parameter names to their data.
	Parameters map[string]*ParameterData
	// Errors maps parameter names to errors to return.
	Errors map[string]error
	// DescribeErr is returned by DescribeParameters when set.
	DescribeErr error
}

// ParameterData holds the data for a fake SSM parameter.
type ParameterData struct {
	Name    *string
	Type    ssmtypes.ParameterType
	Value   *string
	Version int64
}

// NewFakeSSMClient creates an empty fake SSM client.
func NewFakeSSMClient() *FakeSSMClient {
	return &FakeSSMClient{
		Parameters: make(map[string]*ParameterData),
		Errors:     make(map[string]error),
	}
}

// AddSecureStringParameter seeds a SecureString parameter.
func (f *FakeSSMClient) AddSecureStringParameter(name, value string) {
	f.Parameters[name] = &ParameterData{
		Name:    aws.String(name),
		Type:    ssmtypes.ParameterTypeSecureString,
		Value:   aws.String(value),
		Version: 1,
	}
}

// AddError configures the fake to return an error for a specific parameter.
func (f *FakeSSMClient) AddError(name string, err error) {
	f.Errors[name] = err
}

// GetParameter returns the seeded parameter or ParameterNotFound.
func (f *FakeSSMClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	paramName := aws.ToString(params.Name)

	if err, exists := f.Errors[paramName]; exists {
		return nil, err
	}

	data, exists := f.Parameters[paramName]
	if !exists {
		return nil, &ssmtypes.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("Parameter %s not found", paramName)),
		}
	}

	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{
			Name:    data.Name,
			Type:    data.Type,
			Value:   data.Value,
			Version: data.Version,
		},
	}, nil
}

// PutParameter stores the parameter, bumping its version on overwrite.
func (f *FakeSSMClient) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	paramName := aws.ToString(params.Name)

	if err, exists := f.Errors[paramName]; exists {
		return nil, err
	}

	version := int64(1)
	if existing, exists := f.Parameters[paramName]; exists {
		if params.Overwrite == nil || !*params.Overwrite {
			return nil, &ssmtypes.ParameterAlreadyExists{
				Message: aws.String(fmt.Sprintf("Parameter %s already exists", paramName)),
			}
		}
		version = existing.Version + 1
	}

	f.Parameters[paramName] = &ParameterData{
		Name:    params.Name,
		Type:    params.Type,
		Value:   params.Value,
		Version: version,
	}

	return &ssm.PutParameterOutput{Version: version}, nil
}

// DescribeParameters returns the seeded parameters, or DescribeErr when
// configured.
func (f *FakeSSMClient) DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error) {
	if f.DescribeErr != nil {
		return nil, f.DescribeErr
	}

	var metadata []ssmtypes.ParameterMetadata
	for _, data := range f.Parameters {
		metadata = append(metadata, ssmtypes.ParameterMetadata{
			Name:    data.Name,
			Type:    data.Type,
			Version: data.Version,
		})
	}
	return &ssm.DescribeParametersOutput{Parameters: metadata}, nil
}
