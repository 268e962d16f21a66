package fakes

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// FakeKeyVaultClient is an in-memory stand-in for the azsecrets client used
// by the azure.keyvault vault backend.
type FakeKeyVaultClient struct {
	// Secrets maps secret names to their data.
	Secrets map[string]*AzureSecretData
	// Errors maps secret names to errors to return.
	Errors map[string]error
	// SetCalls counts SetSecret invocations.
	SetCalls int
}

// AzureSecretData holds the data for a fake Key Vault secret.
type AzureSecretData struct {
	Value      *string
	ID         *string
	Attributes *azsecrets.SecretAttributes
}

// NewFakeKeyVaultClient creates an empty fake Key Vault client.
func NewFakeKeyVaultClient() *FakeKeyVaultClient {
	return &FakeKeyVaultClient{
		Secrets: make(map[string]*AzureSecretData),
		Errors:  make(map[string]error),
	}
}

// AddSecretString seeds a secret value.
func (f *FakeKeyVaultClient) AddSecretString(name, value string) {
	now := time.Now()
	f.Secrets[name] = &AzureSecretData{
		Value: to.Ptr(value),
		ID:    to.Ptr(fmt.Sprintf("https://test-vault.vault.azure.net/secrets/%s", name)),
		Attributes: &azsecrets.SecretAttributes{
			Enabled: to.Ptr(true),
			Created: &now,
			Updated: &now,
		},
	}
}

// AddError configures the fake to return an error for a specific secret.
func (f *FakeKeyVaultClient) AddError(name string, err error) {
	f.Errors[name] = err
}

// GetSecret returns the seeded secret or a 404 response error.
func (f *FakeKeyVaultClient) GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	if err, exists := f.Errors[name]; exists {
		return azsecrets.GetSecretResponse{}, err
	}

	data, exists := f.Secrets[name]
	if !exists {
		return azsecrets.GetSecretResponse{}, AzureNotFoundError(name)
	}

	return azsecrets.GetSecretResponse{
		Secret: azsecrets.Secret{
			ID:         (*azsecrets.ID)(data.ID),
			Value:      data.Value,
			Attributes: data.Attributes,
		},
	}, nil
}

// SetSecret stores the value, like the service creating a new version.
func (f *FakeKeyVaultClient) SetSecret(ctx context.Context, name string, parameters azsecrets.SetSecretParameters, options *azsecrets.SetSecretOptions) (azsecrets.SetSecretResponse, error) {
	f.SetCalls++

	if err, exists := f.Errors[name]; exists {
		return azsecrets.SetSecretResponse{}, err
	}

	now := time.Now()
	f.Secrets[name] = &AzureSecretData{
		Value: parameters.Value,
		ID:    to.Ptr(fmt.Sprintf("https://test-vault.vault.azure.net/secrets/%s/%d", name, f.SetCalls)),
		Attributes: &azsecrets.SecretAttributes{
			Enabled: to.Ptr(true),
			Created: &now,
			Updated: &now,
		},
	}

	return azsecrets.SetSecretResponse{
		Secret: azsecrets.Secret{
			ID:    (*azsecrets.ID)(f.Secrets[name].ID),
			Value: parameters.Value,
		},
	}, nil
}

// AzureNotFoundError builds the 404 a missing secret produces.
func AzureNotFoundError(secretName string) error {
	return &azcore.ResponseError{
		StatusCode: 404,
		ErrorCode:  "SecretNotFound",
	}
}

// AzureForbiddenError builds the 403 a denied access policy produces.
func AzureForbiddenError() error {
	return &azcore.ResponseError{
		StatusCode: 403,
		ErrorCode:  "Forbidden",
	}
}

// AzureUnauthorizedError builds the 401 a bad credential produces.
func AzureUnauthorizedError() error {
	return &azcore.ResponseError{
		StatusCode: 401,
		ErrorCode:  "Unauthorized",
	}
}
