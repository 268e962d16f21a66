// Package vault abstracts where googleops keeps the secrets it produces,
// chiefly the GA4 measurement IDs minted during product setup. Every backend
// implements Store; the Registry builds one from the vault section of the
// configuration.
//
// The default backend is azure.cli, which shells out to the az binary and
// needs nothing beyond a logged-in Azure session. The SDK-backed stores
// (azure.keyvault, gcp.secretmanager, aws.secretsmanager, aws.parameterstore)
// talk to their services directly and suit CI environments where no CLI
// login exists. keyring uses the operating system credential store and
// memory keeps values in-process for tests and dry runs.
package vault

import "context"

// Store is the contract every secret backend implements.
// Implementations must be safe for concurrent use.
type Store interface {
	// Name returns the backend identifier as written in configuration,
	// for example "azure.cli" or "gcp.secretmanager".
	Name() string

	// Set writes value under name, creating the secret when it does not
	// exist and adding a new version when it does.
	Set(ctx context.Context, name, value string) error

	// Get returns the current value stored under name.
	Get(ctx context.Context, name string) (string, error)

	// Validate checks configuration and connectivity without reading or
	// writing any secret payloads.
	Validate(ctx context.Context) error
}
