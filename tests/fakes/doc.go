// Package fakes provides test doubles for the cloud SDK clients behind the
// vault backends and the products store.
//
// Each fake implements the client interface its backend consumes, keeping
// unit tests free of real service dependencies. Fakes are manually
// implemented (not generated) to provide precise control over test behavior.
//
// Usage:
//
//	fake := fakes.NewFakeKeyVaultClient()
//	fake.AddSecretString("terprint-measurement-id", "G-ABC123")
//	store, err := vault.NewKeyVaultStore(cfg, vault.WithKeyVaultClient(fake))
//	// Test store methods...
package fakes
