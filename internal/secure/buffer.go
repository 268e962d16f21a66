// Package secure holds sensitive values (measurement IDs, service-account
// JSON, vault secrets) in memguard enclaves while they are in memory:
// encrypted at rest, mlocked against swapping, wiped on destruction. If
// mlock is unavailable the library degrades to ordinary allocation.
package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned by Open after Destroy has been called.
var ErrDestroyed = errors.New("secure buffer has been destroyed")

// ErrEmptyValue is returned when there is nothing to protect. memguard
// enclaves cannot hold zero bytes.
var ErrEmptyValue = errors.New("cannot create a secure buffer from an empty value")

// SecureBuffer is an encrypted in-memory container for one sensitive value.
type SecureBuffer struct {
	enclave   *memguard.Enclave
	mu        sync.RWMutex
	destroyed bool
}

// NewSecureBuffer copies data into a protected enclave. The caller should
// zero its own copy afterwards.
func NewSecureBuffer(data []byte) (*SecureBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyValue
	}
	return &SecureBuffer{enclave: memguard.NewEnclave(data)}, nil
}

// NewSecureBufferFromString is NewSecureBuffer for string values, the common
// case when a secret arrives from a CLI or an SDK response.
func NewSecureBufferFromString(value string) (*SecureBuffer, error) {
	return NewSecureBuffer([]byte(value))
}

// Open decrypts the value into a locked buffer. The caller must Destroy the
// returned buffer to wipe the plaintext.
//
//	locked, err := buf.Open()
//	if err != nil {
//	    return err
//	}
//	defer locked.Destroy()
//	use(locked.Bytes())
func (s *SecureBuffer) Open() (*memguard.LockedBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed {
		return nil, ErrDestroyed
	}
	return s.enclave.Open()
}

// Destroy marks the buffer unusable. Idempotent; after Destroy, Open returns
// ErrDestroyed. The enclave ciphertext itself is garbage collected; call
// memguard.Purge at process exit for full cleanup.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	s.enclave = nil
	s.destroyed = true
}
