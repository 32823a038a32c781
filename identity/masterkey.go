package identity

import "context"

// MasterKeyManager is the narrow external collaborator that encrypts and
// decrypts access-key secrets; consumed, never owned. The store calls Init
// idempotently before first use and tolerates ActiveKeyID changing between
// calls (key rotation); every ciphertext records the key id that produced it.
type MasterKeyManager interface {
	Init(ctx context.Context) error
	ActiveKeyID(ctx context.Context) (string, error)
	Encrypt(ctx context.Context, plaintext, keyID string) (ciphertext string, err error)
	Decrypt(ctx context.Context, ciphertext, keyID string) (plaintext string, err error)
}
