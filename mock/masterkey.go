// Package mock provides in-memory test doubles for the identity store's
// external collaborators: the master-key manager and the access-key cache.
package mock

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"time"
)

// ErrUnknownKey is returned by MasterKey.Decrypt for a key id it has never
// issued.
var ErrUnknownKey = errors.New("mock: unknown master key id")

// MasterKey is a rotating master-key manager test double. ActiveKeyID
// rotates to a new id once rotateEvery has elapsed since the last rotation,
// and Decrypt must keep working against every key id it has ever issued
// (ciphertexts outlive a single active key).
//
// The encryption itself is a reversible XOR-then-base64 transform, not real
// cryptography; the real implementation lives behind the interface entirely
// outside the identity store, so a mock only needs to be reversible and to
// exercise key-id bookkeeping faithfully.
type MasterKey struct {
	mu          sync.Mutex
	keys        map[string][]byte
	active      string
	rotateAt    time.Time
	rotateEvery time.Duration
	seq         int
}

// NewMasterKey returns a MasterKey manager whose active id rotates every
// rotateEvery (zero disables rotation: the first key id is active forever).
func NewMasterKey(rotateEvery time.Duration) *MasterKey {
	return &MasterKey{keys: make(map[string][]byte), rotateEvery: rotateEvery}
}

// Init creates the first key if none exists yet. Idempotent, matching the
// store's call-Init-before-first-use contract.
func (m *MasterKey) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == "" {
		m.rotateLocked()
	}
	return nil
}

// ActiveKeyID returns the currently active key id, rotating first if
// rotateEvery has elapsed.
func (m *MasterKey) ActiveKeyID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == "" {
		m.rotateLocked()
	} else if m.rotateEvery > 0 && time.Now().After(m.rotateAt) {
		m.rotateLocked()
	}
	return m.active, nil
}

// Rotate forces a new active key id, for tests that need to exercise
// re-encryption-on-rotation deterministically rather than waiting on a
// timer.
func (m *MasterKey) Rotate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotateLocked()
	return m.active
}

func (m *MasterKey) rotateLocked() {
	m.seq++
	id := "mk-" + itoa(m.seq)
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(m.seq*31 + i)
	}
	m.keys[id] = key
	m.active = id
	if m.rotateEvery > 0 {
		m.rotateAt = time.Now().Add(m.rotateEvery)
	}
}

// Encrypt XORs plaintext against keyID's key stream and base64-encodes it.
func (m *MasterKey) Encrypt(ctx context.Context, plaintext, keyID string) (string, error) {
	m.mu.Lock()
	key, ok := m.keys[keyID]
	m.mu.Unlock()
	if !ok {
		return "", ErrUnknownKey
	}
	return base64.StdEncoding.EncodeToString(xor([]byte(plaintext), key)), nil
}

// Decrypt reverses Encrypt. It works against any key id this manager has
// ever issued, even if no longer active.
func (m *MasterKey) Decrypt(ctx context.Context, ciphertext, keyID string) (string, error) {
	m.mu.Lock()
	key, ok := m.keys[keyID]
	m.mu.Unlock()
	if !ok {
		return "", ErrUnknownKey
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}
	return string(xor(raw, key)), nil
}

func xor(data, key []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
