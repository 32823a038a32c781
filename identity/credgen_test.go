package identity

import "testing"

func TestGenerateAccessKeyShapeAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		k := generateAccessKey()
		if len(k) != 20 {
			t.Fatalf("generateAccessKey() = %q, len %d, want 20", k, len(k))
		}
		if seen[k] {
			t.Fatalf("generateAccessKey() produced a duplicate: %q", k)
		}
		seen[k] = true
	}
}

func TestGenerateSecretKeyShape(t *testing.T) {
	s := generateSecretKey()
	if len(s) != 40 {
		t.Fatalf("generateSecretKey() len = %d, want 40", len(s))
	}
}

func TestGenerateAccountIDShape(t *testing.T) {
	id := generateAccountID()
	if len(id) != 24 {
		t.Fatalf("generateAccountID() len = %d, want 24", len(id))
	}
}
