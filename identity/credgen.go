package identity

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// generateAccessKey returns a 20-character access-key identifier, in the
// style of AWS's own AKIA-prefixed ids, built from crypto/rand bytes.
func generateAccessKey() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic("identity: crypto/rand failed: " + err.Error())
	}
	return "AKIA" + strings.ToUpper(hex.EncodeToString(b))[:16]
}

// generateSecretKey returns a 40-character secret key,
// base64-of-random-bytes truncated to 40.
func generateSecretKey() string {
	b := make([]byte, 30)
	if _, err := rand.Read(b); err != nil {
		panic("identity: crypto/rand failed: " + err.Error())
	}
	return base64.StdEncoding.EncodeToString(b)[:40]
}

// generateAccountID returns a 24-hex-character opaque account id.
func generateAccountID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic("identity: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
