package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAccount() *Account {
	return &Account{
		ID:           "abc123abc123abc123abc12",
		Name:         "Bob",
		Email:        "Bob",
		CreationDate: time.Now().UTC(),
		IAMPath:      "/",
		AccessKeys:   []AccessKey{},
	}
}

func TestValidateAccountOK(t *testing.T) {
	assert.NoError(t, validateAccount(validAccount()))
}

// An nsfs_account_config that names neither the uid/gid form nor the
// distinguished_name form fails schema validation.
func TestValidateAccountMalformedNSFSConfig(t *testing.T) {
	a := validAccount()
	a.NSFSAccountConfig = &NSFSAccountConfig{NewBucketsPath: "/buckets"}
	err := validateAccount(a)
	require.Error(t, err)
	assert.Equal(t, "ValidationError", codeOf(err))
}

// Mixing both forms is equally malformed: uid/gid and distinguished_name
// are mutually exclusive.
func TestValidateAccountMixedNSFSConfig(t *testing.T) {
	a := validAccount()
	uid, gid := 1000, 1000
	a.NSFSAccountConfig = &NSFSAccountConfig{
		UID: &uid, GID: &gid,
		DistinguishedName: "cn=bob",
		NewBucketsPath:    "/buckets",
	}
	err := validateAccount(a)
	require.Error(t, err)
	assert.Equal(t, "ValidationError", codeOf(err))
}

func TestValidateAccountValidNSFSConfig(t *testing.T) {
	a := validAccount()
	uid, gid := 1000, 1000
	a.NSFSAccountConfig = &NSFSAccountConfig{UID: &uid, GID: &gid, NewBucketsPath: "/buckets"}
	assert.NoError(t, validateAccount(a))

	b := validAccount()
	b.NSFSAccountConfig = &NSFSAccountConfig{DistinguishedName: "cn=bob", NewBucketsPath: "/buckets"}
	assert.NoError(t, validateAccount(b))
}

// Create fails validation before touching the filesystem.
func TestCreateRejectsInvalidAccountWithoutWriting(t *testing.T) {
	s, _ := newTestStore(t)
	a := validAccount()
	a.NSFSAccountConfig = &NSFSAccountConfig{NewBucketsPath: "/buckets"}
	err := s.fs.create(a)
	require.Error(t, err)
	assert.Equal(t, "ValidationError", codeOf(err))
	_, err = s.fs.read(a.Name)
	assert.Error(t, err, "a failed schema validation must not leave a file behind")
}
