// Package identity implements the filesystem-native Account & Access-Key
// identity store: CRUD for IAM users and their access keys, persisted as
// JSON files and a symlink index under a single configuration root.
package identity

import "time"

// AccessKeyStatus is the wire spelling of an access key's activation state.
// Internally an AccessKey only ever carries the boolean IsActive; Status is
// derived from it on the way out and never persisted.
type AccessKeyStatus string

const (
	StatusActive   AccessKeyStatus = "Active"
	StatusInactive AccessKeyStatus = "Inactive"
)

// CreatorIdentity records who minted an access key.
type CreatorIdentity string

const (
	CreatorRoot CreatorIdentity = "RootAccount"
	CreatorUser CreatorIdentity = "User"
)

// AccessKey is an access key embedded in an Account. At most two may be
// present on any one Account.
type AccessKey struct {
	AccessKey          string          `json:"access_key"`
	EncryptedSecretKey string          `json:"encrypted_secret_key"`
	CreationDate       time.Time       `json:"creation_date"`
	IsActive           bool            `json:"is_active"`
	CreatorIdentity    CreatorIdentity `json:"creator_identity"`
	MasterKeyID        string          `json:"master_key_id"`
}

// Status returns the wire spelling of the key's activation state.
func (k *AccessKey) Status() AccessKeyStatus {
	if k.IsActive {
		return StatusActive
	}
	return StatusInactive
}

// NSFSAccountConfig configures the filesystem backend an account's buckets
// are served from. Exactly one of the Uid/Gid pair or DistinguishedName may
// be set -- the two forms are mutually exclusive (schema-enforced).
type NSFSAccountConfig struct {
	UID               *int   `json:"uid,omitempty"`
	GID               *int   `json:"gid,omitempty"`
	DistinguishedName string `json:"distinguished_name,omitempty"`
	NewBucketsPath    string `json:"new_buckets_path"`
	FSBackend         string `json:"fs_backend,omitempty"`
}

// Account is the single persisted entity. It encodes both root accounts
// (Owner empty or equal to ID) and IAM users (Owner naming the owning root).
type Account struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Email               string             `json:"email"`
	CreationDate        time.Time          `json:"creation_date"`
	Owner               string             `json:"owner,omitempty"`
	Creator             string             `json:"creator,omitempty"`
	IAMPath             string             `json:"iam_path"`
	MasterKeyID         string             `json:"master_key_id"`
	AllowBucketCreation bool               `json:"allow_bucket_creation"`
	ForceMD5ETag        bool               `json:"force_md5_etag"`
	AccessKeys          []AccessKey        `json:"access_keys"`
	NSFSAccountConfig   *NSFSAccountConfig `json:"nsfs_account_config,omitempty"`
}

// IsRoot reports whether a is a root account: Owner is absent or refers to
// itself. The owner==id convention is the on-disk encoding; callers that only
// care about the classification should use this method rather than comparing
// Owner directly, so that the tagged-variant normalization described in the
// design notes stays in one place.
func (a *Account) IsRoot() bool {
	return a.Owner == "" || a.Owner == a.ID
}

// RootID returns the id of the root account that owns a: a.ID itself for a
// root account, a.Owner for an IAM user.
func (a *Account) RootID() string {
	if a.IsRoot() {
		return a.ID
	}
	return a.Owner
}

// KeySlot returns the index of the access key with the given id, or -1.
func (a *Account) KeySlot(accessKey string) int {
	for i := range a.AccessKeys {
		if a.AccessKeys[i].AccessKey == accessKey {
			return i
		}
	}
	return -1
}

// UserView is the value returned to callers by CreateUser/GetUser/UpdateUser:
// the AWS-facing projection of Account, distinct from the persisted,
// schema-validated record.
type UserView struct {
	UserID           string     `json:"user_id"`
	Username         string     `json:"username"`
	IAMPath          string     `json:"iam_path"`
	ARN              string     `json:"arn"`
	CreateDate       time.Time  `json:"create_date"`
	PasswordLastUsed *time.Time `json:"password_last_used,omitempty"`
}

// AccessKeyView is the value returned for CreateAccessKey/ListAccessKeys.
type AccessKeyView struct {
	Username   string          `json:"username"`
	AccessKey  string          `json:"access_key"`
	SecretKey  string          `json:"secret_key,omitempty"`
	Status     AccessKeyStatus `json:"status"`
	CreateDate time.Time       `json:"create_date"`
}

func (a *Account) view(rootID string) UserView {
	return UserView{
		UserID:     a.ID,
		Username:   a.Name,
		IAMPath:    a.IAMPath,
		ARN:        BuildARN(rootID, a.IAMPath, a.Name),
		CreateDate: a.CreationDate,
	}
}
