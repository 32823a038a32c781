package identity

import (
	"context"
	"sort"
	"time"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// resolveTarget reads the account the requester is (or is acting on): if
// username is empty, the requester acts on itself. A non-root caller naming
// any username other than its own is rejected before the read, so the denial
// does not reveal whether that user exists.
func (s *Store) resolveTarget(requester Requester, requesterName, username string) (*Account, error) {
	name := username
	if name == "" {
		name = requesterName
	}
	if !requester.IsRoot() && name != requesterName {
		return nil, accessDenied(requester, requesterName, requester.RootID(), "/", name)
	}
	a, err := s.fs.read(name)
	if err != nil {
		return nil, err
	}
	if err := requireSelfOrRootByUsername(requester, requesterName, a); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAccessKeyInput optionally names the target user; empty means self.
type CreateAccessKeyInput struct {
	Username string
}

// CreateAccessKey mints a new access key for the target user (root acting on
// an owned user, or a user acting on itself), enforcing the two-key quota
// and recording the master key used to encrypt the secret.
func (s *Store) CreateAccessKey(ctx context.Context, requester Requester, requesterName string, in CreateAccessKeyInput) (*AccessKeyView, error) {
	a, err := s.resolveTarget(requester, requesterName, in.Username)
	if err != nil {
		return nil, err
	}
	if len(a.AccessKeys) >= 2 {
		return nil, internal.NewError(internal.ErrCodeLimitExceeded,
			"user "+a.Name+" already has the maximum number of access keys", nil)
	}
	if err := s.ensureMKM(ctx); err != nil {
		return nil, internal.NewError(internal.ErrCodeServiceFailure, "master key init: "+err.Error(), err)
	}
	activeID, err := s.mkm.ActiveKeyID(ctx)
	if err != nil {
		return nil, internal.NewError(internal.ErrCodeServiceFailure, "active master key: "+err.Error(), err)
	}
	accessKey := generateAccessKey()
	secretKey := generateSecretKey()
	cipher, err := s.mkm.Encrypt(ctx, secretKey, activeID)
	if err != nil {
		return nil, internal.NewError(internal.ErrCodeServiceFailure, "encrypt secret: "+err.Error(), err)
	}
	creator := CreatorUser
	if requester.IsRoot() {
		creator = CreatorRoot
	}
	slot := firstEmptySlot(a.AccessKeys)
	newKey := AccessKey{
		AccessKey:          accessKey,
		EncryptedSecretKey: cipher,
		CreationDate:       internal.Time(),
		IsActive:           true,
		CreatorIdentity:    creator,
		MasterKeyID:        activeID,
	}
	if slot == len(a.AccessKeys) {
		a.AccessKeys = append(a.AccessKeys, newKey)
	} else {
		a.AccessKeys[slot] = newKey
	}
	a.MasterKeyID = activeID

	// Account file before symlink: a crash here leaves an access-key
	// record without its index entry, healed only by Reconcile. The reverse
	// ordering could leak an index entry pointing at a key no account owns.
	if err := s.fs.update(a); err != nil {
		return nil, err
	}
	if err := s.sym.create(accessKey, a.Name); err != nil {
		return nil, internal.NewError(internal.ErrCodeServiceFailure,
			"access key created but index entry failed: "+err.Error(), err)
	}
	invalidateAll(ctx, s.cache, a)
	logSuccess("CreateAccessKey", a.Name)
	return &AccessKeyView{
		Username:   a.Name,
		AccessKey:  accessKey,
		SecretKey:  secretKey,
		Status:     StatusActive,
		CreateDate: newKey.CreationDate,
	}, nil
}

// firstEmptySlot returns 0 if keys is empty or slot 0 is free, else the next
// available index (at most 1, given the two-key quota).
func firstEmptySlot(keys []AccessKey) int {
	if len(keys) == 0 {
		return 0
	}
	return len(keys)
}

// UpdateAccessKeyInput is the target of an UpdateAccessKey call.
type UpdateAccessKeyInput struct {
	Username  string
	AccessKey string
	Status    AccessKeyStatus
}

// UpdateAccessKey flips an access key's status. If the status is unchanged,
// it returns without rewriting the file; otherwise it re-encrypts the
// secret under the currently active master key as part of the same write,
// keeping ciphertext aligned with key rotation on every mutation and
// obviating a background re-encryption pass.
func (s *Store) UpdateAccessKey(ctx context.Context, requester Requester, requesterName string, in UpdateAccessKeyInput) error {
	name, err := s.sym.resolve(in.AccessKey)
	if err != nil {
		return internal.NewError(internal.ErrCodeAccessDenied,
			"unknown access key: "+in.AccessKey, err)
	}
	a, err := s.fs.read(name)
	if err != nil {
		return err
	}
	if err := requireSelfOrRootByAccessKey(requester, requesterName, a); err != nil {
		return err
	}
	slot := a.KeySlot(in.AccessKey)
	if slot < 0 {
		return internal.NewError(internal.ErrCodeAccessDenied,
			"unknown access key: "+in.AccessKey, nil)
	}
	wantActive := in.Status == StatusActive
	if a.AccessKeys[slot].IsActive == wantActive {
		return nil
	}
	if err := s.ensureMKM(ctx); err != nil {
		return internal.NewError(internal.ErrCodeServiceFailure, "master key init: "+err.Error(), err)
	}
	k := &a.AccessKeys[slot]
	plain, err := s.mkm.Decrypt(ctx, k.EncryptedSecretKey, k.MasterKeyID)
	if err != nil {
		return internal.NewError(internal.ErrCodeServiceFailure, "decrypt secret: "+err.Error(), err)
	}
	activeID, err := s.mkm.ActiveKeyID(ctx)
	if err != nil {
		return internal.NewError(internal.ErrCodeServiceFailure, "active master key: "+err.Error(), err)
	}
	cipher, err := s.mkm.Encrypt(ctx, plain, activeID)
	if err != nil {
		return internal.NewError(internal.ErrCodeServiceFailure, "encrypt secret: "+err.Error(), err)
	}
	k.EncryptedSecretKey = cipher
	k.IsActive = wantActive
	k.MasterKeyID = activeID
	a.MasterKeyID = activeID
	if err := s.fs.update(a); err != nil {
		return err
	}
	invalidateAll(ctx, s.cache, a)
	logSuccess("UpdateAccessKey", a.Name)
	return nil
}

// DeleteAccessKeyInput names the access key to delete.
type DeleteAccessKeyInput struct {
	Username  string
	AccessKey string
}

// DeleteAccessKey removes the access key's slot from the account, then
// unlinks its index entry: account file before symlink unlink, matching the
// create ordering's canonical-record-first discipline.
func (s *Store) DeleteAccessKey(ctx context.Context, requester Requester, requesterName string, in DeleteAccessKeyInput) error {
	name, err := s.sym.resolve(in.AccessKey)
	if err != nil {
		return internal.NewError(internal.ErrCodeAccessDenied,
			"unknown access key: "+in.AccessKey, err)
	}
	a, err := s.fs.read(name)
	if err != nil {
		return err
	}
	if err := requireSelfOrRootByAccessKey(requester, requesterName, a); err != nil {
		return err
	}
	slot := a.KeySlot(in.AccessKey)
	if slot < 0 {
		return internal.NewError(internal.ErrCodeAccessDenied,
			"unknown access key: "+in.AccessKey, nil)
	}
	a.AccessKeys = append(a.AccessKeys[:slot], a.AccessKeys[slot+1:]...)
	if err := s.fs.update(a); err != nil {
		return err
	}
	if err := s.sym.delete(in.AccessKey, deleteStrict); err != nil {
		return err
	}
	invalidateAll(ctx, s.cache, a)
	logSuccess("DeleteAccessKey", a.Name)
	return nil
}

// AccessKeyLastUsed is the result of GetAccessKeyLastUsed. Region,
// LastUsedDate, and ServiceName are synthetic placeholders; the store has no
// request-path instrumentation to track real usage. Only Username is
// authoritative.
type AccessKeyLastUsed struct {
	Username     string
	Region       string
	ServiceName  string
	LastUsedDate time.Time
}

// GetAccessKeyLastUsed resolves accessKey via the symlink index and returns
// placeholder usage data alongside the authoritative username.
func (s *Store) GetAccessKeyLastUsed(ctx context.Context, requester Requester, requesterName, accessKey string) (*AccessKeyLastUsed, error) {
	name, err := s.sym.resolve(accessKey)
	if err != nil {
		return nil, internal.NewError(internal.ErrCodeAccessDenied,
			"unknown access key: "+accessKey, err)
	}
	a, err := s.fs.read(name)
	if err != nil {
		return nil, err
	}
	if err := requireSameRoot(requester, requesterName, a); err != nil {
		return nil, err
	}
	return &AccessKeyLastUsed{
		Username:     a.Name,
		Region:       "us-east-1",
		ServiceName:  "s3",
		LastUsedDate: a.CreationDate,
	}, nil
}

// ListAccessKeysInput optionally names the target user; empty means self.
type ListAccessKeysInput struct {
	Username string
}

// ListAccessKeysOutput is the result of ListAccessKeys.
type ListAccessKeysOutput struct {
	Username    string
	Members     []AccessKeyView
	IsTruncated bool
}

// ListAccessKeys returns the target's access keys sorted by access-key id
// ascending.
func (s *Store) ListAccessKeys(ctx context.Context, requester Requester, requesterName string, in ListAccessKeysInput) (*ListAccessKeysOutput, error) {
	a, err := s.resolveTarget(requester, requesterName, in.Username)
	if err != nil {
		return nil, err
	}
	members := make([]AccessKeyView, len(a.AccessKeys))
	for i, k := range a.AccessKeys {
		members[i] = AccessKeyView{
			Username:   a.Name,
			AccessKey:  k.AccessKey,
			Status:     k.Status(),
			CreateDate: k.CreationDate,
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].AccessKey < members[j].AccessKey })
	return &ListAccessKeysOutput{Username: a.Name, Members: members, IsTruncated: false}, nil
}
