package identity

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// CreateUserInput names a new IAM user to create under requester's root.
type CreateUserInput struct {
	Username string
	IAMPath  string
}

// CreateUser creates an IAM user owned by requester, copying
// MasterKeyID/AllowBucketCreation/ForceMD5ETag/NSFSAccountConfig from the
// requesting root account.
func (s *Store) CreateUser(ctx context.Context, requester Requester, root *Account, in CreateUserInput) (*UserView, error) {
	if err := requireRoot(requester, root.Name); err != nil {
		return nil, err
	}
	path := in.IAMPath
	if path == "" {
		path = "/"
	}
	a := &Account{
		ID:                  generateAccountID(),
		Name:                in.Username,
		Email:               in.Username,
		CreationDate:        internal.Time(),
		Owner:               root.ID,
		Creator:             requester.ID,
		IAMPath:             path,
		MasterKeyID:         root.MasterKeyID,
		AllowBucketCreation: root.AllowBucketCreation,
		ForceMD5ETag:        root.ForceMD5ETag,
		AccessKeys:          []AccessKey{},
		NSFSAccountConfig:   root.NSFSAccountConfig,
	}
	if err := s.fs.create(a); err != nil {
		return nil, err
	}
	logSuccess("CreateUser", a.Name)
	view := a.view(root.ID)
	return &view, nil
}

// GetUser returns the IAM user named username, owned by requester.
func (s *Store) GetUser(ctx context.Context, requester Requester, requesterName, username string) (*UserView, error) {
	if err := requireRoot(requester, requesterName); err != nil {
		return nil, err
	}
	a, err := s.readOwned(requester, requesterName, username)
	if err != nil {
		return nil, err
	}
	view := a.view(requester.RootID())
	return &view, nil
}

// UpdateUserInput describes an in-place or rename update to an IAM user.
type UpdateUserInput struct {
	Username    string
	NewUsername string
	NewIAMPath  string
}

// UpdateUser applies a field patch and/or a username rename
// (write-under-new-name then delete-old). Access-key symlinks are not
// rewritten on rename, so the user's keys dangle until the next Reconcile
// run repairs the index.
func (s *Store) UpdateUser(ctx context.Context, requester Requester, requesterName string, in UpdateUserInput) (*UserView, error) {
	if err := requireRoot(requester, requesterName); err != nil {
		return nil, err
	}
	a, err := s.readOwned(requester, requesterName, in.Username)
	if err != nil {
		return nil, err
	}
	if in.NewIAMPath != "" {
		a.IAMPath = in.NewIAMPath
	}
	renamed := in.NewUsername != "" && in.NewUsername != a.Name
	if renamed {
		if err := s.renameUser(a, in.NewUsername); err != nil {
			return nil, err
		}
	} else if err := s.fs.update(a); err != nil {
		return nil, err
	}
	invalidateAll(ctx, s.cache, a)
	logSuccess("UpdateUser", a.Name)
	view := a.view(requester.RootID())
	return &view, nil
}

// renameUser verifies the new name is free, creates the account file under
// the new name, then deletes the old one. The pair is not atomic; a crash
// between the two writes leaves the old file present, and Reconcile does
// not remove account files.
func (s *Store) renameUser(a *Account, newName string) error {
	old := a.Name
	if _, err := s.fs.read(newName); err == nil {
		return internal.NewError(internal.ErrCodeEntityExists,
			"account already exists: "+newName, nil)
	}
	a.Name = newName
	a.Email = newName
	if err := s.fs.create(a); err != nil {
		a.Name, a.Email = old, old
		return err
	}
	if err := s.fs.delete(old, deleteStrict); err != nil {
		internal.Log.E("rename %s -> %s: old file not removed: %v", old, newName, err)
		return err
	}
	return nil
}

// DeleteUser deletes the IAM user named username. It requires zero remaining
// access keys, returning DeleteConflict otherwise.
func (s *Store) DeleteUser(ctx context.Context, requester Requester, requesterName, username string) error {
	if err := requireRoot(requester, requesterName); err != nil {
		return err
	}
	a, err := s.readOwned(requester, requesterName, username)
	if err != nil {
		return err
	}
	if len(a.AccessKeys) != 0 {
		return internal.NewError(internal.ErrCodeDeleteConflict,
			"cannot delete user "+username+": must delete access keys first", nil)
	}
	if err := s.fs.delete(username, deleteStrict); err != nil {
		return err
	}
	logSuccess("DeleteUser", username)
	return nil
}

// ListUsersInput optionally filters by iam-path prefix.
type ListUsersInput struct {
	IAMPathPrefix string
}

// ListUsersOutput is the result of ListUsers.
type ListUsersOutput struct {
	Members     []UserView
	IsTruncated bool
}

// ListUsers enumerates IAM users owned by requester, optionally filtered by
// IAMPathPrefix, sorted by username ascending. Account files are read with
// bounded concurrency.
func (s *Store) ListUsers(ctx context.Context, requester Requester, requesterName string, in ListUsersInput) (*ListUsersOutput, error) {
	if err := requireRoot(requester, requesterName); err != nil {
		return nil, err
	}
	names, err := s.fs.listNames()
	if err != nil {
		return nil, err
	}

	n := s.listN
	if len(names) < n {
		n = len(names)
	}
	type result struct {
		a   *Account
		err error
	}
	results := make([]result, len(names))
	if n > 0 {
		ch := make(chan int, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for idx := range ch {
					a, err := s.fs.read(names[idx])
					results[idx] = result{a, err}
				}
			}()
		}
		for i := range names {
			ch <- i
		}
		close(ch)
		wg.Wait()
	}

	filterPath := in.IAMPathPrefix != "" && in.IAMPathPrefix != "/"
	members := make([]UserView, 0, len(names))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		if r.a.IsRoot() || r.a.Owner != requester.ID {
			continue
		}
		if filterPath {
			if r.a.IAMPath == "" || !strings.HasPrefix(r.a.IAMPath, in.IAMPathPrefix) {
				continue
			}
		}
		members = append(members, r.a.view(requester.RootID()))
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Username < members[j].Username })
	return &ListUsersOutput{Members: members, IsTruncated: false}, nil
}
