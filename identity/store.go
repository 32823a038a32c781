package identity

import (
	"context"
	"sync"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// Options configures a Store. There are no CLI flags or environment
// variables; everything is a plain constructor parameter.
type Options struct {
	// Root is the configuration root directory under which accounts/ and
	// access_keys/ live.
	Root string
	// MaxListConcurrency bounds in-flight reads during ListUsers. Zero
	// selects the default of 10.
	MaxListConcurrency int
	// MasterKey is the master-key manager used to encrypt/decrypt access
	// key secrets.
	MasterKey MasterKeyManager
	// Cache receives invalidations after every mutating operation. If nil,
	// invalidations are silently discarded; callers should always wire a
	// real cache outside of tests.
	Cache CacheInvalidator
}

// Store is the Account & Access-Key identity store. It carries no in-process
// locks: operations may execute concurrently across requests, and two
// concurrent writers racing on the same account file will have the loser's
// write silently dropped by the final rename.
type Store struct {
	fs    *fsEngine
	sym   *symlinkEngine
	mkm   MasterKeyManager
	cache CacheInvalidator
	listN int

	initOnce sync.Once
	initErr  error
}

// New constructs a Store rooted at opts.Root. It creates the accounts/ and
// access_keys/ directories (mode 0700) if they do not already exist.
func New(opts Options) (*Store, error) {
	fs, err := newFSEngine(opts.Root)
	if err != nil {
		return nil, err
	}
	cache := opts.Cache
	if cache == nil {
		cache = noopCache{}
	}
	n := opts.MaxListConcurrency
	if n <= 0 {
		n = 10
	}
	return &Store{
		fs:    fs,
		sym:   newSymlinkEngine(opts.Root),
		mkm:   opts.MasterKey,
		cache: cache,
		listN: n,
	}, nil
}

// ensureMKM lazily initializes the master-key manager on first use.
func (s *Store) ensureMKM(ctx context.Context) error {
	s.initOnce.Do(func() { s.initErr = s.mkm.Init(ctx) })
	return s.initErr
}

// readOwned reads the account named name and authorizes it as an IAM user
// owned by requester, for GetUser/UpdateUser/DeleteUser.
func (s *Store) readOwned(requester Requester, requesterName, name string) (*Account, error) {
	a, err := s.fs.read(name)
	if err != nil {
		return nil, err
	}
	if err := requireOwnedUser(requester, requesterName, a); err != nil {
		return nil, err
	}
	return a, nil
}

// logSuccess logs a mutating operation's success at info level.
func logSuccess(op, name string) {
	internal.Log.I("%s %s ok", op, name)
}
