package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shirady/noobaa-core/identitystore/mock"
)

// newTestStore returns a Store rooted at a fresh temp dir, backed by the
// mock master key manager and an in-memory cache, plus the cache so tests
// can assert on invalidations.
func newTestStore(t *testing.T) (*Store, *mock.Cache) {
	t.Helper()
	cache := mock.NewCache()
	s, err := New(Options{
		Root:      t.TempDir(),
		MasterKey: mock.NewMasterKey(0),
		Cache:     cache,
	})
	require.NoError(t, err)
	return s, cache
}

// bootstrapRoot writes a root account directly to disk, bypassing the
// store's API; root accounts are bootstrapped externally and are read-only
// from this store's perspective.
func bootstrapRoot(t *testing.T, s *Store, id, name string) *Account {
	t.Helper()
	a := &Account{
		ID:                  id,
		Name:                name,
		Email:               name,
		CreationDate:        time.Now().UTC(),
		IAMPath:             "/",
		MasterKeyID:         "mk-bootstrap",
		AllowBucketCreation: true,
		ForceMD5ETag:        false,
		AccessKeys:          []AccessKey{},
	}
	require.NoError(t, s.fs.create(a))
	return a
}

func rootRequester(a *Account) Requester { return Requester{ID: a.ID} }

func userRequester(a *Account) Requester { return Requester{ID: a.ID, Owner: a.Owner} }

var ctx = context.Background()
