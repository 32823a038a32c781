package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileRecreatesMissingSymlink(t *testing.T) {
	s, _ := newTestStore(t)
	root := bootstrapRoot(t, s, "r1", "root")
	req := rootRequester(root)

	_, err := s.CreateUser(ctx, req, root, CreateUserInput{Username: "Bob"})
	require.NoError(t, err)
	ak, err := s.CreateAccessKey(ctx, req, root.Name, CreateAccessKeyInput{Username: "Bob"})
	require.NoError(t, err)

	// Simulate the crash window between the account-file write and the
	// symlink create: remove the index entry out from under the store
	// without touching the account file.
	require.NoError(t, s.sym.delete(ak.AccessKey, deleteStrict))
	_, err = s.sym.resolve(ak.AccessKey)
	require.Error(t, err)

	report, err := s.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{ak.AccessKey}, report.SymlinksCreated)
	assert.Empty(t, report.DanglingSymlinks)
	assert.Empty(t, report.OrphansRemoved)

	name, err := s.sym.resolve(ak.AccessKey)
	require.NoError(t, err)
	assert.Equal(t, "Bob", name)
}

func TestReconcileRemovesOrphanedSymlink(t *testing.T) {
	s, _ := newTestStore(t)
	root := bootstrapRoot(t, s, "r1", "root")
	req := rootRequester(root)

	_, err := s.CreateUser(ctx, req, root, CreateUserInput{Username: "Bob"})
	require.NoError(t, err)
	ak, err := s.CreateAccessKey(ctx, req, root.Name, CreateAccessKeyInput{Username: "Bob"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteAccessKey(ctx, req, root.Name, DeleteAccessKeyInput{
		Username: "Bob", AccessKey: ak.AccessKey,
	}))

	// Recreate a dangling symlink pointing at an account that no longer
	// lists the key: the account file still exists, it simply no longer
	// claims this access key.
	require.NoError(t, s.sym.create(ak.AccessKey, "Bob"))

	report, err := s.Reconcile(ctx)
	require.NoError(t, err)
	assert.Contains(t, report.DanglingSymlinks, ak.AccessKey)
}
