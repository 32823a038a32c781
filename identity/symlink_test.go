package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymlinkEngineCreateResolveDelete(t *testing.T) {
	root := t.TempDir()
	fs, err := newFSEngine(root)
	require.NoError(t, err)
	sym := newSymlinkEngine(root)

	a := validAccount()
	a.Name, a.Email = "Bob", "Bob"
	require.NoError(t, fs.create(a))

	require.NoError(t, sym.create("AKIATEST", a.Name))
	name, err := sym.resolve("AKIATEST")
	require.NoError(t, err)
	assert.Equal(t, "Bob", name)

	keys, err := sym.listAccessKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"AKIATEST"}, keys)

	require.NoError(t, sym.delete("AKIATEST", deleteStrict))
	_, err = sym.resolve("AKIATEST")
	assert.Error(t, err)
}

// A symlink whose target account file has been removed is dangling and
// reads back as NotFound, not a stale name.
func TestSymlinkEngineDanglingTarget(t *testing.T) {
	root := t.TempDir()
	fs, err := newFSEngine(root)
	require.NoError(t, err)
	sym := newSymlinkEngine(root)

	a := validAccount()
	a.Name, a.Email = "Ghost", "Ghost"
	require.NoError(t, fs.create(a))
	require.NoError(t, sym.create("AKIAGHOST", a.Name))
	require.NoError(t, fs.delete(a.Name, deleteStrict))

	_, err = sym.resolve("AKIAGHOST")
	assert.Error(t, err)
	assert.Equal(t, "NoSuchEntity", codeOf(err))
}
