package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequesterClassification(t *testing.T) {
	root := Requester{ID: "r1"}
	assert.True(t, root.IsRoot())
	assert.Equal(t, "r1", root.RootID())

	user := Requester{ID: "u1", Owner: "r1"}
	assert.False(t, user.IsRoot())
	assert.Equal(t, "r1", user.RootID())
}

// A non-root requester acting on a user that is not itself is always
// AccessDeniedException, whether or not the target even exists under the
// same root.
func TestNonRootCannotActOnAnotherUser(t *testing.T) {
	s, _ := newTestStore(t)
	root := bootstrapRoot(t, s, "r1", "root")
	rootReq := rootRequester(root)

	_, err := s.CreateUser(ctx, rootReq, root, CreateUserInput{Username: "Alice"})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, rootReq, root, CreateUserInput{Username: "Bob"})
	require.NoError(t, err)
	alice, err := s.fs.read("Alice")
	require.NoError(t, err)

	aliceReq := userRequester(alice)
	_, err = s.GetUser(ctx, aliceReq, "Alice", "Bob")
	require.Error(t, err)
	assert.Equal(t, "AccessDeniedException", codeOf(err))
}

// Acting on a root account itself (here a GetUser) is always AccessDenied,
// even for another root; there is no target-is-a-root success path.
func TestCannotActOnRootAccount(t *testing.T) {
	s, _ := newTestStore(t)
	root := bootstrapRoot(t, s, "r1", "root")
	other := bootstrapRoot(t, s, "r2", "other")
	req := rootRequester(other)

	_, err := s.GetUser(ctx, req, other.Name, root.Name)
	require.Error(t, err)
	assert.Equal(t, "AccessDeniedException", codeOf(err))
}
