package identity

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathHelpers(t *testing.T) {
	root := "/srv/identitystore"
	assert.Equal(t, filepath.Join(root, "accounts", "Bob.json"), accountPath(root, "Bob"))
	assert.Equal(t, filepath.Join(root, "access_keys", "AKIA1.symlink"), accessKeyPath(root, "AKIA1"))
	assert.Equal(t, filepath.Join("..", "accounts", "Bob.json"), accessKeyTarget("Bob"))
	assert.Equal(t, filepath.Join(root, "accounts"), accountsRoot(root))
	assert.Equal(t, filepath.Join(root, "access_keys"), accessKeysRoot(root))
}

func TestContainsTmpMarker(t *testing.T) {
	assert.True(t, containsTmpMarker("Bob.json"+tmpMarker+"123-1"))
	assert.False(t, containsTmpMarker("Bob.json"))
}
