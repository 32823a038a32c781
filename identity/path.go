package identity

import "path/filepath"

const (
	accountsDir   = "accounts"
	accessKeysDir = "access_keys"
	accountExt    = ".json"
	accessKeyExt  = ".symlink"
	tmpMarker     = ".tmp-"
)

// accountPath returns the canonical path of the account file for name under
// root. Names are used verbatim: the store assumes they were validated by
// the upstream request parser and contain no path separators.
func accountPath(root, name string) string {
	return filepath.Join(root, accountsDir, name+accountExt)
}

// accessKeyPath returns the canonical path of the symlink index entry for
// accessKey under root.
func accessKeyPath(root, accessKey string) string {
	return filepath.Join(root, accessKeysDir, accessKey+accessKeyExt)
}

// accessKeyTarget returns the relative symlink target for an account named
// name, anchored at <root>/access_keys/: "../accounts/<name>.json". The
// relative form keeps the index valid if the configuration root moves.
func accessKeyTarget(name string) string {
	return filepath.Join("..", accountsDir, name+accountExt)
}

// accountsRoot and accessKeysRoot return the two top-level index directories.
func accountsRoot(root string) string   { return filepath.Join(root, accountsDir) }
func accessKeysRoot(root string) string { return filepath.Join(root, accessKeysDir) }
