package identity

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// symlinkEngine creates and removes entries in the access-key index. It
// never follows symlinks for writes of the account file; writes always go
// through the canonical <accounts>/<name>.json path.
type symlinkEngine struct {
	root string
}

func newSymlinkEngine(root string) *symlinkEngine {
	return &symlinkEngine{root: root}
}

// create links accessKey to the account file for name.
func (e *symlinkEngine) create(accessKey, name string) error {
	path := accessKeyPath(e.root, accessKey)
	if err := os.Symlink(accessKeyTarget(name), path); err != nil {
		return internal.FromErrno("symlink", path, err)
	}
	return nil
}

// delete unlinks the index entry for accessKey.
func (e *symlinkEngine) delete(accessKey string, opt deleteOpt) error {
	path := accessKeyPath(e.root, accessKey)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) && opt == deleteTolerateMissing {
			return nil
		}
		return internal.FromErrno("remove", path, err)
	}
	return nil
}

// resolve returns the account name that accessKey's symlink points at. A
// dangling symlink (target missing) is treated as equivalent to NotFound, so
// callers only ever see a clean account name or an error.
func (e *symlinkEngine) resolve(accessKey string) (string, error) {
	path := accessKeyPath(e.root, accessKey)
	target, err := os.Readlink(path)
	if err != nil {
		return "", internal.FromErrno("readlink", path, err)
	}
	name := filepath.Base(target)
	name = name[:len(name)-len(filepath.Ext(name))]
	if _, err := os.Stat(accountPath(e.root, name)); err != nil {
		return "", internal.NewError(internal.ErrCodeNoSuchEntity,
			"dangling access key index: "+accessKey, err)
	}
	return name, nil
}

// listAccessKeys enumerates access-key identifiers present in the index,
// skipping temp files.
func (e *symlinkEngine) listAccessKeys() ([]string, error) {
	dir := accessKeysRoot(e.root)
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, internal.FromErrno("readdir", dir, err)
	}
	keys := make([]string, 0, len(entries))
	for _, fi := range entries {
		name := fi.Name()
		if filepath.Ext(name) != accessKeyExt || containsTmpMarker(name) {
			continue
		}
		keys = append(keys, name[:len(name)-len(accessKeyExt)])
	}
	return keys, nil
}
