package identity

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

const (
	fileMode = os.FileMode(0o600)
	dirMode  = os.FileMode(0o700)
)

// fsEngine handles atomic create/read/update/delete of account files via
// write-to-temp, fsync, rename, with schema validation on every write.
type fsEngine struct {
	root string
}

var tmpSeq uint64

func newFSEngine(root string) (*fsEngine, error) {
	for _, dir := range []string{accountsRoot(root), accessKeysRoot(root)} {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return nil, internal.FromErrno("mkdir", dir, err)
		}
	}
	return &fsEngine{root: root}, nil
}

// tmpPath returns a sibling temp file path with a unique suffix carrying the
// tmpMarker substring, so directory scans can skip it.
func tmpPath(path string) string {
	n := atomic.AddUint64(&tmpSeq, 1)
	return path + tmpMarker + strconv.FormatInt(int64(os.Getpid()), 10) + "-" + strconv.FormatUint(n, 10)
}

// writeTempRename writes data to a temp file beside path, fsyncs, sets its
// mode, and renames it into place. The rename is atomic: readers see either
// no file or the complete file.
func writeTempRename(path string, data []byte) error {
	tmp := tmpPath(path)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		return internal.FromErrno("create", tmp, err)
	}
	ok := false
	defer func() {
		if !ok {
			f.Close()
			os.Remove(tmp)
		}
	}()
	if _, err = f.Write(data); err != nil {
		return internal.FromErrno("write", tmp, err)
	}
	if err = f.Sync(); err != nil {
		return internal.FromErrno("fsync", tmp, err)
	}
	if err = f.Close(); err != nil {
		return internal.FromErrno("close", tmp, err)
	}
	if err = os.Chmod(tmp, fileMode); err != nil {
		return internal.FromErrno("chmod", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return internal.FromErrno("rename", path, err)
	}
	ok = true
	return nil
}

// create writes a new account file. It fails with ErrCodeEntityExists if
// path already exists.
func (e *fsEngine) create(a *Account) error {
	if err := validateAccount(a); err != nil {
		return err
	}
	path := accountPath(e.root, a.Name)
	if _, err := os.Lstat(path); err == nil {
		return internal.NewError(internal.ErrCodeEntityExists,
			"account already exists: "+a.Name, nil)
	} else if !os.IsNotExist(err) {
		return internal.FromErrno("stat", path, err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return internal.NewError(internal.ErrCodeServiceFailure, "marshal account: "+err.Error(), err)
	}
	return writeTempRename(path, data)
}

// read loads the account named name.
func (e *fsEngine) read(name string) (*Account, error) {
	path := accountPath(e.root, name)
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, internal.FromErrno("read", path, err)
	}
	var a Account
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, internal.NewError(internal.ErrCodeServiceFailure,
			"corrupt account file: "+path, err)
	}
	return &a, nil
}

// update overwrites an existing account file in place.
func (e *fsEngine) update(a *Account) error {
	if err := validateAccount(a); err != nil {
		return err
	}
	path := accountPath(e.root, a.Name)
	if _, err := os.Lstat(path); err != nil {
		return internal.FromErrno("stat", path, err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return internal.NewError(internal.ErrCodeServiceFailure, "marshal account: "+err.Error(), err)
	}
	return writeTempRename(path, data)
}

// deleteOpt controls delete's tolerance for a missing file.
type deleteOpt int

const (
	deleteStrict deleteOpt = iota
	deleteTolerateMissing
)

// delete unlinks the account file for name. It tolerates ErrCodeNoSuchEntity
// only when opt is deleteTolerateMissing.
func (e *fsEngine) delete(name string, opt deleteOpt) error {
	path := accountPath(e.root, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) && opt == deleteTolerateMissing {
			return nil
		}
		return internal.FromErrno("remove", path, err)
	}
	return nil
}

// listNames enumerates account names present under <root>/accounts/,
// skipping temp files (those whose base name contains tmpMarker).
func (e *fsEngine) listNames() ([]string, error) {
	dir := accountsRoot(e.root)
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, internal.FromErrno("readdir", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, fi := range entries {
		base := fi.Name()
		if filepath.Ext(base) != accountExt {
			continue
		}
		if containsTmpMarker(base) {
			continue
		}
		names = append(names, base[:len(base)-len(accountExt)])
	}
	return names, nil
}

func containsTmpMarker(s string) bool {
	for i := 0; i+len(tmpMarker) <= len(s); i++ {
		if s[i:i+len(tmpMarker)] == tmpMarker {
			return true
		}
	}
	return false
}
