package identity

import (
	"context"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// ReconcileReport summarizes the healing actions taken by Reconcile.
type ReconcileReport struct {
	// SymlinksCreated lists access keys whose index entry was missing and
	// has been recreated (the crash window between account-file write and
	// symlink create in CreateAccessKey, or a rename that left old
	// symlinks pointing at a deleted account file).
	SymlinksCreated []string
	// DanglingSymlinks lists symlinks that do not resolve to an account
	// listing the access key: the target account file does not exist, or
	// does not list the key, or another account claims the key. Those whose
	// key some account still claims are reported and left in place; those
	// whose key no account claims are also removed (see OrphansRemoved).
	DanglingSymlinks []string
	// OrphansRemoved lists dangling symlinks removed because no account
	// anywhere in the store claims that access key.
	OrphansRemoved []string
}

// Reconcile scans both directions of the two-index scheme and heals what it
// can: every access key named in an account file gets a symlink; every
// symlink whose access key no account claims is removed, whether or not its
// target account file still exists. It is a maintenance
// operation, invoked by the identitystore-reconcile tool, never from the
// request path.
func (s *Store) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	names, err := s.fs.listNames()
	if err != nil {
		return nil, err
	}
	claimed := make(map[string]string, len(names)) // access key -> owning account name
	report := &ReconcileReport{}

	for _, name := range names {
		a, err := s.fs.read(name)
		if err != nil {
			internal.Log.W("reconcile: skipping unreadable account %s: %v", name, err)
			continue
		}
		for _, k := range a.AccessKeys {
			claimed[k.AccessKey] = name
			if _, err := s.sym.resolve(k.AccessKey); err != nil {
				// The index entry may be missing outright or present but
				// stale (a rename left it pointing at a deleted account
				// file); unlink first so the recreate never hits EEXIST.
				if err := s.sym.delete(k.AccessKey, deleteTolerateMissing); err != nil {
					internal.Log.E("reconcile: failed to remove stale symlink for %s: %v", k.AccessKey, err)
					continue
				}
				if err := s.sym.create(k.AccessKey, name); err != nil {
					internal.Log.E("reconcile: failed to recreate symlink for %s: %v", k.AccessKey, err)
					continue
				}
				report.SymlinksCreated = append(report.SymlinksCreated, k.AccessKey)
			}
		}
	}

	keys, err := s.sym.listAccessKeys()
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		owner, claimedByOwner := claimed[k]
		resolved, rerr := s.sym.resolve(k)
		if claimedByOwner && rerr == nil && resolved == owner {
			continue // consistent: the symlink points at the account that lists k
		}
		report.DanglingSymlinks = append(report.DanglingSymlinks, k)
		if !claimedByOwner {
			// No account anywhere claims k -- whether its target file is
			// missing entirely or just no longer lists the key, nothing
			// needs this symlink, so it is safe to remove.
			if err := s.sym.delete(k, deleteTolerateMissing); err == nil {
				report.OrphansRemoved = append(report.OrphansRemoved, k)
			}
		}
	}
	return report, nil
}
