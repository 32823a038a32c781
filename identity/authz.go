package identity

import (
	"github.com/shirady/noobaa-core/identitystore/internal"
)

// Requester is the requesting account a session supplies to every
// operation. It carries just enough of Account to classify the caller
// without needing a full store read in the common case.
type Requester struct {
	ID    string
	Owner string // empty or == ID for a root account
}

// IsRoot reports whether the requester is a root account.
func (r Requester) IsRoot() bool {
	return r.Owner == "" || r.Owner == r.ID
}

// RootID returns the id of the root account the requester belongs to.
func (r Requester) RootID() string {
	if r.IsRoot() {
		return r.ID
	}
	return r.Owner
}

// accessDenied builds an AccessDeniedException whose detail message embeds
// the requester's and target's constructed ARNs.
func accessDenied(requester Requester, requesterName, targetRootID, targetPath, targetName string) error {
	reqARN := BuildARN(requester.RootID(), "/", requesterName)
	tgtARN := BuildARN(targetRootID, targetPath, targetName)
	return internal.NewError(internal.ErrCodeAccessDenied,
		"User: "+reqARN+" is not authorized to perform this action on resource: "+tgtARN, nil)
}

func noSuchUser(name string) error {
	return internal.NewError(internal.ErrCodeNoSuchEntity, "no such user: "+name, nil)
}

// requireRoot enforces the RootAccount-only rule for CreateUser, DeleteUser,
// ListUsers, GetUser, and UpdateUser.
func requireRoot(requester Requester, requesterName string) error {
	if !requester.IsRoot() {
		return accessDenied(requester, requesterName, requester.RootID(), "/", requesterName)
	}
	return nil
}

// requireOwnedUser authorizes a target resolved by username (GetUser,
// UpdateUser, DeleteUser): always root-only callers. A root account as the
// target is always denied; no operation may mutate a root. A target owned by
// a different root is reported as NoSuchEntity, not AccessDeniedException: a
// root caller cannot even observe that a same-named user exists under a
// different root, mirroring IAM's per-account namespacing.
func requireOwnedUser(requester Requester, requesterName string, target *Account) error {
	if target.IsRoot() {
		return accessDenied(requester, requesterName, target.RootID(), target.IAMPath, target.Name)
	}
	if target.Owner != requester.ID {
		return noSuchUser(target.Name)
	}
	return nil
}

// requireSelfOrRootByUsername authorizes the access-key operations that
// resolve their target by username (CreateAccessKey, ListAccessKeys): a
// root acting on a user it owns, or a user acting on itself. As with
// requireOwnedUser, a root's cross-tenant lookup by username surfaces as
// NoSuchEntity rather than AccessDeniedException -- the target was found
// only because this store's single filesystem holds every tenant, not
// because the requester is entitled to know it exists.
func requireSelfOrRootByUsername(requester Requester, requesterName string, target *Account) error {
	if target.IsRoot() {
		return accessDenied(requester, requesterName, target.RootID(), target.IAMPath, target.Name)
	}
	if requester.IsRoot() {
		if target.RootID() != requester.RootID() {
			return noSuchUser(target.Name)
		}
		return nil
	}
	if requesterName != target.Name {
		return accessDenied(requester, requesterName, target.RootID(), target.IAMPath, target.Name)
	}
	return nil
}

// requireSelfOrRootByAccessKey authorizes UpdateAccessKey/DeleteAccessKey:
// the target was already resolved through the global access-key symlink
// index, so its existence is established regardless of tenant; a
// cross-tenant mismatch here is an authorization failure, AccessDenied, not
// NoSuchEntity.
func requireSelfOrRootByAccessKey(requester Requester, requesterName string, target *Account) error {
	if requester.IsRoot() {
		if target.RootID() != requester.RootID() {
			return accessDenied(requester, requesterName, target.RootID(), target.IAMPath, target.Name)
		}
		return nil
	}
	if requesterName != target.Name {
		return accessDenied(requester, requesterName, target.RootID(), target.IAMPath, target.Name)
	}
	return nil
}

// requireSameRoot authorizes GetAccessKeyLastUsed: any authenticated caller
// whose root matches the access key's root, found via the same global
// symlink index as requireSelfOrRootByAccessKey, so a mismatch is also
// AccessDenied.
func requireSameRoot(requester Requester, requesterName string, target *Account) error {
	if requester.RootID() != target.RootID() {
		return accessDenied(requester, requesterName, target.RootID(), target.IAMPath, target.Name)
	}
	return nil
}
