// Package authz decides whether an acting user may mutate an owned resource.
package authz

import (
	"strconv"
	"strings"

	"github.com/community-board/api-go/apperrors"
)

// Identity is the numeric id of an authenticated user. Two identities are
// equal when their values are equal.
type Identity uint

const (
	CodeNoPermission = "NO_PERMISSION"
	CodeUserNotFound = "USER_NOT_FOUND"
)

// ParseIdentity converts the string-encoded actor id supplied by the auth
// layer. Anything that cannot name a user is reported as USER_NOT_FOUND.
func ParseIdentity(raw string) (Identity, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NotFound(CodeUserNotFound)
	}
	return Identity(id), nil
}

func (i Identity) Uint() uint { return uint(i) }

func (i Identity) String() string { return strconv.FormatUint(uint64(i), 10) }

// Owns reports whether i is the owner identified by ownerID.
func (i Identity) Owns(ownerID uint) bool {
	return i != 0 && uint(i) == ownerID
}

// Authorize returns nil when actor owns the resource and a NoPermission
// error otherwise.
func Authorize(actor Identity, ownerID uint) error {
	if !actor.Owns(ownerID) {
		return apperrors.NoPermission(CodeNoPermission)
	}
	return nil
}
