package domain

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Role is an authorization role carried in access tokens.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleSuperUser Role = "SUPER_USER"
)

var knownRoles = map[Role]struct{}{
	RoleUser:      {},
	RoleAdmin:     {},
	RoleSuperUser: {},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// RoleSet is an unordered set of roles. The zero value is an empty,
// read-only set.
type RoleSet struct {
	set mapset.Set[Role]
}

// NewRoleSet builds a set from roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := RoleSet{set: mapset.New[Role]()}
	for _, r := range roles {
		s.set.Put(r)
	}
	return s
}

// ParseRoles converts raw claim strings into a RoleSet, dropping anything
// that is not a known role.
func ParseRoles(raw []string) RoleSet {
	s := NewRoleSet()
	for _, r := range raw {
		if role := Role(r); role.Valid() {
			s.set.Put(role)
		}
	}
	return s
}

// Has reports whether r is in the set.
func (s RoleSet) Has(r Role) bool {
	return s.set.Has(r)
}

// Len returns the number of roles.
func (s RoleSet) Len() int {
	return s.set.Size()
}

// Intersects reports whether s and other share at least one role.
func (s RoleSet) Intersects(other RoleSet) bool {
	found := false
	other.set.Each(func(r Role) {
		if !found && s.Has(r) {
			found = true
		}
	})
	return found
}

// Strings returns the roles sorted, for logging and claims.
func (s RoleSet) Strings() []string {
	out := make([]string, 0, s.Len())
	s.set.Each(func(r Role) {
		out = append(out, string(r))
	})
	sort.Strings(out)
	return out
}

// Identity is the authenticated caller of a request. It is never persisted.
type Identity struct {
	SubjectID int64
	Roles     RoleSet
}
