package role

// Role is one of the closed set of account roles. The set is fixed at
// compile time; there is no runtime role registration.
type Role uint8

const (
	// Viewer is the default role assigned at registration.
	Viewer Role = iota
	// Collaborator can act on shared resources but cannot administer accounts.
	Collaborator
	// Owner can administer other accounts, including role changes.
	Owner

	roleCount = iota
)

// String returns the canonical lowercase name of the role.
func (r Role) String() string {
	switch r {
	case Viewer:
		return "viewer"
	case Collaborator:
		return "collaborator"
	case Owner:
		return "owner"
	default:
		return "unknown"
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	return r < roleCount
}

// Parse resolves a canonical role name to its Role value.
func Parse(name string) (Role, bool) {
	switch name {
	case "viewer":
		return Viewer, true
	case "collaborator":
		return Collaborator, true
	case "owner":
		return Owner, true
	default:
		return 0, false
	}
}

// All returns every member of the role set in declaration order.
func All() []Role {
	return []Role{Viewer, Collaborator, Owner}
}

// Set is a required-role set represented as a bitmask over the closed
// role enumeration. The zero Set is empty and allows every role.
type Set uint8

// NewSet builds a Set from the given roles. Invalid roles are ignored.
func NewSet(roles ...Role) Set {
	var s Set
	for _, r := range roles {
		if r.Valid() {
			s |= 1 << r
		}
	}
	return s
}

// Has reports whether r is a member of the set.
func (s Set) Has(r Role) bool {
	if !r.Valid() {
		return false
	}
	return s&(1<<r) != 0
}

// Empty reports whether the set contains no roles.
func (s Set) Empty() bool {
	return s == 0
}

// Allows is the access decision: an empty set allows any role, a
// non-empty set allows only its members. Deterministic, no I/O.
func (s Set) Allows(r Role) bool {
	return s.Empty() || s.Has(r)
}
