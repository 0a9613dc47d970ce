// Package role defines the closed account role set and the required-role
// bitmask used by goIdentity authorization checks.
//
// # Role set
//
// Exactly three roles exist: viewer, collaborator, owner. Roles are a tagged
// enumeration, not a class hierarchy; all switches over [Role] are exhaustive.
// [Set] composes required roles as a bitmask, mirroring how permission masks
// compose elsewhere in this codebase.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. [Set.Allows]
// is the entire access decision: allow iff the set is empty or contains the
// caller's role.
//
// # What this package must NOT do
//
//   - Access stores, tokens, or the network.
//   - Import goIdentity or any of its other sub-packages.
//   - Grow the role set at runtime.
package role
