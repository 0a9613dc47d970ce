// Package middleware exposes HTTP middleware adapters for bearer-token
// authentication and role enforcement built on top of goIdentity.Engine.
//
// # Guards
//
//   - [Authenticate] — token verification only, any role passes.
//   - [Require] — token verification plus a role-set check.
//
// Each guard reads the Authorization header, resolves the caller through
// Engine.Authenticate, and injects the identity into the request context
// for [IdentityFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. A failed
// Authenticate maps to 401, a failed Authorize maps to 403, and the two
// are never collapsed into one status.
//
// # What this package must NOT do
//
//   - Parse or create tokens directly (delegates to Engine).
//   - Touch the account store (identity comes from token claims).
//   - Make role decisions itself beyond pass/reject from Engine.Authorize.
package middleware
