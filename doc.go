// Package goIdentity provides a credential-based authentication and
// role-based authorization core: account registration with store-enforced
// email uniqueness, Argon2id credential verification, signed stateless
// session tokens, and a closed-set role decision engine.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goIdentity is the public surface. It exposes [Engine], [Builder],
// [Config], the [Store] contract, and value types (Account, Identity,
// AuthResult). Credential hashing, token signing, and the role set live in
// sub-packages; store backings live under store/ and are chosen by the
// host process.
//
// # What this package must NOT do
//
//   - Expose credential hashes: every Account leaving the Engine has the
//     hash stripped.
//   - Retry failed authentication, or reveal whether a login failure was an
//     unknown email or a wrong password.
//   - Read storage during token verification — the role claim is trusted
//     as issued, and staleness is bounded by the token TTL.
package goIdentity
