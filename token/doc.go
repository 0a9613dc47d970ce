// Package token manages session-token issuance and verification using a
// process-wide signing key injected at construction. Claims carry an
// identity and role snapshot taken at issuance; verification never reads
// storage, so a claim can go stale for at most one TTL.
package token
