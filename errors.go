package goIdentity

import "errors"

var (
	// ErrUnauthorized is returned when a presented token is missing, malformed,
	// carries a bad signature, or has expired. All verification failures
	// collapse to this one error.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned on login failure. Unknown email and
	// wrong password produce this same value so callers cannot probe which
	// accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPermissionDenied is returned when a valid identity lacks a required
	// role. Never conflated with ErrUnauthorized.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAccountExists is returned when registration targets an email that
	// already has an account.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned when a referenced account id does not
	// exist. Store implementations return it from lookups and role updates.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned by [Store.InsertIfAbsent] when the email
	// is already taken. The Engine maps it to ErrAccountExists.
	ErrDuplicateEmail = errors.New("store duplicate email")
	// ErrInvalidRequest is returned for malformed input: empty or malformed
	// account id, invalid email shape, missing fields.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidRole is returned when a role name or value is not a member of
	// the closed role set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrPasswordPolicy is returned when a password fails the configured
	// minimum-length policy.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrEngineNotReady is returned when an Engine method is called before
	// the engine was assembled through [Builder.Build].
	ErrEngineNotReady = errors.New("engine not initialized")
)

// ErrorKind classifies engine errors for transport-boundary mapping. Kinds
// are the stable taxonomy; the sentinel errors above are the representations.
type ErrorKind int

const (
	// KindInternal covers failures outside the taxonomy (store I/O, signing).
	KindInternal ErrorKind = iota
	// KindBadRequest covers malformed input detectable before any I/O.
	KindBadRequest
	// KindConflict covers uniqueness violations.
	KindConflict
	// KindUnauthorized covers missing/invalid/expired credentials.
	KindUnauthorized
	// KindForbidden covers valid identities with insufficient role.
	KindForbidden
	// KindNotFound covers references to absent accounts.
	KindNotFound
)

// Kind returns the taxonomy classification for err. Unrecognized errors,
// including nil, classify as KindInternal.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrPasswordPolicy):
		return KindBadRequest
	case errors.Is(err, ErrAccountExists), errors.Is(err, ErrDuplicateEmail):
		return KindConflict
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return KindUnauthorized
	case errors.Is(err, ErrPermissionDenied):
		return KindForbidden
	case errors.Is(err, ErrAccountNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
