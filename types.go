package goIdentity

import (
	"context"
	"time"

	"github.com/MrEthical07/goIdentity/role"
)

// Account is the identity record persisted by a [Store]. ID and Email are
// immutable after creation; Role is mutated only through
// [Engine.UpdateRole]. CredentialHash is write-isolated: the Engine strips
// it from every account it returns.
type Account struct {
	ID             string
	Email          string
	CredentialHash string
	FirstName      string
	LastName       string
	Role           role.Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// sanitized returns a copy of the account with the credential hash removed.
func (a Account) sanitized() Account {
	a.CredentialHash = ""
	return a
}

// Identity is the resolved caller context produced by
// [Engine.Authenticate]. The role is the snapshot embedded in the token,
// not a fresh store read.
type Identity struct {
	ID    string
	Email string
	Role  role.Role
}

// RegisterRequest is the input for [Engine.Register].
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by [Engine.Register] and [Engine.Login]: the
// account (credential hash stripped) and a freshly issued session token.
type AuthResult struct {
	Account Account
	Token   string
}

// Store is the account persistence contract consumed by the Engine.
// Implementations must make InsertIfAbsent an atomic conditional write:
// exactly one of two concurrent inserts for the same email may succeed,
// the other must observe [ErrDuplicateEmail]. The engine never
// checks-then-writes around this contract.
//
// Email equality is exact, as stored: FindByEmail and the uniqueness gate
// compare the raw string. Lookups return [ErrAccountNotFound] for absent
// records. ListAll returns accounts in the store's natural order;
// insertion order is the expected default.
type Store interface {
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	InsertIfAbsent(ctx context.Context, account Account) (Account, error)
	UpdateRole(ctx context.Context, id string, newRole role.Role, updatedAt time.Time) (Account, error)
	ListAll(ctx context.Context) ([]Account, error)
}
