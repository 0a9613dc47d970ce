// Package memstore implements the goIdentity store contract in process
// memory. It is suitable for tests, examples, and single-process tools;
// accounts do not survive a restart.
package memstore

import (
	"context"
	"sync"
	"time"

	goIdentity "github.com/MrEthical07/goIdentity"
	"github.com/MrEthical07/goIdentity/role"
)

// Store keeps accounts in memory, indexed by id and by email. Email
// equality is exact, as stored. All methods are safe for concurrent use.
// Insertion order is preserved for ListAll.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]goIdentity.Account
	byEmail map[string]string
	order   []string
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		byID:    make(map[string]goIdentity.Account),
		byEmail: make(map[string]string),
	}
}

// FindByEmail returns the account registered under exactly email.
func (s *Store) FindByEmail(ctx context.Context, email string) (goIdentity.Account, error) {
	if err := ctx.Err(); err != nil {
		return goIdentity.Account{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return goIdentity.Account{}, goIdentity.ErrAccountNotFound
	}
	return s.byID[id], nil
}

// FindByID returns the account with the given id.
func (s *Store) FindByID(ctx context.Context, id string) (goIdentity.Account, error) {
	if err := ctx.Err(); err != nil {
		return goIdentity.Account{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byID[id]
	if !ok {
		return goIdentity.Account{}, goIdentity.ErrAccountNotFound
	}
	return acc, nil
}

// InsertIfAbsent stores account unless its email is already taken. The
// check and the insert happen under one lock, so concurrent registrations
// of the same email resolve to exactly one winner.
func (s *Store) InsertIfAbsent(ctx context.Context, account goIdentity.Account) (goIdentity.Account, error) {
	if err := ctx.Err(); err != nil {
		return goIdentity.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[account.Email]; taken {
		return goIdentity.Account{}, goIdentity.ErrDuplicateEmail
	}
	s.byID[account.ID] = account
	s.byEmail[account.Email] = account.ID
	s.order = append(s.order, account.ID)
	return account, nil
}

// UpdateRole sets the role of the account with the given id and returns
// the updated record.
func (s *Store) UpdateRole(ctx context.Context, id string, newRole role.Role, updatedAt time.Time) (goIdentity.Account, error) {
	if err := ctx.Err(); err != nil {
		return goIdentity.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[id]
	if !ok {
		return goIdentity.Account{}, goIdentity.ErrAccountNotFound
	}
	acc.Role = newRole
	acc.UpdatedAt = updatedAt
	s.byID[id] = acc
	return acc, nil
}

// ListAll returns every stored account in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]goIdentity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]goIdentity.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Len reports the number of stored accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
