package goIdentity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MrEthical07/goIdentity/internal"
)

// Register creates an account for an unused email and issues a session
// token for it. Validation (email shape, password length, name presence)
// happens before any I/O. The store is the final arbiter of email
// uniqueness: even if the pre-insert lookup races with a concurrent
// registration, the atomic insert surfaces the duplicate as
// [ErrAccountExists].
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if e == nil || e.store == nil || e.hasher == nil {
		return nil, ErrEngineNotReady
	}

	if !validEmail(req.Email) {
		e.metricInc(MetricRegisterInvalid)
		return nil, ErrInvalidRequest
	}
	if len(req.Password) < e.config.Directory.MinPasswordLength {
		e.metricInc(MetricRegisterInvalid)
		return nil, ErrPasswordPolicy
	}

	// Fast-path duplicate check. Purely advisory: the insert below is the
	// authoritative uniqueness gate.
	if _, err := e.store.FindByEmail(ctx, req.Email); err == nil {
		e.metricInc(MetricRegisterDuplicate)
		return nil, ErrAccountExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	hash, err := e.hasher.Hash(req.Password)
	if err != nil {
		e.metricInc(MetricRegisterInvalid)
		return nil, ErrPasswordPolicy
	}
	req.Password = ""

	id, err := internal.NewAccountID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := Account{
		ID:             id,
		Email:          req.Email,
		CredentialHash: hash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           e.config.Directory.DefaultRole,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := e.store.InsertIfAbsent(ctx, account)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			e.metricInc(MetricRegisterDuplicate)
			return nil, ErrAccountExists
		}
		return nil, err
	}

	issued, err := e.issueToken(created)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricRegisterSuccess)
	return &AuthResult{
		Account: created.sanitized(),
		Token:   issued,
	}, nil
}

// FindAccount looks up an account by id. A malformed or empty id is a
// request error; an absent account is not — the found flag reports it and
// callers decide whether absence is fatal.
func (e *Engine) FindAccount(ctx context.Context, id string) (*Account, bool, error) {
	if e == nil || e.store == nil {
		return nil, false, ErrEngineNotReady
	}
	if id == "" || !internal.ValidAccountID(id) {
		return nil, false, ErrInvalidRequest
	}

	account, err := e.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	out := account.sanitized()
	return &out, true, nil
}

// ListAccounts returns every account in store order, credential hashes
// stripped. No pagination.
func (e *Engine) ListAccounts(ctx context.Context) ([]Account, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	accounts, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.sanitized()
	}
	return out, nil
}

// validEmail applies a deliberately small shape check: one "@" with a
// non-empty local part and a dotted domain, no whitespace. Full RFC 5322
// parsing buys nothing at this boundary — the store's uniqueness gate is
// keyed on the raw string either way.
func validEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" {
		return false
	}
	if strings.Contains(domain, "@") {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}
