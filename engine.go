package goIdentity

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goIdentity/password"
	"github.com/MrEthical07/goIdentity/role"
	"github.com/MrEthical07/goIdentity/token"
)

// Engine is the authentication/authorization core: it registers accounts,
// verifies login credentials, issues and validates session tokens, and
// decides role-gated access. Engine methods are safe to call from multiple
// goroutines after initialization through [Builder.Build].
type Engine struct {
	config  Config
	store   Store
	hasher  *password.Hasher
	tokens  *token.Manager
	metrics *Metrics
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Login verifies the email/password pair and issues a session token.
// Unknown email and wrong password are indistinguishable to the caller:
// both return [ErrInvalidCredentials]. No side effects on failure.
func (e *Engine) Login(ctx context.Context, email, plaintext string) (*AuthResult, error) {
	if e == nil || e.store == nil || e.hasher == nil {
		return nil, ErrEngineNotReady
	}
	if email == "" || plaintext == "" {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			e.metricInc(MetricLoginFailure)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := e.hasher.Verify(plaintext, account.CredentialHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	issued, err := e.issueToken(account)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	return &AuthResult{
		Account: account.sanitized(),
		Token:   issued,
	}, nil
}

// Authenticate resolves a presented bearer token to an identity. This is
// the single trust boundary: the role in the returned Identity is the
// snapshot embedded in the token, never a fresh store read. Any
// verification failure returns [ErrUnauthorized].
func (e *Engine) Authenticate(ctx context.Context, tokenStr string) (*Identity, error) {
	if e == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}
	_ = ctx // verification is local; ctx kept for interface symmetry

	claims, err := e.tokens.Verify(tokenStr)
	if err != nil {
		e.metricInc(MetricTokenRejected)
		return nil, ErrUnauthorized
	}

	r, ok := role.Parse(claims.Role)
	if !ok {
		e.metricInc(MetricTokenRejected)
		return nil, ErrUnauthorized
	}

	return &Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  r,
	}, nil
}

// Authorize is the access decision: allow iff required is empty or
// contains identity's role. Deny surfaces as [ErrPermissionDenied], which
// is distinct from [ErrUnauthorized] — a valid identity with an
// insufficient role is never reported as unauthenticated.
func (e *Engine) Authorize(identity *Identity, required role.Set) error {
	if identity == nil {
		e.metricInc(MetricAccessDenied)
		return ErrUnauthorized
	}
	if !required.Allows(identity.Role) {
		e.metricInc(MetricAccessDenied)
		return ErrPermissionDenied
	}
	e.metricInc(MetricAccessAllowed)
	return nil
}

// TokenTTL returns the fixed validity window applied to issued tokens.
func (e *Engine) TokenTTL() time.Duration {
	if e == nil || e.tokens == nil {
		return 0
	}
	return e.tokens.TTL()
}

func (e *Engine) issueToken(account Account) (string, error) {
	issued, err := e.tokens.Issue(account.ID, account.Email, account.Role.String())
	if err != nil {
		return "", err
	}
	e.metricInc(MetricTokenIssued)
	return issued, nil
}
