package goIdentity

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goIdentity/internal"
	"github.com/MrEthical07/goIdentity/role"
)

// UpdateRole reassigns the target account's role and refreshes its
// UpdatedAt. The caller's own authorization is the transport boundary's
// job — this method must only run after an Owner identity passed
// [Engine.Authorize] there; it does not re-check the caller.
//
// Outstanding tokens for the target keep their stale role claim until
// they expire; only a re-login picks up the new role.
func (e *Engine) UpdateRole(ctx context.Context, targetID string, newRole role.Role) (*Account, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	if targetID == "" || !internal.ValidAccountID(targetID) {
		e.metricInc(MetricRoleChangeRejected)
		return nil, ErrInvalidRequest
	}
	if !newRole.Valid() {
		e.metricInc(MetricRoleChangeRejected)
		return nil, ErrInvalidRole
	}

	updated, err := e.store.UpdateRole(ctx, targetID, newRole, time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			e.metricInc(MetricRoleChangeRejected)
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	e.metricInc(MetricRoleChange)
	out := updated.sanitized()
	return &out, nil
}

// UpdateRoleByName is UpdateRole with the role given as its canonical
// name ("viewer", "collaborator", "owner"). An unknown name is a request
// error, reported as [ErrInvalidRole].
func (e *Engine) UpdateRoleByName(ctx context.Context, targetID, roleName string) (*Account, error) {
	r, ok := role.Parse(roleName)
	if !ok {
		e.metricInc(MetricRoleChangeRejected)
		return nil, ErrInvalidRole
	}
	return e.UpdateRole(ctx, targetID, r)
}
