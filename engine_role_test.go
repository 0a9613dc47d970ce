package goIdentity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/goIdentity/role"
)

func TestUpdateRole(t *testing.T) {
	engine := newTestEngine(t, newMockStore())
	res := mustRegister(t, engine, "alice@example.com")

	before := res.Account.UpdatedAt
	time.Sleep(5 * time.Millisecond)

	updated, err := engine.UpdateRole(context.Background(), res.Account.ID, role.Collaborator)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if updated.Role != role.Collaborator {
		t.Fatalf("role = %v, want collaborator", updated.Role)
	}
	if !updated.UpdatedAt.After(before) {
		t.Fatalf("UpdatedAt not refreshed: %v <= %v", updated.UpdatedAt, before)
	}
	if updated.CredentialHash != "" {
		t.Fatal("credential hash leaked")
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	engine := newTestEngine(t, newMockStore())
	res := mustRegister(t, engine, "alice@example.com")

	if _, err := engine.UpdateRole(context.Background(), "", role.Owner); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("empty id err = %v, want ErrInvalidRequest", err)
	}
	if _, err := engine.UpdateRole(context.Background(), "not-a-uuid", role.Owner); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("malformed id err = %v, want ErrInvalidRequest", err)
	}
	if _, err := engine.UpdateRole(context.Background(), res.Account.ID, role.Role(99)); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("bad role err = %v, want ErrInvalidRole", err)
	}

	// Well-formed id, no such account.
	_, err := engine.UpdateRole(context.Background(), "3290c03f-bbef-4bbe-9e25-dd63ad5b4e93", role.Owner)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("missing target err = %v, want ErrAccountNotFound", err)
	}
	if Kind(err) != KindNotFound {
		t.Fatalf("Kind = %v, want KindNotFound", Kind(err))
	}
}

func TestUpdateRoleByName(t *testing.T) {
	engine := newTestEngine(t, newMockStore())
	res := mustRegister(t, engine, "alice@example.com")

	updated, err := engine.UpdateRoleByName(context.Background(), res.Account.ID, "owner")
	if err != nil {
		t.Fatalf("UpdateRoleByName: %v", err)
	}
	if updated.Role != role.Owner {
		t.Fatalf("role = %v, want owner", updated.Role)
	}

	for _, name := range []string{"", "Owner", "OWNER", "admin"} {
		if _, err := engine.UpdateRoleByName(context.Background(), res.Account.ID, name); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("name %q err = %v, want ErrInvalidRole", name, err)
		}
	}
}

func TestUpdateRoleKeepsOutstandingTokenStale(t *testing.T) {
	engine := newTestEngine(t, newMockStore())
	res := mustRegister(t, engine, "alice@example.com")
	oldToken := res.Token

	if _, err := engine.UpdateRole(context.Background(), res.Account.ID, role.Owner); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}

	// The outstanding token still authenticates and still carries the role
	// snapshot taken at issuance.
	identity, err := engine.Authenticate(context.Background(), oldToken)
	if err != nil {
		t.Fatalf("Authenticate old token: %v", err)
	}
	if identity.Role != role.Viewer {
		t.Fatalf("stale token role = %v, want viewer", identity.Role)
	}

	// Only a fresh login picks up the new role.
	relogin, err := engine.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	identity, err = engine.Authenticate(context.Background(), relogin.Token)
	if err != nil {
		t.Fatalf("Authenticate new token: %v", err)
	}
	if identity.Role != role.Owner {
		t.Fatalf("fresh token role = %v, want owner", identity.Role)
	}
}

func TestRoleChangeMetrics(t *testing.T) {
	engine := newTestEngine(t, newMockStore())
	res := mustRegister(t, engine, "alice@example.com")

	if _, err := engine.UpdateRole(context.Background(), res.Account.ID, role.Owner); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	_, _ = engine.UpdateRole(context.Background(), res.Account.ID, role.Role(99))

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricRoleChange] != 1 {
		t.Fatalf("role change = %d, want 1", snap.Counters[MetricRoleChange])
	}
	if snap.Counters[MetricRoleChangeRejected] != 1 {
		t.Fatalf("role change rejected = %d, want 1", snap.Counters[MetricRoleChangeRejected])
	}
}
