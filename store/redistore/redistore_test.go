package redistore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goIdentity "github.com/MrEthical07/goIdentity"
	"github.com/MrEthical07/goIdentity/role"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, "")
}

func testAccount(t *testing.T, id, email string) goIdentity.Account {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	return goIdentity.Account{
		ID:             id,
		Email:          email,
		CredentialHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$ZGlnZXN0",
		FirstName:      "Test",
		LastName:       "User",
		Role:           role.Viewer,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestInsertAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acc := testAccount(t, "id-1", "alice@example.com")
	if _, err := s.InsertIfAbsent(ctx, acc); err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}

	got, err := s.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.ID != acc.ID || got.Email != acc.Email || got.Role != acc.Role {
		t.Fatalf("FindByEmail = %+v, want %+v", got, acc)
	}
	if !got.CreatedAt.Equal(acc.CreatedAt) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, acc.CreatedAt)
	}

	got, err = s.FindByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.CredentialHash != acc.CredentialHash {
		t.Fatalf("credential hash not round-tripped")
	}
}

func TestLookupMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, goIdentity.ErrAccountNotFound) {
		t.Fatalf("FindByEmail err = %v, want ErrAccountNotFound", err)
	}
	if _, err := s.FindByID(ctx, "missing"); !errors.Is(err, goIdentity.ErrAccountNotFound) {
		t.Fatalf("FindByID err = %v, want ErrAccountNotFound", err)
	}
}

func TestInsertDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertIfAbsent(ctx, testAccount(t, "id-1", "alice@example.com")); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := s.InsertIfAbsent(ctx, testAccount(t, "id-2", "alice@example.com"))
	if !errors.Is(err, goIdentity.ErrDuplicateEmail) {
		t.Fatalf("second insert err = %v, want ErrDuplicateEmail", err)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len = %d, want 1", len(all))
	}
}

func TestConcurrentInsertSameEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	var wins int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			acc := testAccount(t, fmt.Sprintf("id-%d", n), "race@example.com")
			if _, err := s.InsertIfAbsent(ctx, acc); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if !errors.Is(err, goIdentity.ErrDuplicateEmail) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("winners = %d, want exactly 1", wins)
	}
}

func TestUpdateRole(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertIfAbsent(ctx, testAccount(t, "id-1", "alice@example.com")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	at := time.Now().UTC().Add(time.Minute).Truncate(time.Millisecond)
	got, err := s.UpdateRole(ctx, "id-1", role.Owner, at)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if got.Role != role.Owner {
		t.Fatalf("role = %v, want owner", got.Role)
	}
	if !got.UpdatedAt.Equal(at) {
		t.Fatalf("UpdatedAt = %v, want %v", got.UpdatedAt, at)
	}

	reloaded, err := s.FindByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if reloaded.Role != role.Owner {
		t.Fatalf("persisted role = %v, want owner", reloaded.Role)
	}

	if _, err := s.UpdateRole(ctx, "missing", role.Owner, at); !errors.Is(err, goIdentity.ErrAccountNotFound) {
		t.Fatalf("UpdateRole missing err = %v, want ErrAccountNotFound", err)
	}
}

func TestListAllOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, e := range emails {
		if _, err := s.InsertIfAbsent(ctx, testAccount(t, e, e)); err != nil {
			t.Fatalf("insert %s: %v", e, err)
		}
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != len(emails) {
		t.Fatalf("len = %d, want %d", len(all), len(emails))
	}
	for i, e := range emails {
		if all[i].Email != e {
			t.Fatalf("all[%d].Email = %q, want %q", i, all[i].Email, e)
		}
	}
}

func TestListAllEmpty(t *testing.T) {
	s := newTestStore(t)

	all, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("len = %d, want 0", len(all))
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
