// Package redistore implements the goIdentity store contract on Redis.
//
// Each account is a JSON record keyed by id, with a separate email index
// key (exact email value, as stored) and a list key preserving insertion
// order. The email index is the
// uniqueness gate: registration claims it with an atomic Lua script, so
// two concurrent inserts for the same address resolve to one winner even
// across processes.
package redistore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	goIdentity "github.com/MrEthical07/goIdentity"
	"github.com/MrEthical07/goIdentity/role"
)

// ErrRedisUnavailable wraps transport and server failures so callers can
// distinguish infrastructure trouble from domain outcomes.
var ErrRedisUnavailable = errors.New("redis unavailable")

const defaultPrefix = "gid"

const insertScript = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
redis.call("RPUSH", KEYS[3], ARGV[1])
return 1
`

var insertLua = redis.NewScript(insertScript)

const updateRoleScript = `
local data = redis.call("GET", KEYS[1])
if not data then
  return false
end
local acc = cjson.decode(data)
acc.role = ARGV[1]
acc.updated_at = ARGV[2]
local updated = cjson.encode(acc)
redis.call("SET", KEYS[1], updated)
return updated
`

var updateRoleLua = redis.NewScript(updateRoleScript)

// Store persists accounts in Redis. It is safe for concurrent use; all
// cross-key writes go through Lua scripts so partial records are never
// observable.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a [Store] backed by the given Redis client. prefix
// namespaces all keys; pass "" for the default.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) idKey(id string) string {
	return s.prefix + ":acct:" + id
}

func (s *Store) emailKey(email string) string {
	return s.prefix + ":email:" + email
}

func (s *Store) indexKey() string {
	return s.prefix + ":acct:index"
}

// record is the wire shape of an account in Redis. Role travels as its
// canonical lowercase name.
type record struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	CredentialHash string `json:"credential_hash"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Role           string `json:"role"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func encodeAccount(acc goIdentity.Account) ([]byte, error) {
	return json.Marshal(record{
		ID:             acc.ID,
		Email:          acc.Email,
		CredentialHash: acc.CredentialHash,
		FirstName:      acc.FirstName,
		LastName:       acc.LastName,
		Role:           acc.Role.String(),
		CreatedAt:      acc.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      acc.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func decodeAccount(data []byte) (goIdentity.Account, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return goIdentity.Account{}, fmt.Errorf("decode account record: %w", err)
	}
	r, ok := role.Parse(rec.Role)
	if !ok {
		return goIdentity.Account{}, fmt.Errorf("decode account record: unknown role %q", rec.Role)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return goIdentity.Account{}, fmt.Errorf("decode account record: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	if err != nil {
		return goIdentity.Account{}, fmt.Errorf("decode account record: %w", err)
	}
	return goIdentity.Account{
		ID:             rec.ID,
		Email:          rec.Email,
		CredentialHash: rec.CredentialHash,
		FirstName:      rec.FirstName,
		LastName:       rec.LastName,
		Role:           r,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// FindByEmail resolves email through the index key and loads the record.
func (s *Store) FindByEmail(ctx context.Context, email string) (goIdentity.Account, error) {
	id, err := s.redis.Get(ctx, s.emailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return goIdentity.Account{}, goIdentity.ErrAccountNotFound
		}
		return goIdentity.Account{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return s.FindByID(ctx, id)
}

// FindByID loads the account record stored under id.
func (s *Store) FindByID(ctx context.Context, id string) (goIdentity.Account, error) {
	data, err := s.redis.Get(ctx, s.idKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return goIdentity.Account{}, goIdentity.ErrAccountNotFound
		}
		return goIdentity.Account{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return decodeAccount(data)
}

// InsertIfAbsent stores account unless its email index key already
// exists. The existence check, both SETs, and the index push run in one
// Lua script, so the winner is decided atomically on the server.
func (s *Store) InsertIfAbsent(ctx context.Context, account goIdentity.Account) (goIdentity.Account, error) {
	data, err := encodeAccount(account)
	if err != nil {
		return goIdentity.Account{}, err
	}

	inserted, err := insertLua.Run(
		ctx,
		s.redis,
		[]string{s.emailKey(account.Email), s.idKey(account.ID), s.indexKey()},
		account.ID,
		data,
	).Int64()
	if err != nil {
		return goIdentity.Account{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if inserted == 0 {
		return goIdentity.Account{}, goIdentity.ErrDuplicateEmail
	}
	return account, nil
}

// UpdateRole rewrites the role and updated_at fields of the stored record
// in a single Lua script and returns the updated account.
func (s *Store) UpdateRole(ctx context.Context, id string, newRole role.Role, updatedAt time.Time) (goIdentity.Account, error) {
	result, err := updateRoleLua.Run(
		ctx,
		s.redis,
		[]string{s.idKey(id)},
		newRole.String(),
		updatedAt.UTC().Format(time.RFC3339Nano),
	).Text()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return goIdentity.Account{}, goIdentity.ErrAccountNotFound
		}
		return goIdentity.Account{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return decodeAccount([]byte(result))
}

// ListAll walks the insertion-order index list and loads each record. Ids
// whose record has vanished are skipped rather than failing the listing.
func (s *Store) ListAll(ctx context.Context) ([]goIdentity.Account, error) {
	ids, err := s.redis.LRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []goIdentity.Account{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(ids) == 0 {
		return []goIdentity.Account{}, nil
	}

	pipe := s.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, s.idKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	out := make([]goIdentity.Account, 0, len(ids))
	for _, cmd := range cmds {
		data, cmdErr := cmd.Bytes()
		if cmdErr != nil {
			if errors.Is(cmdErr, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, cmdErr)
		}
		acc, decErr := decodeAccount(data)
		if decErr != nil {
			return nil, decErr
		}
		out = append(out, acc)
	}
	return out, nil
}

// Ping reports Redis availability and round-trip latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
