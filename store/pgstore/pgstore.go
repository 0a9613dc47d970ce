// Package pgstore implements the goIdentity store contract on PostgreSQL
// through database/sql with the pgx driver. Email uniqueness is enforced
// by a unique constraint on the email column, so the insert-if-absent
// contract holds across processes without application-level locking.
// Schema setup runs through embedded goose migrations.
package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	goIdentity "github.com/MrEthical07/goIdentity"
	"github.com/MrEthical07/goIdentity/role"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists accounts in PostgreSQL. It is safe for concurrent use;
// the underlying *sql.DB pools connections.
type Store struct {
	db *sql.DB
}

// Open connects to the database at dsn, verifies the connection, and
// applies pending migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing connection pool without running migrations.
// The accounts schema must already be in place.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const accountColumns = "id, email, credential_hash, first_name, last_name, role, created_at, updated_at"

func scanAccount(row *sql.Row) (goIdentity.Account, error) {
	var acc goIdentity.Account
	var roleName string
	err := row.Scan(
		&acc.ID, &acc.Email, &acc.CredentialHash,
		&acc.FirstName, &acc.LastName, &roleName,
		&acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return goIdentity.Account{}, err
	}
	r, ok := role.Parse(roleName)
	if !ok {
		return goIdentity.Account{}, fmt.Errorf("stored account has unknown role %q", roleName)
	}
	acc.Role = r
	return acc, nil
}

// FindByEmail returns the account registered under exactly email.
func (s *Store) FindByEmail(ctx context.Context, email string) (goIdentity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goIdentity.Account{}, goIdentity.ErrAccountNotFound
		}
		return goIdentity.Account{}, fmt.Errorf("db error: %w", err)
	}
	return acc, nil
}

// FindByID returns the account with the given id.
func (s *Store) FindByID(ctx context.Context, id string) (goIdentity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goIdentity.Account{}, goIdentity.ErrAccountNotFound
		}
		return goIdentity.Account{}, fmt.Errorf("db error: %w", err)
	}
	return acc, nil
}

// InsertIfAbsent inserts account unless its email is already taken. The
// unique constraint on email decides the winner inside the database, so
// concurrent inserts for the same address cannot both succeed.
func (s *Store) InsertIfAbsent(ctx context.Context, account goIdentity.Account) (goIdentity.Account, error) {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`

	var id string
	err := s.db.QueryRowContext(ctx, query,
		account.ID, account.Email, account.CredentialHash,
		account.FirstName, account.LastName, account.Role.String(),
		account.CreatedAt, account.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goIdentity.Account{}, goIdentity.ErrDuplicateEmail
		}
		return goIdentity.Account{}, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// UpdateRole sets the role of the account with the given id and returns
// the updated record.
func (s *Store) UpdateRole(ctx context.Context, id string, newRole role.Role, updatedAt time.Time) (goIdentity.Account, error) {
	query := `
		UPDATE accounts SET role = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + accountColumns

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, id, newRole.String(), updatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goIdentity.Account{}, goIdentity.ErrAccountNotFound
		}
		return goIdentity.Account{}, fmt.Errorf("db error: %w", err)
	}
	return acc, nil
}

// ListAll returns every account in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]goIdentity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []goIdentity.Account
	for rows.Next() {
		var acc goIdentity.Account
		var roleName string
		err := rows.Scan(
			&acc.ID, &acc.Email, &acc.CredentialHash,
			&acc.FirstName, &acc.LastName, &roleName,
			&acc.CreatedAt, &acc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		r, ok := role.Parse(roleName)
		if !ok {
			return nil, fmt.Errorf("stored account has unknown role %q", roleName)
		}
		acc.Role = r
		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
