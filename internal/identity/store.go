package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"openmelody/internal/apperr"
)

type Store interface {
	CreateUser(ctx context.Context, username, passwordHash, fullName string) (string, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetCredentials(ctx context.Context, username string) (id, passwordHash string, err error)
}

// DBOps is the subset of pgxpool.Pool methods the store uses, so tests can
// inject pgxmock.
type DBOps interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db DBOps
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

func NewPostgresStoreWithDB(db DBOps) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash, fullName string) (string, error) {
	id := "user-" + uuid.NewString()
	var out string
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (id, username, password, fullname)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, id, username, passwordHash, fullName).Scan(&out)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", apperr.Invariant("username is already taken")
		}
		return "", err
	}
	return out, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.QueryRow(ctx, `
		SELECT id, username, fullname FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) GetCredentials(ctx context.Context, username string) (string, string, error) {
	var id, hash string
	err := s.db.QueryRow(ctx, `
		SELECT id, password FROM users WHERE username = $1
	`, username).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return "", "", err
	}
	return id, hash, nil
}
