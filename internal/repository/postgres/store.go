package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go-interview-booking/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

//go:embed schema.sql
var schema string

// querier is the subset shared by the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the Postgres entity store. Outside WithTx every call runs on the pool.
type Store struct {
	pool *pgxpool.Pool
	db   querier
	inTx bool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// Migrate creates the tables when they do not exist yet
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (s *Store) Companies() domain.CompanyRepository    { return &companyRepo{db: s.db} }
func (s *Store) Positions() domain.PositionRepository   { return &positionRepo{db: s.db} }
func (s *Store) Interviews() domain.InterviewRepository { return &interviewRepo{db: s.db} }
func (s *Store) Users() domain.UserRepository           { return &userRepo{db: s.db} }

func (s *Store) WithTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Store{pool: s.pool, db: tx, inTx: true}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// mapError turns driver errors into domain errors. Anything unknown is wrapped with op.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.DuplicateField(uniqueField(pgErr.ConstraintName))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func uniqueField(constraint string) string {
	switch constraint {
	case "companies_name_key":
		return "name"
	default:
		return "_id"
	}
}

// requireRow reports ErrNotFound when a write touched nothing
func requireRow(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
