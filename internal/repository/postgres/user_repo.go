package postgres

import (
	"context"
	"time"

	"go-interview-booking/internal/domain"
)

type userRepo struct {
	db querier
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	query := `INSERT INTO users (id, name, email, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.Role, user.CreatedAt, user.UpdatedAt)
	return mapError("create user", err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, name, email, role, created_at, updated_at FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get user", err)
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `UPDATE users SET name = $2, email = $3, role = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.Role, user.UpdatedAt)
	if err != nil {
		return mapError("update user", err)
	}
	return requireRow(tag)
}
