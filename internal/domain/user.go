package domain

import (
	"context"
	"time"
)

// Roles a principal can hold
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one the store accepts
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User is the local record of an authenticated account, synced from token claims
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the subset of user fields embedded into interview listings
type UserSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type AuthUsecase interface {
	// EnsureUserExists creates or syncs the local user and returns the stored record
	EnsureUserExists(ctx context.Context, user *User) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
