package usecase

import (
	"context"
	"errors"

	"go-interview-booking/internal/domain"
	"go-interview-booking/pkg/apperror"

	"go.uber.org/zap"
)

type authUsecase struct {
	store  domain.Store
	logger *zap.Logger
}

func NewAuthUsecase(store domain.Store, logger *zap.Logger) domain.AuthUsecase {
	return &authUsecase{store: store, logger: logger.Named("auth")}
}

// EnsureUserExists creates the local user on first sight and afterwards keeps
// name, email and role in sync with the verified claims.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) (*domain.User, error) {
	users := u.store.Users()

	existing, err := users.GetByID(ctx, user.ID)
	if err == nil {
		if !syncUser(existing, user) {
			return existing, nil
		}
		if err := users.Update(ctx, existing); err != nil {
			return nil, storeErr(err, "")
		}
		u.logger.Info("user synced from token", zap.String("user_id", existing.ID), zap.String("role", existing.Role))
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, storeErr(err, "")
	}

	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if err := users.Create(ctx, user); err != nil {
		// a concurrent request created the same user first
		if apperror.Is(err, apperror.KindValidation) {
			again, getErr := users.GetByID(ctx, user.ID)
			if getErr == nil {
				return again, nil
			}
		}
		return nil, storeErr(err, "")
	}
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	return user, nil
}

// syncUser copies changed claim values onto existing and reports whether anything changed
func syncUser(existing, claims *domain.User) bool {
	changed := false
	if claims.Name != "" && existing.Name != claims.Name {
		existing.Name = claims.Name
		changed = true
	}
	if claims.Email != "" && existing.Email != claims.Email {
		existing.Email = claims.Email
		changed = true
	}
	if claims.Role != "" && existing.Role != claims.Role {
		existing.Role = claims.Role
		changed = true
	}
	return changed
}
