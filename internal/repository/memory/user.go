package memory

import (
	"context"

	"go-interview-booking/internal/domain"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	defer r.s.lock()()
	st := r.s.st()

	if _, ok := st.users[user.ID]; ok {
		return domain.DuplicateField("_id")
	}

	now := r.s.now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	u := *user
	st.users[u.ID] = &u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.s.lock()()

	u, ok := r.s.st().users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	defer r.s.lock()()
	st := r.s.st()

	if _, ok := st.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	user.UpdatedAt = r.s.now().UTC()
	u := *user
	st.users[u.ID] = &u
	return nil
}
