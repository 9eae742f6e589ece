package memory

import (
	"context"
	"sort"

	"go-interview-booking/internal/domain"
)

type positionRepo struct {
	s *Store
}

func (r *positionRepo) Create(ctx context.Context, position *domain.Position) error {
	defer r.s.lock()()
	st := r.s.st()

	if position.ID == "" {
		position.ID = r.s.newID()
	}
	if position.CreatedAt.IsZero() {
		position.CreatedAt = r.s.now().UTC()
	}
	position.ApplyDefaults()

	st.positions[position.ID] = clonePosition(position)
	st.track(position.ID)
	return nil
}

func (r *positionRepo) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	defer r.s.lock()()

	p, ok := r.s.st().positions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePosition(p), nil
}

func (r *positionRepo) Fetch(ctx context.Context, filter domain.PositionFilter) ([]domain.Position, error) {
	defer r.s.lock()()

	out := make([]domain.Position, 0)
	for _, p := range r.s.st().positions {
		if filter.CompanyID != "" && p.CompanyID != filter.CompanyID {
			continue
		}
		out = append(out, *clonePosition(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title == out[j].Title {
			return out[i].ID < out[j].ID
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (r *positionRepo) Update(ctx context.Context, position *domain.Position) error {
	defer r.s.lock()()
	st := r.s.st()

	if _, ok := st.positions[position.ID]; !ok {
		return domain.ErrNotFound
	}
	st.positions[position.ID] = clonePosition(position)
	return nil
}

func (r *positionRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock()()
	st := r.s.st()

	if _, ok := st.positions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(st.positions, id)
	delete(st.order, id)
	return nil
}

func (r *positionRepo) DeleteByCompany(ctx context.Context, companyID string) (int64, error) {
	defer r.s.lock()()
	st := r.s.st()

	var n int64
	for id, p := range st.positions {
		if p.CompanyID == companyID {
			delete(st.positions, id)
			delete(st.order, id)
			n++
		}
	}
	return n, nil
}

func (r *positionRepo) DistinctSkills(ctx context.Context) ([]string, error) {
	defer r.s.lock()()
	st := r.s.st()

	positions := make([]*domain.Position, 0, len(st.positions))
	for _, p := range st.positions {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		return st.order[positions[i].ID] < st.order[positions[j].ID]
	})

	var skills []string
	for _, p := range positions {
		skills = append(skills, p.Skills...)
	}
	return domain.DistinctFold(skills), nil
}
