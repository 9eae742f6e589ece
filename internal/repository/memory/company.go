package memory

import (
	"context"
	"sort"

	"go-interview-booking/internal/domain"
)

type companyRepo struct {
	s *Store
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	defer r.s.lock()()
	st := r.s.st()

	if nameTaken(st, company.Name, "") {
		return domain.DuplicateField("name")
	}

	if company.ID == "" {
		company.ID = r.s.newID()
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = r.s.now().UTC()
	}
	company.Tags = cloneStrings(company.Tags)

	st.companies[company.ID] = cloneCompany(company)
	st.track(company.ID)
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	defer r.s.lock()()

	c, ok := r.s.st().companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneCompany(c), nil
}

func (r *companyRepo) Fetch(ctx context.Context) ([]domain.Company, error) {
	defer r.s.lock()()

	out := make([]domain.Company, 0, len(r.s.st().companies))
	for _, c := range r.s.st().companies {
		out = append(out, *cloneCompany(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	defer r.s.lock()()
	st := r.s.st()

	if _, ok := st.companies[company.ID]; !ok {
		return domain.ErrNotFound
	}
	if nameTaken(st, company.Name, company.ID) {
		return domain.DuplicateField("name")
	}
	st.companies[company.ID] = cloneCompany(company)
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock()()
	st := r.s.st()

	if _, ok := st.companies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(st.companies, id)
	delete(st.order, id)
	return nil
}

func (r *companyRepo) DistinctTags(ctx context.Context) ([]string, error) {
	defer r.s.lock()()
	st := r.s.st()

	companies := make([]*domain.Company, 0, len(st.companies))
	for _, c := range st.companies {
		companies = append(companies, c)
	}
	sort.Slice(companies, func(i, j int) bool {
		return st.order[companies[i].ID] < st.order[companies[j].ID]
	})

	var tags []string
	for _, c := range companies {
		tags = append(tags, c.Tags...)
	}
	return domain.DistinctFold(tags), nil
}

func nameTaken(st *state, name, exceptID string) bool {
	for id, c := range st.companies {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}
