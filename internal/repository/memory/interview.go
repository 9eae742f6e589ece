package memory

import (
	"context"
	"sort"
	"time"

	"go-interview-booking/internal/domain"
)

type interviewRepo struct {
	s *Store
}

func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	defer r.s.lock()()
	st := r.s.st()

	if interview.ID == "" {
		interview.ID = r.s.newID()
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = r.s.now().UTC()
	}

	iv := *interview
	st.interviews[iv.ID] = &iv
	st.track(iv.ID)
	return nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	defer r.s.lock()()

	iv, ok := r.s.st().interviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *iv
	return &out, nil
}

func (r *interviewRepo) GetDetail(ctx context.Context, id string) (*domain.InterviewDetail, error) {
	defer r.s.lock()()
	st := r.s.st()

	iv, ok := st.interviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	detail := populate(st, iv)
	return &detail, nil
}

func (r *interviewRepo) FetchDetails(ctx context.Context, filter domain.InterviewFilter) ([]domain.InterviewDetail, error) {
	defer r.s.lock()()
	st := r.s.st()

	matched := make([]*domain.Interview, 0)
	for _, iv := range st.interviews {
		if filter.UserID != "" && iv.UserID != filter.UserID {
			continue
		}
		if filter.CompanyID != "" && iv.CompanyID != filter.CompanyID {
			continue
		}
		matched = append(matched, iv)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].InterviewDate.Equal(matched[j].InterviewDate) {
			return st.order[matched[i].ID] < st.order[matched[j].ID]
		}
		return matched[i].InterviewDate.Before(matched[j].InterviewDate)
	})

	out := make([]domain.InterviewDetail, 0, len(matched))
	for _, iv := range matched {
		out = append(out, populate(st, iv))
	}
	return out, nil
}

func (r *interviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	defer r.s.lock()()
	st := r.s.st()

	if _, ok := st.interviews[interview.ID]; !ok {
		return domain.ErrNotFound
	}
	iv := *interview
	st.interviews[iv.ID] = &iv
	return nil
}

func (r *interviewRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock()()
	st := r.s.st()

	if _, ok := st.interviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(st.interviews, id)
	delete(st.order, id)
	return nil
}

func (r *interviewRepo) DeleteByPosition(ctx context.Context, positionID string) (int64, error) {
	defer r.s.lock()()
	st := r.s.st()

	var n int64
	for id, iv := range st.interviews {
		if iv.PositionID == positionID {
			delete(st.interviews, id)
			delete(st.order, id)
			n++
		}
	}
	return n, nil
}

func (r *interviewRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	defer r.s.lock()()

	var n int64
	for _, iv := range r.s.st().interviews {
		if iv.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *interviewRepo) CountByPosition(ctx context.Context, positionID string) (int64, error) {
	defer r.s.lock()()

	var n int64
	for _, iv := range r.s.st().interviews {
		if iv.PositionID == positionID {
			n++
		}
	}
	return n, nil
}

func (r *interviewRepo) CountOutsideWindow(ctx context.Context, positionID string, start, end time.Time) (int64, error) {
	defer r.s.lock()()

	var n int64
	for _, iv := range r.s.st().interviews {
		if iv.PositionID == positionID && (iv.InterviewDate.Before(start) || iv.InterviewDate.After(end)) {
			n++
		}
	}
	return n, nil
}

func (r *interviewRepo) ExistsByCompany(ctx context.Context, companyID string) (bool, error) {
	defer r.s.lock()()

	for _, iv := range r.s.st().interviews {
		if iv.CompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}

// LockUser is a no-op: WithTx already holds the whole store
func (r *interviewRepo) LockUser(ctx context.Context, userID string) error {
	return nil
}

func populate(st *state, iv *domain.Interview) domain.InterviewDetail {
	detail := domain.InterviewDetail{
		ID:            iv.ID,
		InterviewDate: iv.InterviewDate,
		CreatedAt:     iv.CreatedAt,
	}
	if u, ok := st.users[iv.UserID]; ok {
		detail.User = &domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	} else {
		detail.User = &domain.UserSummary{ID: iv.UserID}
	}
	if c, ok := st.companies[iv.CompanyID]; ok {
		detail.Company = c.Summary()
	}
	if p, ok := st.positions[iv.PositionID]; ok {
		detail.Position = p.Summary()
	}
	return detail
}
