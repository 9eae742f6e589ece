package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-interview-booking/internal/domain"
	"go-interview-booking/internal/repository/memory"
	"go-interview-booking/internal/usecase"
	"go-interview-booking/pkg/validation"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	admin = domain.Principal{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
	ann   = domain.Principal{ID: "user-ann", Email: "ann@example.com", Role: domain.RoleUser}
	bob   = domain.Principal{ID: "user-bob", Email: "bob@example.com", Role: domain.RoleUser}

	// day is the reference day of the booking window tests
	day = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	store      *memory.Store
	companies  domain.CompanyUsecase
	positions  domain.PositionUsecase
	interviews domain.InterviewUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	logger := zaptest.NewLogger(t)
	validate := validation.New()

	for _, p := range []domain.Principal{admin, ann, bob} {
		require.NoError(t, store.Users().Create(context.Background(), &domain.User{
			ID: p.ID, Email: p.Email, Name: p.Email, Role: p.Role,
		}))
	}

	return &fixture{
		store:      store,
		companies:  usecase.NewCompanyUsecase(store, validate, logger, nil),
		positions:  usecase.NewPositionUsecase(store, validate, logger, nil),
		interviews: usecase.NewInterviewUsecase(store, validate, logger, nil, nil, domain.DefaultInterviewQuota),
	}
}

func validCompany(name string) *domain.Company {
	return &domain.Company{
		Name:        name,
		Address:     "99 Rama IV Rd",
		Website:     "https://www.example.com",
		Description: "Software house",
		Phone:       "02-000-0000",
		Tags:        []string{"Software"},
	}
}

// validPosition has the booking window [day+1, day+4]
func validPosition(title string) *domain.Position {
	return &domain.Position{
		Title:           title,
		Description:     "Build things",
		Skills:          []string{"Go"},
		OpeningPosition: 2,
		Salary:          domain.Salary{Min: 30000, Max: 50000},
		Location:        "Bangkok",
		InterviewStart:  day.AddDate(0, 0, 1),
		InterviewEnd:    day.AddDate(0, 0, 4),
	}
}

func (f *fixture) company(t *testing.T, name string) *domain.Company {
	t.Helper()
	c := validCompany(name)
	require.NoError(t, f.companies.CreateCompany(context.Background(), admin, c))
	return c
}

func (f *fixture) position(t *testing.T, companyID, title string) *domain.Position {
	t.Helper()
	p := validPosition(title)
	require.NoError(t, f.positions.CreatePosition(context.Background(), admin, companyID, p))
	return p
}

func (f *fixture) book(t *testing.T, p domain.Principal, pos *domain.Position, date time.Time) *domain.Interview {
	t.Helper()
	iv, err := f.interviews.Book(context.Background(), p, domain.BookingRequest{
		CompanyID: pos.CompanyID, PositionID: pos.ID, InterviewDate: date,
	})
	require.NoError(t, err)
	return iv
}
