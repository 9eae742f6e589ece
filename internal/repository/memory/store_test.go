package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-interview-booking/internal/domain"
	"go-interview-booking/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCompany(t *testing.T, s *Store, name string, tags ...string) *domain.Company {
	t.Helper()
	c := &domain.Company{Name: name, Address: "1 Main St", Website: "https://example.com", Description: "d", Tags: tags}
	require.NoError(t, s.Companies().Create(context.Background(), c))
	return c
}

func seedPosition(t *testing.T, s *Store, companyID, title string, skills ...string) *domain.Position {
	t.Helper()
	p := &domain.Position{
		CompanyID:       companyID,
		Title:           title,
		OpeningPosition: 1,
		Location:        "Bangkok",
		Skills:          skills,
		InterviewStart:  time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		InterviewEnd:    time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Positions().Create(context.Background(), p))
	return p
}

func TestStore_Companies(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns id and rejects duplicate names", func(t *testing.T) {
		s := New()
		c := seedCompany(t, s, "Acme")
		assert.NotEmpty(t, c.ID)
		assert.False(t, c.CreatedAt.IsZero())

		err := s.Companies().Create(ctx, &domain.Company{Name: "Acme"})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("fetch sorts by name", func(t *testing.T) {
		s := New()
		seedCompany(t, s, "Zeta")
		seedCompany(t, s, "Acme")
		seedCompany(t, s, "Mango")

		list, err := s.Companies().Fetch(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"Acme", "Mango", "Zeta"}, []string{list[0].Name, list[1].Name, list[2].Name})
	})

	t.Run("returned values are copies", func(t *testing.T) {
		s := New()
		c := seedCompany(t, s, "Acme", "go")

		got, err := s.Companies().GetByID(ctx, c.ID)
		require.NoError(t, err)
		got.Tags[0] = "mutated"

		again, _ := s.Companies().GetByID(ctx, c.ID)
		assert.Equal(t, "go", again.Tags[0])
	})

	t.Run("unknown and malformed ids are not found", func(t *testing.T) {
		s := New()
		_, err := s.Companies().GetByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, s.Companies().Delete(ctx, "not-an-id"), domain.ErrNotFound)
	})

	t.Run("distinct tags keep first casing", func(t *testing.T) {
		s := New()
		seedCompany(t, s, "A", "Fintech", "AI")
		seedCompany(t, s, "B", "fintech", "cloud")

		tags, err := s.Companies().DistinctTags(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"AI", "cloud", "Fintech"}, tags)
	})
}

func TestStore_Positions(t *testing.T) {
	ctx := context.Background()
	s := New()
	acme := seedCompany(t, s, "Acme")
	other := seedCompany(t, s, "Other")

	seedPosition(t, s, acme.ID, "Backend", "Go", "SQL")
	seedPosition(t, s, acme.ID, "Android", "kotlin")
	seedPosition(t, s, other.ID, "Data", "sql", "Python")

	t.Run("defaults applied on create", func(t *testing.T) {
		list, err := s.Positions().Fetch(ctx, domain.PositionFilter{CompanyID: acme.ID})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Android", list[0].Title)
		assert.Equal(t, domain.WorkOnSite, list[0].WorkArrangement)
	})

	t.Run("distinct skills", func(t *testing.T) {
		skills, err := s.Positions().DistinctSkills(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "kotlin", "Python", "SQL"}, skills)
	})

	t.Run("delete by company", func(t *testing.T) {
		n, err := s.Positions().DeleteByCompany(ctx, acme.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		list, _ := s.Positions().Fetch(ctx, domain.PositionFilter{})
		assert.Len(t, list, 1)
	})
}

func TestStore_Interviews(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Users().Create(ctx, &domain.User{ID: "u-1", Name: "Ann", Email: "ann@example.com", Role: domain.RoleUser}))
	c := seedCompany(t, s, "Acme")
	p := seedPosition(t, s, c.ID, "Backend")

	late := &domain.Interview{UserID: "u-1", CompanyID: c.ID, PositionID: p.ID, InterviewDate: p.InterviewEnd}
	early := &domain.Interview{UserID: "u-1", CompanyID: c.ID, PositionID: p.ID, InterviewDate: p.InterviewStart}
	require.NoError(t, s.Interviews().Create(ctx, late))
	require.NoError(t, s.Interviews().Create(ctx, early))

	t.Run("details are populated and sorted by date", func(t *testing.T) {
		list, err := s.Interviews().FetchDetails(ctx, domain.InterviewFilter{UserID: "u-1"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, early.ID, list[0].ID)
		assert.Equal(t, "ann@example.com", list[0].User.Email)
		assert.Equal(t, "Acme", list[0].Company.Name)
		assert.Equal(t, "Backend", list[0].Position.Title)
	})

	t.Run("counts", func(t *testing.T) {
		n, err := s.Interviews().CountByUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, _ = s.Interviews().CountByPosition(ctx, p.ID)
		assert.Equal(t, int64(2), n)

		exists, _ := s.Interviews().ExistsByCompany(ctx, c.ID)
		assert.True(t, exists)

		n, err = s.Interviews().CountOutsideWindow(ctx, p.ID, p.InterviewStart, p.InterviewEnd)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, _ = s.Interviews().CountOutsideWindow(ctx, p.ID, p.InterviewStart.Add(time.Hour), p.InterviewEnd)
		assert.Equal(t, int64(1), n)
	})

	t.Run("delete by position", func(t *testing.T) {
		n, err := s.Interviews().DeleteByPosition(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		exists, _ := s.Interviews().ExistsByCompany(ctx, c.ID)
		assert.False(t, exists)
	})
}

func TestStore_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit keeps changes", func(t *testing.T) {
		s := New()
		err := s.WithTx(ctx, func(tx domain.Store) error {
			return tx.Companies().Create(ctx, &domain.Company{Name: "Acme"})
		})
		require.NoError(t, err)

		list, _ := s.Companies().Fetch(ctx)
		assert.Len(t, list, 1)
	})

	t.Run("error rolls back every change", func(t *testing.T) {
		s := New()
		c := seedCompany(t, s, "Acme")
		seedPosition(t, s, c.ID, "Backend")

		boom := errors.New("boom")
		err := s.WithTx(ctx, func(tx domain.Store) error {
			if _, err := tx.Positions().DeleteByCompany(ctx, c.ID); err != nil {
				return err
			}
			if err := tx.Companies().Delete(ctx, c.ID); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = s.Companies().GetByID(ctx, c.ID)
		assert.NoError(t, err)
		list, _ := s.Positions().Fetch(ctx, domain.PositionFilter{CompanyID: c.ID})
		assert.Len(t, list, 1)
	})

	t.Run("cancelled context never runs fn", func(t *testing.T) {
		s := New()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		called := false
		err := s.WithTx(cctx, func(tx domain.Store) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}
