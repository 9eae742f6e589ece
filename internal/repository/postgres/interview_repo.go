package postgres

import (
	"context"
	"time"

	"go-interview-booking/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type interviewRepo struct {
	db querier
}

const interviewColumns = `id, user_id, company_id, position_id, interview_date, created_at`

// detailQuery populates an interview with its company, position and user.
// LEFT JOINs keep the interview visible if a reference is gone.
const detailQuery = `
	SELECT
		i.id, i.interview_date, i.created_at,
		i.user_id, u.name, u.email,
		c.id, c.name, c.address, c.tel,
		p.id, p.title, p.description, p.interview_start, p.interview_end
	FROM interviews i
	LEFT JOIN users u ON u.id = i.user_id
	LEFT JOIN companies c ON c.id = i.company_id
	LEFT JOIN positions p ON p.id = i.position_id`

func scanDetail(row pgx.Row) (*domain.InterviewDetail, error) {
	var (
		d              domain.InterviewDetail
		userID         string
		userName       *string
		userEmail      *string
		companyID      *string
		companyName    *string
		companyAddress *string
		companyTel     *string
		positionID     *string
		positionTitle  *string
		positionDesc   *string
		positionStart  *time.Time
		positionEnd    *time.Time
	)
	err := row.Scan(
		&d.ID, &d.InterviewDate, &d.CreatedAt,
		&userID, &userName, &userEmail,
		&companyID, &companyName, &companyAddress, &companyTel,
		&positionID, &positionTitle, &positionDesc, &positionStart, &positionEnd,
	)
	if err != nil {
		return nil, err
	}

	d.User = &domain.UserSummary{ID: userID, Name: deref(userName), Email: deref(userEmail)}
	if companyID != nil {
		d.Company = &domain.CompanySummary{
			ID:      *companyID,
			Name:    deref(companyName),
			Address: deref(companyAddress),
			Phone:   deref(companyTel),
		}
	}
	if positionID != nil {
		d.Position = &domain.PositionSummary{
			ID:          *positionID,
			Title:       deref(positionTitle),
			Description: deref(positionDesc),
		}
		if positionStart != nil {
			d.Position.InterviewStart = *positionStart
		}
		if positionEnd != nil {
			d.Position.InterviewEnd = *positionEnd
		}
	}
	return &d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	if interview.ID == "" {
		interview.ID = uuid.NewString()
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO interviews (` + interviewColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		interview.ID, interview.UserID, interview.CompanyID, interview.PositionID,
		interview.InterviewDate, interview.CreatedAt,
	)
	return mapError("create interview", err)
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	var iv domain.Interview
	err := r.db.QueryRow(ctx, query, id).Scan(
		&iv.ID, &iv.UserID, &iv.CompanyID, &iv.PositionID, &iv.InterviewDate, &iv.CreatedAt,
	)
	if err != nil {
		return nil, mapError("get interview", err)
	}
	return &iv, nil
}

func (r *interviewRepo) GetDetail(ctx context.Context, id string) (*domain.InterviewDetail, error) {
	d, err := scanDetail(r.db.QueryRow(ctx, detailQuery+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, mapError("get interview detail", err)
	}
	return d, nil
}

func (r *interviewRepo) FetchDetails(ctx context.Context, filter domain.InterviewFilter) ([]domain.InterviewDetail, error) {
	query := detailQuery + `
	WHERE ($1 = '' OR i.user_id = $1) AND ($2 = '' OR i.company_id = $2)
	ORDER BY i.interview_date, i.created_at, i.id`

	rows, err := r.db.Query(ctx, query, filter.UserID, filter.CompanyID)
	if err != nil {
		return nil, mapError("fetch interviews", err)
	}
	defer rows.Close()

	details := make([]domain.InterviewDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, mapError("scan interview", err)
		}
		details = append(details, *d)
	}
	return details, mapError("fetch interviews", rows.Err())
}

func (r *interviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	query := `UPDATE interviews SET position_id = $2, interview_date = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, interview.ID, interview.PositionID, interview.InterviewDate)
	if err != nil {
		return mapError("update interview", err)
	}
	return requireRow(tag)
}

func (r *interviewRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return mapError("delete interview", err)
	}
	return requireRow(tag)
}

func (r *interviewRepo) DeleteByPosition(ctx context.Context, positionID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM interviews WHERE position_id = $1`, positionID)
	if err != nil {
		return 0, mapError("delete interviews by position", err)
	}
	return tag.RowsAffected(), nil
}

func (r *interviewRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interviews WHERE user_id = $1`, userID).Scan(&n)
	return n, mapError("count interviews by user", err)
}

func (r *interviewRepo) CountByPosition(ctx context.Context, positionID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interviews WHERE position_id = $1`, positionID).Scan(&n)
	return n, mapError("count interviews by position", err)
}

func (r *interviewRepo) CountOutsideWindow(ctx context.Context, positionID string, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM interviews
		WHERE position_id = $1 AND (interview_date < $2 OR interview_date > $3)`,
		positionID, start, end,
	).Scan(&n)
	return n, mapError("count interviews outside window", err)
}

func (r *interviewRepo) ExistsByCompany(ctx context.Context, companyID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM interviews WHERE company_id = $1)`, companyID).Scan(&exists)
	return exists, mapError("interviews exist for company", err)
}

// LockUser takes a transaction scoped advisory lock keyed on the user id.
// Outside a transaction it is released immediately and serializes nothing.
func (r *interviewRepo) LockUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID)
	return mapError("lock user", err)
}
