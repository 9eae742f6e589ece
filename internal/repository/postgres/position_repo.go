package postgres

import (
	"context"
	"time"

	"go-interview-booking/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type positionRepo struct {
	db querier
}

const positionColumns = `id, company_id, title, description, responsibilities, requirements, skills,
    opening_position, salary_min, salary_max, work_arrangement, location,
    interview_start, interview_end, created_at`

func scanPosition(row pgx.Row) (*domain.Position, error) {
	var p domain.Position
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.Description,
		pq.Array(&p.Responsibilities), pq.Array(&p.Requirements), pq.Array(&p.Skills),
		&p.OpeningPosition, &p.Salary.Min, &p.Salary.Max, &p.WorkArrangement, &p.Location,
		&p.InterviewStart, &p.InterviewEnd, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ApplyDefaults()
	return &p, nil
}

func (r *positionRepo) Create(ctx context.Context, position *domain.Position) error {
	if position.ID == "" {
		position.ID = uuid.NewString()
	}
	if position.CreatedAt.IsZero() {
		position.CreatedAt = time.Now().UTC()
	}
	position.ApplyDefaults()

	query := `INSERT INTO positions (` + positionColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		position.ID, position.CompanyID, position.Title, position.Description,
		pq.Array(position.Responsibilities), pq.Array(position.Requirements), pq.Array(position.Skills),
		position.OpeningPosition, position.Salary.Min, position.Salary.Max, position.WorkArrangement, position.Location,
		position.InterviewStart, position.InterviewEnd, position.CreatedAt,
	)
	return mapError("create position", err)
}

func (r *positionRepo) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = $1`
	p, err := scanPosition(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("get position", err)
	}
	return p, nil
}

func (r *positionRepo) Fetch(ctx context.Context, filter domain.PositionFilter) ([]domain.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions
              WHERE ($1 = '' OR company_id = $1)
              ORDER BY title, id`

	rows, err := r.db.Query(ctx, query, filter.CompanyID)
	if err != nil {
		return nil, mapError("fetch positions", err)
	}
	defer rows.Close()

	positions := make([]domain.Position, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, mapError("scan position", err)
		}
		positions = append(positions, *p)
	}
	return positions, mapError("fetch positions", rows.Err())
}

func (r *positionRepo) Update(ctx context.Context, position *domain.Position) error {
	query := `UPDATE positions SET title = $2, description = $3, responsibilities = $4, requirements = $5,
              skills = $6, opening_position = $7, salary_min = $8, salary_max = $9, work_arrangement = $10,
              location = $11, interview_start = $12, interview_end = $13
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		position.ID, position.Title, position.Description,
		pq.Array(position.Responsibilities), pq.Array(position.Requirements), pq.Array(position.Skills),
		position.OpeningPosition, position.Salary.Min, position.Salary.Max, position.WorkArrangement,
		position.Location, position.InterviewStart, position.InterviewEnd,
	)
	if err != nil {
		return mapError("update position", err)
	}
	return requireRow(tag)
}

func (r *positionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return mapError("delete position", err)
	}
	return requireRow(tag)
}

func (r *positionRepo) DeleteByCompany(ctx context.Context, companyID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM positions WHERE company_id = $1`, companyID)
	if err != nil {
		return 0, mapError("delete positions by company", err)
	}
	return tag.RowsAffected(), nil
}

func (r *positionRepo) DistinctSkills(ctx context.Context) ([]string, error) {
	query := `SELECT s.skill
              FROM positions p, unnest(p.skills) WITH ORDINALITY AS s(skill, ord)
              ORDER BY p.created_at, p.id, s.ord`
	values, err := collectStrings(ctx, r.db, query)
	if err != nil {
		return nil, mapError("distinct skills", err)
	}
	return domain.DistinctFold(values), nil
}
