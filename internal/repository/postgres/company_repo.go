package postgres

import (
	"context"
	"time"

	"go-interview-booking/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type companyRepo struct {
	db querier
}

const companyColumns = `id, name, address, website, description, tel, tags, logo, company_size, overview, founded_year, created_at`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.Website, &c.Description, &c.Phone,
		pq.Array(&c.Tags), &c.Logo, &c.CompanySize, &c.Overview, &c.FoundedYear, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now().UTC()
	}
	if company.Tags == nil {
		company.Tags = []string{}
	}

	query := `INSERT INTO companies (` + companyColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.Address, company.Website, company.Description, company.Phone,
		pq.Array(company.Tags), company.Logo, company.CompanySize, company.Overview, company.FoundedYear, company.CreatedAt,
	)
	return mapError("create company", err)
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("get company", err)
	}
	return c, nil
}

func (r *companyRepo) Fetch(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("fetch companies", err)
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, mapError("scan company", err)
		}
		companies = append(companies, *c)
	}
	return companies, mapError("fetch companies", rows.Err())
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	query := `UPDATE companies SET name = $2, address = $3, website = $4, description = $5, tel = $6,
              tags = $7, logo = $8, company_size = $9, overview = $10, founded_year = $11
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.Address, company.Website, company.Description, company.Phone,
		pq.Array(company.Tags), company.Logo, company.CompanySize, company.Overview, company.FoundedYear,
	)
	if err != nil {
		return mapError("update company", err)
	}
	return requireRow(tag)
}

func (r *companyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return mapError("delete company", err)
	}
	return requireRow(tag)
}

// DistinctTags reads every tag in company creation order; folding happens in Go
func (r *companyRepo) DistinctTags(ctx context.Context) ([]string, error) {
	query := `SELECT t.tag
              FROM companies c, unnest(c.tags) WITH ORDINALITY AS t(tag, ord)
              ORDER BY c.created_at, c.id, t.ord`
	values, err := collectStrings(ctx, r.db, query)
	if err != nil {
		return nil, mapError("distinct tags", err)
	}
	return domain.DistinctFold(values), nil
}

func collectStrings(ctx context.Context, db querier, query string, args ...any) ([]string, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
