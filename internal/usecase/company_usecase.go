package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-interview-booking/internal/domain"
	"go-interview-booking/pkg/apperror"
	"go-interview-booking/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type companyUsecase struct {
	store    domain.Store
	validate *validator.Validate
	logger   *zap.Logger
	metrics  *metrics.Metrics
	// coalesces concurrent tag aggregations; results are never kept
	tags singleflight.Group
}

func NewCompanyUsecase(store domain.Store, validate *validator.Validate, logger *zap.Logger, m *metrics.Metrics) domain.CompanyUsecase {
	return &companyUsecase{
		store:    store,
		validate: validate,
		logger:   logger.Named("company"),
		metrics:  m,
	}
}

func companyNotFound(id string) string {
	return fmt.Sprintf("Company not found with id of %s", id)
}

func (u *companyUsecase) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := u.store.Companies().Fetch(ctx)
	if err != nil {
		return nil, storeErr(err, "")
	}
	return companies, nil
}

func (u *companyUsecase) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	company, err := u.store.Companies().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, companyNotFound(id))
	}
	return company, nil
}

func (u *companyUsecase) CreateCompany(ctx context.Context, p domain.Principal, company *domain.Company) error {
	if err := domain.Authorize(domain.OpCreate, domain.KindCompany, p, ""); err != nil {
		return err
	}

	company.ID = ""
	company.Name = strings.TrimSpace(company.Name)
	if err := validateEntity(u.validate, company); err != nil {
		return err
	}

	if err := u.store.Companies().Create(ctx, company); err != nil {
		return storeErr(err, "")
	}
	u.logger.Info("company created", zap.String("company_id", company.ID), zap.String("name", company.Name))
	return nil
}

func (u *companyUsecase) UpdateCompany(ctx context.Context, p domain.Principal, id string, update *domain.CompanyUpdate) (*domain.Company, error) {
	if err := domain.Authorize(domain.OpUpdate, domain.KindCompany, p, ""); err != nil {
		return nil, err
	}

	company, err := u.store.Companies().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, companyNotFound(id))
	}

	update.Apply(company)
	company.Name = strings.TrimSpace(company.Name)
	if err := validateEntity(u.validate, company); err != nil {
		return nil, err
	}

	if err := u.store.Companies().Update(ctx, company); err != nil {
		return nil, storeErr(err, companyNotFound(id))
	}
	return company, nil
}

// DeleteCompany removes the company and its positions. It refuses while any
// interview still references the company and then changes nothing.
func (u *companyUsecase) DeleteCompany(ctx context.Context, p domain.Principal, id string) error {
	if err := domain.Authorize(domain.OpDelete, domain.KindCompany, p, ""); err != nil {
		return err
	}

	var removedPositions int64
	err := u.store.WithTx(ctx, func(tx domain.Store) error {
		if _, err := tx.Companies().GetByID(ctx, id); err != nil {
			return storeErr(err, companyNotFound(id))
		}

		hasInterviews, err := tx.Interviews().ExistsByCompany(ctx, id)
		if err != nil {
			return storeErr(err, "")
		}
		if hasInterviews {
			u.metrics.Blocked(string(domain.KindCompany))
			return apperror.HasDependents("Cannot delete company. There are active interviews associated with this company.")
		}

		removedPositions, err = tx.Positions().DeleteByCompany(ctx, id)
		if err != nil {
			return storeErr(err, "")
		}
		return storeErr(tx.Companies().Delete(ctx, id), companyNotFound(id))
	})
	if err != nil {
		return err
	}

	u.logger.Info("company deleted", zap.String("company_id", id), zap.Int64("positions_removed", removedPositions))
	return nil
}

func (u *companyUsecase) ListTags(ctx context.Context) ([]string, error) {
	// shared by every waiting caller, so one caller's cancel must not end it
	shared := context.WithoutCancel(ctx)
	v, err, _ := u.tags.Do("tags", func() (interface{}, error) {
		return u.store.Companies().DistinctTags(shared)
	})
	if err != nil {
		return nil, storeErr(err, "")
	}
	return v.([]string), nil
}
