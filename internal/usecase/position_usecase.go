package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-interview-booking/internal/domain"
	"go-interview-booking/pkg/apperror"
	"go-interview-booking/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type positionUsecase struct {
	store    domain.Store
	validate *validator.Validate
	logger   *zap.Logger
	metrics  *metrics.Metrics
	skills   singleflight.Group
}

func NewPositionUsecase(store domain.Store, validate *validator.Validate, logger *zap.Logger, m *metrics.Metrics) domain.PositionUsecase {
	return &positionUsecase{
		store:    store,
		validate: validate,
		logger:   logger.Named("position"),
		metrics:  m,
	}
}

func positionNotFound(id string) string {
	return fmt.Sprintf("No position with the ID of %s", id)
}

func (u *positionUsecase) ListPositions(ctx context.Context, filter domain.PositionFilter) ([]domain.PositionWithCompany, error) {
	positions, err := u.store.Positions().Fetch(ctx, filter)
	if err != nil {
		return nil, storeErr(err, "")
	}

	// one lookup per distinct company
	companies := make(map[string]*domain.CompanySummary)
	out := make([]domain.PositionWithCompany, 0, len(positions))
	for _, p := range positions {
		summary, ok := companies[p.CompanyID]
		if !ok {
			summary, err = u.companySummary(ctx, p.CompanyID)
			if err != nil {
				return nil, err
			}
			companies[p.CompanyID] = summary
		}
		out = append(out, domain.PositionWithCompany{Position: p, Company: summary})
	}
	return out, nil
}

func (u *positionUsecase) GetPosition(ctx context.Context, id string) (*domain.PositionWithCompany, error) {
	position, err := u.store.Positions().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, positionNotFound(id))
	}

	summary, err := u.companySummary(ctx, position.CompanyID)
	if err != nil {
		return nil, err
	}
	return &domain.PositionWithCompany{Position: *position, Company: summary}, nil
}

// companySummary returns nil for a company that no longer exists
func (u *positionUsecase) companySummary(ctx context.Context, companyID string) (*domain.CompanySummary, error) {
	company, err := u.store.Companies().GetByID(ctx, companyID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err, "")
	}
	return company.Summary(), nil
}

func (u *positionUsecase) CreatePosition(ctx context.Context, p domain.Principal, companyID string, position *domain.Position) error {
	if err := domain.Authorize(domain.OpCreate, domain.KindPosition, p, ""); err != nil {
		return err
	}

	if _, err := u.store.Companies().GetByID(ctx, companyID); err != nil {
		return storeErr(err, fmt.Sprintf("No company with the ID of %s", companyID))
	}

	position.ID = ""
	position.CompanyID = companyID
	position.ApplyDefaults()
	if err := validateEntity(u.validate, position); err != nil {
		return err
	}

	if err := u.store.Positions().Create(ctx, position); err != nil {
		return storeErr(err, "")
	}
	u.logger.Info("position created", zap.String("position_id", position.ID), zap.String("company_id", companyID))
	return nil
}

func (u *positionUsecase) UpdatePosition(ctx context.Context, p domain.Principal, id string, update *domain.PositionUpdate) (*domain.Position, error) {
	if err := domain.Authorize(domain.OpUpdate, domain.KindPosition, p, ""); err != nil {
		return nil, err
	}

	var position *domain.Position
	err := u.store.WithTx(ctx, func(tx domain.Store) error {
		var err error
		position, err = tx.Positions().GetByID(ctx, id)
		if err != nil {
			return storeErr(err, positionNotFound(id))
		}

		start, end := position.InterviewStart, position.InterviewEnd
		update.Apply(position)
		position.ApplyDefaults()
		if err := validateEntity(u.validate, position); err != nil {
			return err
		}

		// booked interviews must stay inside a moved window
		if !position.InterviewStart.Equal(start) || !position.InterviewEnd.Equal(end) {
			outside, err := tx.Interviews().CountOutsideWindow(ctx, id, position.InterviewStart, position.InterviewEnd)
			if err != nil {
				return storeErr(err, "")
			}
			if outside > 0 {
				return apperror.HasDependents(fmt.Sprintf(
					"Cannot change the interview dates. %d booked interviews fall outside the new dates.", outside))
			}
		}

		return storeErr(tx.Positions().Update(ctx, position), positionNotFound(id))
	})
	if err != nil {
		return nil, err
	}
	return position, nil
}

// DeletePosition refuses while interviews reference the position. Dependents
// are removed before the position inside the same transaction.
func (u *positionUsecase) DeletePosition(ctx context.Context, p domain.Principal, id string) error {
	if err := domain.Authorize(domain.OpDelete, domain.KindPosition, p, ""); err != nil {
		return err
	}

	return u.store.WithTx(ctx, func(tx domain.Store) error {
		if _, err := tx.Positions().GetByID(ctx, id); err != nil {
			return storeErr(err, positionNotFound(id))
		}

		count, err := tx.Interviews().CountByPosition(ctx, id)
		if err != nil {
			return storeErr(err, "")
		}
		if count > 0 {
			u.metrics.Blocked(string(domain.KindPosition))
			return apperror.HasDependents("Cannot delete position. There are active interviews associated with this position.")
		}

		if _, err := tx.Interviews().DeleteByPosition(ctx, id); err != nil {
			return storeErr(err, "")
		}
		return storeErr(tx.Positions().Delete(ctx, id), positionNotFound(id))
	})
}

func (u *positionUsecase) ListSkills(ctx context.Context) ([]string, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := u.skills.Do("skills", func() (interface{}, error) {
		return u.store.Positions().DistinctSkills(shared)
	})
	if err != nil {
		return nil, storeErr(err, "")
	}
	return v.([]string), nil
}
