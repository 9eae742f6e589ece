package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go-interview-booking/internal/domain"
	"go-interview-booking/pkg/apperror"
	"go-interview-booking/pkg/events"
	"go-interview-booking/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Interview lifecycle events
const (
	EventInterviewBooked      = "interview_booked"
	EventInterviewRescheduled = "interview_rescheduled"
	EventInterviewCancelled   = "interview_cancelled"
)

// isoMillis is the timestamp layout used in booking window messages
const isoMillis = "2006-01-02T15:04:05.000Z"

type interviewUsecase struct {
	store     domain.Store
	validate  *validator.Validate
	logger    *zap.Logger
	metrics   *metrics.Metrics
	publisher events.Publisher
	quota     int
	now       func() time.Time
}

func NewInterviewUsecase(
	store domain.Store,
	validate *validator.Validate,
	logger *zap.Logger,
	m *metrics.Metrics,
	publisher events.Publisher,
	quota int,
) domain.InterviewUsecase {
	if quota <= 0 {
		quota = domain.DefaultInterviewQuota
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &interviewUsecase{
		store:     store,
		validate:  validate,
		logger:    logger.Named("interview"),
		metrics:   m,
		publisher: publisher,
		quota:     quota,
		now:       time.Now,
	}
}

func interviewNotFound(id string) string {
	return fmt.Sprintf("No interview with the id of %s", id)
}

// Book validates and stores a booking. Checks run in a fixed order and the
// first failure wins: company, date present, position ownership, window, quota. The quota
// check and the insert share a transaction holding the per-user lock.
func (u *interviewUsecase) Book(ctx context.Context, p domain.Principal, req domain.BookingRequest) (*domain.Interview, error) {
	if err := domain.Authorize(domain.OpCreate, domain.KindInterview, p, ""); err != nil {
		return nil, err
	}

	interview := &domain.Interview{
		UserID:        p.ID,
		CompanyID:     req.CompanyID,
		PositionID:    req.PositionID,
		InterviewDate: req.InterviewDate.UTC(),
	}

	err := u.store.WithTx(ctx, func(tx domain.Store) error {
		if _, err := tx.Companies().GetByID(ctx, req.CompanyID); err != nil {
			return storeErr(err, fmt.Sprintf("No company with the id of %s", req.CompanyID))
		}

		// a missing date is a bad request, not a date outside the window
		if interview.InterviewDate.IsZero() {
			return validateEntity(u.validate, interview)
		}

		if _, err := u.positionForCompany(ctx, tx, req.PositionID, req.CompanyID, req.InterviewDate); err != nil {
			return err
		}

		if err := tx.Interviews().LockUser(ctx, p.ID); err != nil {
			return storeErr(err, "")
		}
		if !p.IsAdmin() {
			held, err := tx.Interviews().CountByUser(ctx, p.ID)
			if err != nil {
				return storeErr(err, "")
			}
			if held >= int64(u.quota) {
				return apperror.QuotaExceeded(fmt.Sprintf("User %s has already made %d interviews", p.Email, u.quota))
			}
		}

		return storeErr(tx.Interviews().Create(ctx, interview), "")
	})
	if err != nil {
		u.metrics.Booking(string(apperror.KindOf(err)))
		return nil, err
	}

	u.metrics.Booking("booked")
	u.publisher.Publish(EventInterviewBooked, interview.ID, interview)
	u.logger.Info("interview booked",
		zap.String("interview_id", interview.ID),
		zap.String("user_id", p.ID),
		zap.String("position_id", interview.PositionID),
	)
	return interview, nil
}

// positionForCompany loads the position and checks that it belongs to the
// company and that date lies inside its booking window
func (u *interviewUsecase) positionForCompany(ctx context.Context, tx domain.Store, positionID, companyID string, date time.Time) (*domain.Position, error) {
	position, err := tx.Positions().GetByID(ctx, positionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, storeErr(err, "")
	}
	if err != nil || position.CompanyID != companyID {
		return nil, apperror.InvalidReference("Invalid position or it does not belong to the company")
	}

	if !position.InWindow(date) {
		return nil, apperror.OutOfWindow(fmt.Sprintf("Interview date must be between %s and %s",
			position.InterviewStart.UTC().Format(isoMillis),
			position.InterviewEnd.UTC().Format(isoMillis),
		))
	}
	return position, nil
}

// ListInterviews returns the interviews visible to p: their own for users,
// all or one company's for admins. Sorted by interview date.
func (u *interviewUsecase) ListInterviews(ctx context.Context, p domain.Principal, companyID string) ([]domain.InterviewDetail, error) {
	// listing is scoped, not denied, so the caller is checked as owner of their own scope
	if err := domain.Authorize(domain.OpRead, domain.KindInterview, p, p.ID); err != nil {
		return nil, err
	}

	interviews, err := u.store.Interviews().FetchDetails(ctx, domain.InterviewScope(p, companyID))
	if err != nil {
		return nil, storeErr(err, "")
	}
	return interviews, nil
}

func (u *interviewUsecase) GetInterview(ctx context.Context, p domain.Principal, id string) (*domain.InterviewDetail, error) {
	detail, err := u.store.Interviews().GetDetail(ctx, id)
	if err != nil {
		return nil, storeErr(err, interviewNotFound(id))
	}

	owner := ""
	if detail.User != nil {
		owner = detail.User.ID
	}
	if err := domain.Authorize(domain.OpRead, domain.KindInterview, p, owner); err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateInterview reschedules an interview. The new position must belong to
// the interview's company and the date must fall inside its window.
func (u *interviewUsecase) UpdateInterview(ctx context.Context, p domain.Principal, id string, update *domain.InterviewUpdate) (*domain.Interview, error) {
	var interview *domain.Interview
	err := u.store.WithTx(ctx, func(tx domain.Store) error {
		current, err := tx.Interviews().GetByID(ctx, id)
		if err != nil {
			return storeErr(err, interviewNotFound(id))
		}
		if err := domain.Authorize(domain.OpUpdate, domain.KindInterview, p, current.UserID); err != nil {
			return err
		}

		if update.PositionID != nil {
			current.PositionID = *update.PositionID
		}
		if update.InterviewDate != nil {
			current.InterviewDate = update.InterviewDate.UTC()
		}

		if _, err := u.positionForCompany(ctx, tx, current.PositionID, current.CompanyID, current.InterviewDate); err != nil {
			return err
		}
		if err := validateEntity(u.validate, current); err != nil {
			return err
		}

		if err := tx.Interviews().Update(ctx, current); err != nil {
			return storeErr(err, interviewNotFound(id))
		}
		interview = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publisher.Publish(EventInterviewRescheduled, interview.ID, interview)
	return interview, nil
}

func (u *interviewUsecase) DeleteInterview(ctx context.Context, p domain.Principal, id string) error {
	var interview *domain.Interview
	err := u.store.WithTx(ctx, func(tx domain.Store) error {
		current, err := tx.Interviews().GetByID(ctx, id)
		if err != nil {
			return storeErr(err, interviewNotFound(id))
		}
		if err := domain.Authorize(domain.OpDelete, domain.KindInterview, p, current.UserID); err != nil {
			return err
		}
		interview = current
		return storeErr(tx.Interviews().Delete(ctx, id), interviewNotFound(id))
	})
	if err != nil {
		return err
	}

	u.publisher.Publish(EventInterviewCancelled, interview.ID, interview)
	u.logger.Info("interview cancelled", zap.String("interview_id", id), zap.String("by", p.ID))
	return nil
}

// ExportInterviews renders the admin interview listing as an xlsx workbook
func (u *interviewUsecase) ExportInterviews(ctx context.Context, p domain.Principal, companyID string) ([]byte, string, error) {
	if err := domain.Authorize(domain.OpExport, domain.KindInterview, p, ""); err != nil {
		return nil, "", err
	}

	interviews, err := u.store.Interviews().FetchDetails(ctx, domain.InterviewScope(p, companyID))
	if err != nil {
		return nil, "", storeErr(err, "")
	}

	data, err := u.exportExcel(interviews)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("interviews_%s.xlsx", u.now().Format("20060102_150405"))
	return data, filename, nil
}

var exportHeaders = []string{
	"INTERVIEW ID", "INTERVIEW DATE", "CANDIDATE NAME", "CANDIDATE EMAIL",
	"COMPANY", "COMPANY TEL", "POSITION", "BOOKED AT",
}

func (u *interviewUsecase) exportExcel(interviews []domain.InterviewDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Interviews"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, iv := range interviews {
		for colIdx, value := range exportRow(iv) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(iv domain.InterviewDetail) []interface{} {
	var name, email, company, tel, position string
	if iv.User != nil {
		name, email = iv.User.Name, iv.User.Email
	}
	if iv.Company != nil {
		company, tel = iv.Company.Name, iv.Company.Phone
	}
	if iv.Position != nil {
		position = iv.Position.Title
	}
	return []interface{}{
		iv.ID,
		iv.InterviewDate.UTC().Format(isoMillis),
		name,
		email,
		company,
		tel,
		position,
		iv.CreatedAt.UTC().Format(isoMillis),
	}
}
