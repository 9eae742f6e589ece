package domain

import (
	"context"
	"time"

	"go-interview-booking/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// DefaultInterviewQuota is the number of interviews a non-admin user may hold at once
const DefaultInterviewQuota = 3

// Interview is a booking made by a user for a position of a company
type Interview struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"user"`
	CompanyID     string    `json:"company"`
	PositionID    string    `json:"position"`
	InterviewDate time.Time `json:"interviewDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Violations checks the interview's references and date are set
func (i *Interview) Violations(v *validator.Validate) []validation.Violation {
	ck := validation.NewChecker(v)
	ck.Field("user", i.UserID, "required")
	ck.Field("company", i.CompanyID, "required")
	ck.Field("position", i.PositionID, "required")
	ck.Rule("interviewDate", "required", !i.InterviewDate.IsZero())
	return ck.Violations()
}

// InterviewDetail is an interview populated with its company, position and user
type InterviewDetail struct {
	ID            string           `json:"_id"`
	User          *UserSummary     `json:"user"`
	Company       *CompanySummary  `json:"company"`
	Position      *PositionSummary `json:"position"`
	InterviewDate time.Time        `json:"interviewDate"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// BookingRequest is the input of the booking validator
type BookingRequest struct {
	CompanyID     string
	PositionID    string
	InterviewDate time.Time
}

// InterviewUpdate carries a reschedule. The owner and company never change.
type InterviewUpdate struct {
	PositionID    *string    `json:"position"`
	InterviewDate *time.Time `json:"interviewDate"`
}

// InterviewFilter narrows an interview listing. Empty fields match everything.
type InterviewFilter struct {
	UserID    string
	CompanyID string
}

// InterviewRepository defines storage operations for interviews
type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id string) (*Interview, error)
	GetDetail(ctx context.Context, id string) (*InterviewDetail, error)
	// FetchDetails returns matching interviews sorted by interview date
	FetchDetails(ctx context.Context, filter InterviewFilter) ([]InterviewDetail, error)
	Update(ctx context.Context, interview *Interview) error
	Delete(ctx context.Context, id string) error
	DeleteByPosition(ctx context.Context, positionID string) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	CountByPosition(ctx context.Context, positionID string) (int64, error)
	// CountOutsideWindow counts interviews of the position dated before start or after end
	CountOutsideWindow(ctx context.Context, positionID string, start, end time.Time) (int64, error)
	ExistsByCompany(ctx context.Context, companyID string) (bool, error)
	// LockUser serializes bookings of one user until the surrounding transaction ends
	LockUser(ctx context.Context, userID string) error
}

// InterviewUsecase defines business logic for interviews
type InterviewUsecase interface {
	Book(ctx context.Context, p Principal, req BookingRequest) (*Interview, error)
	ListInterviews(ctx context.Context, p Principal, companyID string) ([]InterviewDetail, error)
	GetInterview(ctx context.Context, p Principal, id string) (*InterviewDetail, error)
	UpdateInterview(ctx context.Context, p Principal, id string, update *InterviewUpdate) (*Interview, error)
	DeleteInterview(ctx context.Context, p Principal, id string) error
	ExportInterviews(ctx context.Context, p Principal, companyID string) ([]byte, string, error)
}
