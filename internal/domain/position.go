package domain

import (
	"context"
	"time"

	"go-interview-booking/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Work arrangements for a position
const (
	WorkOnSite = "On-site"
	WorkRemote = "Remote"
	WorkHybrid = "Hybrid"
)

// Salary is the offered pay range of a position
type Salary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Position is a job opening of a company. Interviews can only be booked
// inside its [InterviewStart, InterviewEnd] window.
type Position struct {
	ID               string    `json:"_id"`
	CompanyID        string    `json:"company"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Responsibilities []string  `json:"responsibilities"`
	Requirements     []string  `json:"requirements"`
	Skills           []string  `json:"skill"`
	OpeningPosition  int       `json:"openingPosition"`
	Salary           Salary    `json:"salary"`
	WorkArrangement  string    `json:"workArrangement"`
	Location         string    `json:"location"`
	InterviewStart   time.Time `json:"interviewStart"`
	InterviewEnd     time.Time `json:"interviewEnd"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ApplyDefaults fills the optional fields the store defaults
func (p *Position) ApplyDefaults() {
	if p.WorkArrangement == "" {
		p.WorkArrangement = WorkOnSite
	}
	if p.Responsibilities == nil {
		p.Responsibilities = []string{}
	}
	if p.Requirements == nil {
		p.Requirements = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
}

// Violations checks the position against its field rules. Create and update share it.
func (p *Position) Violations(v *validator.Validate) []validation.Violation {
	ck := validation.NewChecker(v)
	ck.Field("company", p.CompanyID, "required")
	ck.Field("title", p.Title, "required")
	ck.Field("responsibilities", p.Responsibilities, "max=50")
	ck.Field("requirements", p.Requirements, "max=50")
	ck.Field("openingPosition", p.OpeningPosition, "required,min=1")
	ck.Field("salary.min", p.Salary.Min, "min=0")
	ck.Field("salary.max", p.Salary.Max, "min=0")
	ck.Rule("salary.max", "gtefield", p.Salary.Max >= p.Salary.Min)
	ck.Field("workArrangement", p.WorkArrangement, "oneof=On-site Remote Hybrid")
	ck.Field("location", p.Location, "required")
	ck.Rule("interviewStart", "required", !p.InterviewStart.IsZero())
	ck.Rule("interviewEnd", "required", !p.InterviewEnd.IsZero())
	if !p.InterviewStart.IsZero() && !p.InterviewEnd.IsZero() {
		ck.Rule("interviewEnd", "gtfield", p.InterviewEnd.After(p.InterviewStart))
	}
	return ck.Violations()
}

// InWindow reports whether t lies inside the booking window, bounds included
func (p *Position) InWindow(t time.Time) bool {
	return !t.Before(p.InterviewStart) && !t.After(p.InterviewEnd)
}

// PositionSummary is the subset of position fields embedded into interview listings
type PositionSummary struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InterviewStart time.Time `json:"interviewStart"`
	InterviewEnd   time.Time `json:"interviewEnd"`
}

// Summary returns the listing view of the position
func (p *Position) Summary() *PositionSummary {
	return &PositionSummary{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		InterviewStart: p.InterviewStart,
		InterviewEnd:   p.InterviewEnd,
	}
}

// PositionWithCompany is a position populated with its company summary
type PositionWithCompany struct {
	Position
	Company *CompanySummary `json:"company"`
}

// PositionUpdate carries a partial position update. The owning company cannot change.
type PositionUpdate struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Responsibilities *[]string  `json:"responsibilities"`
	Requirements     *[]string  `json:"requirements"`
	Skills           *[]string  `json:"skill"`
	OpeningPosition  *int       `json:"openingPosition"`
	Salary           *Salary    `json:"salary"`
	WorkArrangement  *string    `json:"workArrangement"`
	Location         *string    `json:"location"`
	InterviewStart   *time.Time `json:"interviewStart"`
	InterviewEnd     *time.Time `json:"interviewEnd"`
}

// Apply copies every set field of the update onto the position
func (u *PositionUpdate) Apply(p *Position) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Responsibilities != nil {
		p.Responsibilities = *u.Responsibilities
	}
	if u.Requirements != nil {
		p.Requirements = *u.Requirements
	}
	if u.Skills != nil {
		p.Skills = *u.Skills
	}
	if u.OpeningPosition != nil {
		p.OpeningPosition = *u.OpeningPosition
	}
	if u.Salary != nil {
		p.Salary = *u.Salary
	}
	if u.WorkArrangement != nil {
		p.WorkArrangement = *u.WorkArrangement
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.InterviewStart != nil {
		p.InterviewStart = *u.InterviewStart
	}
	if u.InterviewEnd != nil {
		p.InterviewEnd = *u.InterviewEnd
	}
}

// PositionFilter narrows a position listing. An empty CompanyID lists all positions.
type PositionFilter struct {
	CompanyID string
}

// PositionRepository defines storage operations for positions
type PositionRepository interface {
	Create(ctx context.Context, position *Position) error
	GetByID(ctx context.Context, id string) (*Position, error)
	// Fetch returns matching positions sorted by title
	Fetch(ctx context.Context, filter PositionFilter) ([]Position, error)
	Update(ctx context.Context, position *Position) error
	Delete(ctx context.Context, id string) error
	DeleteByCompany(ctx context.Context, companyID string) (int64, error)
	DistinctSkills(ctx context.Context) ([]string, error)
}

// PositionUsecase defines business logic for positions
type PositionUsecase interface {
	ListPositions(ctx context.Context, filter PositionFilter) ([]PositionWithCompany, error)
	GetPosition(ctx context.Context, id string) (*PositionWithCompany, error)
	CreatePosition(ctx context.Context, p Principal, companyID string, position *Position) error
	UpdatePosition(ctx context.Context, p Principal, id string, update *PositionUpdate) (*Position, error)
	DeletePosition(ctx context.Context, p Principal, id string) error
	ListSkills(ctx context.Context) ([]string, error)
}
