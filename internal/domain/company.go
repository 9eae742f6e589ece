package domain

import (
	"context"
	"time"

	"go-interview-booking/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Company size buckets accepted by the companySize field
const (
	CompanySize1To10     = "1-10 employees"
	CompanySize11To50    = "11-50 employees"
	CompanySize51To200   = "51-200 employees"
	CompanySize201To500  = "201-500 employees"
	CompanySize501To1000 = "501-1000 employees"
	CompanySize1000Plus  = "1000+ employees"
)

// CompanySizes lists every valid company size bucket in ascending order
var CompanySizes = []string{
	CompanySize1To10,
	CompanySize11To50,
	CompanySize51To200,
	CompanySize201To500,
	CompanySize501To1000,
	CompanySize1000Plus,
}

// Company is an employer that owns positions and, transitively, interviews
type Company struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	Phone       string    `json:"tel"`
	Tags        []string  `json:"tags"`
	Logo        string    `json:"logo,omitempty"`
	CompanySize string    `json:"companySize,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	FoundedYear int       `json:"foundedYear,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Violations checks the company against its field rules. Create and update share it.
func (c *Company) Violations(v *validator.Validate) []validation.Violation {
	ck := validation.NewChecker(v)
	ck.Field("name", c.Name, "required,max=50")
	ck.Field("address", c.Address, "required")
	ck.Field("website", c.Website, "required,web_url")
	ck.Field("description", c.Description, "required,max=500")
	ck.Field("logo", c.Logo, "omitempty,web_url")
	ck.Field("companySize", c.CompanySize, "omitempty,company_size")
	ck.Field("overview", c.Overview, "max=2000")
	ck.Field("foundedYear", c.FoundedYear, "omitempty,min=1800,max_current_year")
	return ck.Violations()
}

// CompanySummary is the subset of company fields embedded into interview listings
type CompanySummary struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"tel"`
}

// Summary returns the listing view of the company
func (c *Company) Summary() *CompanySummary {
	return &CompanySummary{ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone}
}

// CompanyUpdate carries a partial company update. Nil fields are left unchanged.
type CompanyUpdate struct {
	Name        *string   `json:"name"`
	Address     *string   `json:"address"`
	Website     *string   `json:"website"`
	Description *string   `json:"description"`
	Phone       *string   `json:"tel"`
	Tags        *[]string `json:"tags"`
	Logo        *string   `json:"logo"`
	CompanySize *string   `json:"companySize"`
	Overview    *string   `json:"overview"`
	FoundedYear *int      `json:"foundedYear"`
}

// Apply copies every set field of the update onto the company
func (u *CompanyUpdate) Apply(c *Company) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
	if u.Website != nil {
		c.Website = *u.Website
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Tags != nil {
		c.Tags = *u.Tags
	}
	if u.Logo != nil {
		c.Logo = *u.Logo
	}
	if u.CompanySize != nil {
		c.CompanySize = *u.CompanySize
	}
	if u.Overview != nil {
		c.Overview = *u.Overview
	}
	if u.FoundedYear != nil {
		c.FoundedYear = *u.FoundedYear
	}
}

// CompanyRepository defines storage operations for companies
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	Fetch(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id string) error
	DistinctTags(ctx context.Context) ([]string, error)
}

// CompanyUsecase defines business logic for companies
type CompanyUsecase interface {
	ListCompanies(ctx context.Context) ([]Company, error)
	GetCompany(ctx context.Context, id string) (*Company, error)
	CreateCompany(ctx context.Context, p Principal, company *Company) error
	UpdateCompany(ctx context.Context, p Principal, id string, update *CompanyUpdate) (*Company, error)
	DeleteCompany(ctx context.Context, p Principal, id string) error
	ListTags(ctx context.Context) ([]string, error)
}
