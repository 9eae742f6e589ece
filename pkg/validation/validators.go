package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// http(s) URL with a dotted host and optional path/query
	webURLRegex = regexp.MustCompile(`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{2,256}\.[a-z]{2,6}\b([-a-zA-Z0-9@:%_+.~#?&/=]*)$`)
)

var companySizes = map[string]bool{
	"1-10 employees":     true,
	"11-50 employees":    true,
	"51-200 employees":   true,
	"201-500 employees":  true,
	"501-1000 employees": true,
	"1000+ employees":    true,
}

// New returns a validator with the custom rules registered
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("web_url", WebURL)
	_ = v.RegisterValidation("company_size", CompanySize)
	_ = v.RegisterValidation("max_current_year", MaxCurrentYear)
}

// WebURL validates an http or https URL
func WebURL(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return webURLRegex.MatchString(val)
}

// CompanySize validates one of the company size buckets
func CompanySize(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return companySizes[val]
}

// MaxCurrentYear validates that an integer field (year) does not exceed the current year
func MaxCurrentYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true // Allow zero (optional field)
	}
	return year <= int64(time.Now().Year())
}
