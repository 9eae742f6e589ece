package validation

import (
	"fmt"
	"strings"
)

// Violation describes one violated field constraint
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Messages maps "<field>.<rule>" to the message reported for it
var Messages = map[string]string{
	"name.required":                "Please add a name",
	"name.max":                     "Name cannot be more than 50 characters",
	"address.required":             "Please add an address",
	"website.required":             "Please add a website",
	"website.web_url":              "Please use a valid URL with HTTP or HTTPS",
	"description.required":         "Please add a description",
	"description.max":              "Description cannot be more than 500 characters",
	"logo.web_url":                 "Please use a valid URL for the logo image",
	"companySize.company_size":     "Company size must be one of the predefined ranges",
	"overview.max":                 "Overview cannot be more than 2000 characters",
	"foundedYear.min":              "Year must be later than 1800",
	"foundedYear.max_current_year": "Year cannot be in the future",

	"title.required":           "Please add a job title",
	"responsibilities.max":     "Too many responsibilities",
	"requirements.max":         "Too many requirements",
	"openingPosition.required": "There must be at least 1 position open",
	"openingPosition.min":      "There must be at least 1 position open",
	"salary.min.min":           "Minimum salary cannot be negative",
	"salary.max.min":           "Maximum salary cannot be negative",
	"salary.max.gtefield":      "Maximum salary must be greater than or equal to minimum salary",
	"workArrangement.oneof":    "Work arrangement must be On-site, Remote or Hybrid",
	"location.required":        "Please specify the work location",
	"company.required":         "Position must belong to a company",
	"interviewStart.required":  "Please add the start date for interview booking",
	"interviewEnd.required":    "Please add the end date for interview booking",
	"interviewEnd.gtfield":     "Interview end date must be after the start date",

	"user.required":          "Please add the user",
	"position.required":      "Please add the position",
	"interviewDate.required": "Please add Interview Date",
}

// Summary joins the violation messages into one line
func Summary(violations []Violation) string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, ", ")
}

// message returns the user-facing text for a failed rule
func message(field, rule, param string, isString bool) string {
	if msg, ok := Messages[field+"."+rule]; ok {
		return msg
	}

	switch rule {
	case "required":
		return fmt.Sprintf("%s: is required", field)
	case "min":
		if isString {
			return fmt.Sprintf("%s: must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s: must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s: cannot be more than %s characters", field, param)
		}
		return fmt.Sprintf("%s: cannot be more than %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gtfield":
		return fmt.Sprintf("%s: must be greater than %s", field, param)
	case "gtefield":
		return fmt.Sprintf("%s: must be greater than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s: failed validation (%s)", field, rule)
	}
}
