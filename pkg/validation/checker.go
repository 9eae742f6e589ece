package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Checker collects the violations of one entity. Each call checks one field,
// so an entity's rules read top to bottom in its Violations method.
type Checker struct {
	v   *validator.Validate
	out []Violation
}

func NewChecker(v *validator.Validate) *Checker {
	return &Checker{v: v}
}

// Field runs the validator tag against value and records every failed rule under name
func (c *Checker) Field(name string, value interface{}, tag string) {
	err := c.v.Var(value, tag)
	if err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		c.out = append(c.out, Violation{Field: name, Rule: "invalid", Message: err.Error()})
		return
	}
	for _, e := range fieldErrors {
		c.out = append(c.out, Violation{
			Field:   name,
			Rule:    e.Tag(),
			Param:   e.Param(),
			Message: message(name, e.Tag(), e.Param(), e.Kind().String() == "string"),
		})
	}
}

// Rule records a violation of rule on field unless ok holds. It covers
// cross-field and time checks the tag syntax cannot express on a single value.
func (c *Checker) Rule(field, rule string, ok bool) {
	if ok {
		return
	}
	c.out = append(c.out, Violation{Field: field, Rule: rule, Message: message(field, rule, "", false)})
}

// Violations returns what was collected, nil when the entity is valid
func (c *Checker) Violations() []Violation {
	return c.out
}
