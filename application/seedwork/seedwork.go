package seedwork

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/histafrica/sharedkernel/domain/validation"
)

// Common errors

var ErrValidation = ValidationErrors{}

// ValidationErrors collects every invalid input of a command or query.
type ValidationErrors struct {
	Errors validation.ErrorFields
}

func NewValidationErrors() ValidationErrors {
	return ValidationErrors{
		Errors: validation.ErrorFields{},
	}
}

func (e *ValidationErrors) Set(field string, err error) {
	e.Errors.Add(field, err)
}

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Errors[field], ", ")))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Ports and adapters

type Clock interface {
	UtcNow() time.Time
}
