package validation

import (
	"fmt"
	"unicode/utf8"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Rules is a fail-fast rule chain over one value. Each rule returns the chain
// so calls compose; once a rule fails the remaining rules are skipped and Err
// reports the first violation.
type Rules struct {
	value any
	field string
	err   *ValidationError
}

func Values(value any, field string) Rules {
	return Rules{value: indirect(value), field: field}
}

func (r Rules) Required() Rules {
	return r.check(func() bool {
		return r.value == nil || r.value == ""
	}, "The %s is required")
}

func (r Rules) String() Rules {
	return r.check(func() bool {
		if r.value == nil {
			return false
		}
		_, ok := r.value.(string)
		return !ok
	}, "The %s must be a string")
}

func (r Rules) MaxLength(max int) Rules {
	return r.check(func() bool {
		if r.value == nil {
			return false
		}
		n, ok := length(r.value)
		return !ok || n > max
	}, "The %s must be less than %d characters", max)
}

func (r Rules) Boolean() Rules {
	return r.check(func() bool {
		if r.value == nil {
			return false
		}
		_, ok := r.value.(bool)
		return !ok
	}, "The %s must be a boolean")
}

func (r Rules) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

func (r Rules) check(failed func() bool, format string, args ...any) Rules {
	if r.err != nil || !failed() {
		return r
	}
	r.err = &ValidationError{
		Field:   r.field,
		Message: fmt.Sprintf(format, append([]any{r.field}, args...)...),
	}
	return r
}

func indirect(value any) any {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case *bool:
		if v == nil {
			return nil
		}
		return *v
	case *int:
		if v == nil {
			return nil
		}
		return *v
	default:
		return value
	}
}

func length(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), true
	case []byte:
		return len(v), true
	case []string:
		return len(v), true
	case []any:
		return len(v), true
	case map[string]any:
		return len(v), true
	default:
		return 0, false
	}
}

// ErrorFields accumulates violation messages per field.
type ErrorFields map[string][]string

func (e ErrorFields) Add(field string, err error) {
	if err != nil {
		e[field] = append(e[field], err.Error())
	}
}

func (e ErrorFields) HasErrors() bool {
	return len(e) > 0
}

// ValidatorFields is embedded by validators that run one rule chain per field
// and collect every failure before reporting.
type ValidatorFields[P any] struct {
	Errors        ErrorFields
	ValidatedData *P
}

func (v *ValidatorFields[P]) Reset() {
	v.Errors = ErrorFields{}
	v.ValidatedData = nil
}

// Finish records data as validated when no field failed.
func (v *ValidatorFields[P]) Finish(data P) bool {
	if v.Errors.HasErrors() {
		v.ValidatedData = nil
		return false
	}
	v.ValidatedData = &data
	return true
}
