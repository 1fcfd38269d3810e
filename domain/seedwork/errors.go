package seedwork

import "fmt"

// Common errors

var ErrInvalidIdentity = InvalidIdentityError{}
var ErrNotFound = NotFoundError{}
var ErrEntityConflict = EntityConflictError{}
var ErrEntityValidation = EntityValidationError{}
var ErrLoadEntity = LoadEntityError{}
var ErrUnknownField = UnknownFieldError{}
var ErrFieldType = FieldTypeError{}

type InvalidIdentityError struct {
	Value string
}

func (e InvalidIdentityError) Error() string {
	return "ID must be a valid UUID"
}

type NotFoundError struct {
	Entity string
	Id     string
}

func (e NotFoundError) Error() string {
	entity := e.Entity
	if entity == "" {
		entity = "Entity"
	}
	return fmt.Sprintf("%s not found using ID '%s'", entity, e.Id)
}

type EntityConflictError struct {
	Entity string
	Id     string
}

func (e EntityConflictError) Error() string {
	return fmt.Sprintf("entity conflict for type %s with id %s", e.Entity, e.Id)
}

// EntityValidationError carries every failing field, keyed by field name.
type EntityValidationError struct {
	Errors map[string][]string
}

func (e EntityValidationError) Error() string {
	return "Entity Validation Error"
}

// LoadEntityError is raised when persisted data can no longer be turned back
// into a valid entity.
type LoadEntityError struct {
	Errors map[string][]string
}

func (e LoadEntityError) Error() string {
	return "Load Entity Error"
}

type UnknownFieldError struct {
	Name string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %s", e.Name)
}

type FieldTypeError struct {
	Name string
	Want string
	Got  any
}

func (e FieldTypeError) Error() string {
	return fmt.Sprintf("field %s expects %s, got %T", e.Name, e.Want, e.Got)
}
