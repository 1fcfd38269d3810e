package seedwork

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// UniqueEntityId is the identity shared by every entity. The zero value is not
// a valid identity; use NewUniqueEntityId or UniqueEntityIdFrom.
type UniqueEntityId struct {
	value uuid.UUID
}

func NewUniqueEntityId() UniqueEntityId {
	return UniqueEntityId{uuid.New()}
}

// UniqueEntityIdFrom accepts a string, uuid.UUID, UniqueEntityId, a pointer to
// one of those, or a fmt.Stringer and fails with InvalidIdentityError unless it
// holds a UUID. Nil pointers are invalid.
func UniqueEntityIdFrom(value any) (UniqueEntityId, error) {
	if isNilPointer(value) {
		return UniqueEntityId{}, InvalidIdentityError{}
	}
	switch v := value.(type) {
	case UniqueEntityId:
		return v, nil
	case *UniqueEntityId:
		return *v, nil
	case uuid.UUID:
		return UniqueEntityId{v}, nil
	case *uuid.UUID:
		return UniqueEntityId{*v}, nil
	case string:
		return parseUniqueEntityId(v)
	case *string:
		return parseUniqueEntityId(*v)
	case fmt.Stringer:
		return parseUniqueEntityId(v.String())
	default:
		return UniqueEntityId{}, InvalidIdentityError{Value: fmt.Sprintf("%v", value)}
	}
}

func isNilPointer(value any) bool {
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func parseUniqueEntityId(s string) (UniqueEntityId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UniqueEntityId{}, InvalidIdentityError{Value: s}
	}
	return UniqueEntityId{id}, nil
}

func (id UniqueEntityId) Value() uuid.UUID {
	return id.value
}

func (id UniqueEntityId) String() string {
	return id.value.String()
}

func (id UniqueEntityId) Equal(other UniqueEntityId) bool {
	return id.value == other.value
}
