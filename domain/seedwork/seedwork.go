package seedwork

import (
	"fmt"
	"reflect"
	"slices"
)

// Identifiable is satisfied by every entity stored in a repository.
type Identifiable interface {
	Id() string
}

// Entity is embedded by concrete entities. Entities are values: fields are
// replaced by building a new value, never by mutating a shared one.
type Entity struct {
	UniqueEntityId UniqueEntityId
}

func NewEntity(id UniqueEntityId) Entity {
	return Entity{UniqueEntityId: id}
}

func (e Entity) Id() string {
	return e.UniqueEntityId.String()
}

// idKey is the dictionary key holding the string identity.
const idKey = "id"

// Field describes one declared field of a concrete entity type E.
type Field[E any] struct {
	Name    string
	Kind    string
	Default any
	Get     func(E) any
	Set     func(E, any) (E, error)
}

// Setter adapts a typed copy-with-change function to Field.Set. A nil value is
// accepted only when V is a nilable type.
func Setter[E any, V any](name string, apply func(E, V) E) func(E, any) (E, error) {
	return func(e E, value any) (E, error) {
		if value == nil && nilable[V]() {
			var zero V
			return apply(e, zero), nil
		}
		v, ok := value.(V)
		if !ok {
			return e, FieldTypeError{Name: name, Want: reflect.TypeFor[V]().String(), Got: value}
		}
		return apply(e, v), nil
	}
}

func nilable[V any]() bool {
	switch reflect.TypeFor[V]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// Fields is the per-type metadata table of an entity, built once at package
// initialization.
type Fields[E Identifiable] struct {
	order  []string
	byName map[string]Field[E]
}

func NewFields[E Identifiable](fields ...Field[E]) Fields[E] {
	f := Fields[E]{
		order:  make([]string, 0, len(fields)),
		byName: make(map[string]Field[E], len(fields)),
	}
	for _, field := range fields {
		if field.Name == idKey {
			panic(fmt.Sprintf("field name %q is reserved", idKey))
		}
		if _, ok := f.byName[field.Name]; ok {
			panic(fmt.Sprintf("duplicate field %q", field.Name))
		}
		f.order = append(f.order, field.Name)
		f.byName[field.Name] = field
	}
	return f
}

func (f Fields[E]) Names() []string {
	return slices.Clone(f.order)
}

func (f Fields[E]) GetField(name string) (Field[E], error) {
	field, ok := f.byName[name]
	if !ok {
		return Field[E]{}, UnknownFieldError{Name: name}
	}
	return field, nil
}

// With returns a copy of entity with the named field replaced.
func (f Fields[E]) With(entity E, name string, value any) (E, error) {
	field, err := f.GetField(name)
	if err != nil {
		return entity, err
	}
	if field.Set == nil {
		return entity, FieldTypeError{Name: name, Want: "settable field", Got: value}
	}
	return field.Set(entity, value)
}

// ToDict maps every declared field to its value and adds the string identity
// under "id".
func (f Fields[E]) ToDict(entity E) map[string]any {
	dict := make(map[string]any, len(f.order)+1)
	for _, name := range f.order {
		dict[name] = f.byName[name].Get(entity)
	}
	dict[idKey] = entity.Id()
	return dict
}
