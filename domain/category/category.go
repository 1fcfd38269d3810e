package category

import (
	"cmp"
	"strings"
	"time"

	"github.com/histafrica/sharedkernel/domain/repository"
	"github.com/histafrica/sharedkernel/domain/seedwork"
	"github.com/histafrica/sharedkernel/domain/validation"
)

const NameMaxLength = 255

type Category struct {
	seedwork.Entity
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

// Props are the inputs to NewCategory. A nil Id generates a new identity and a
// nil IsActive defaults to true.
type Props struct {
	Id          *seedwork.UniqueEntityId
	Name        string
	Description *string
	IsActive    *bool
}

func NewCategory(props Props, createdAt time.Time) (Category, error) {
	if err := validate(props); err != nil {
		return Category{}, err
	}

	id := seedwork.NewUniqueEntityId()
	if props.Id != nil {
		id = *props.Id
	}
	isActive := true
	if props.IsActive != nil {
		isActive = *props.IsActive
	}
	return Category{
		Entity:      seedwork.NewEntity(id),
		Name:        props.Name,
		Description: props.Description,
		IsActive:    isActive,
		CreatedAt:   createdAt,
	}, nil
}

func (c Category) Update(name string, description *string) (Category, error) {
	if err := validate(Props{Name: name, Description: description, IsActive: &c.IsActive}); err != nil {
		return c, err
	}
	c.Name = name
	c.Description = description
	return c, nil
}

func (c Category) Activate() Category {
	c.IsActive = true
	return c
}

func (c Category) Deactivate() Category {
	c.IsActive = false
	return c
}

// With replaces a single declared field and validates the result.
func (c Category) With(name string, value any) (Category, error) {
	next, err := Fields.With(c, name, value)
	if err != nil {
		return c, err
	}
	if err := validate(Props{Name: next.Name, Description: next.Description, IsActive: &next.IsActive}); err != nil {
		return c, err
	}
	return next, nil
}

func (c Category) ToDict() map[string]any {
	return Fields.ToDict(c)
}

func GetField(name string) (seedwork.Field[Category], error) {
	return Fields.GetField(name)
}

func validate(props Props) error {
	v := NewValidator()
	if !v.Validate(props) {
		return seedwork.EntityValidationError{Errors: v.Errors}
	}
	return nil
}

var Fields = seedwork.NewFields(
	seedwork.Field[Category]{
		Name: "name",
		Kind: "string",
		Get:  func(c Category) any { return c.Name },
		Set: seedwork.Setter("name", func(c Category, v string) Category {
			c.Name = v
			return c
		}),
	},
	seedwork.Field[Category]{
		Name: "description",
		Kind: "*string",
		Get: func(c Category) any {
			if c.Description == nil {
				return nil
			}
			return *c.Description
		},
		Set: seedwork.Setter("description", func(c Category, v *string) Category {
			c.Description = v
			return c
		}),
	},
	seedwork.Field[Category]{
		Name:    "is_active",
		Kind:    "bool",
		Default: true,
		Get:     func(c Category) any { return c.IsActive },
		Set: seedwork.Setter("is_active", func(c Category, v bool) Category {
			c.IsActive = v
			return c
		}),
	},
	seedwork.Field[Category]{
		Name: "created_at",
		Kind: "time.Time",
		Get:  func(c Category) any { return c.CreatedAt },
		Set: seedwork.Setter("created_at", func(c Category, v time.Time) Category {
			c.CreatedAt = v
			return c
		}),
	},
)

// Validator

type Validator struct {
	validation.ValidatorFields[Props]
}

func NewValidator() *Validator {
	v := &Validator{}
	v.Reset()
	return v
}

func (v *Validator) Validate(props Props) bool {
	v.Reset()
	v.Errors.Add("name", validation.Values(props.Name, "name").Required().String().MaxLength(NameMaxLength).Err())
	v.Errors.Add("description", validation.Values(props.Description, "description").String().Err())
	v.Errors.Add("is_active", validation.Values(props.IsActive, "is_active").Boolean().Err())
	return v.Finish(props)
}

// Repository

type Repository = repository.Searchable[Category]

const (
	SortByName      = "name"
	SortByCreatedAt = "created_at"
)

var SortableFields = []string{SortByName, SortByCreatedAt}

// MatchesFilter reports whether the name contains filter, ignoring case.
func MatchesFilter(c Category, filter string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter))
}

func Sorters() map[string]func(a, b Category) int {
	return map[string]func(a, b Category) int{
		SortByName: func(a, b Category) int {
			return cmp.Compare(a.Name, b.Name)
		},
		SortByCreatedAt: func(a, b Category) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		},
	}
}
