package categoryRequest

import (
	"context"
	"time"

	"github.com/histafrica/sharedkernel/application/dto"
	"github.com/histafrica/sharedkernel/application/seedwork"
	"github.com/histafrica/sharedkernel/domain/category"
	"github.com/histafrica/sharedkernel/domain/repository"
	dseedwork "github.com/histafrica/sharedkernel/domain/seedwork"
)

type CategoryDto struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func fromCategory(c category.Category) CategoryDto {
	return CategoryDto{
		Id:          c.Id(),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

func parseId(errs *seedwork.ValidationErrors, field, value string) dseedwork.UniqueEntityId {
	id, err := dseedwork.UniqueEntityIdFrom(value)
	errs.Set(field, err)
	return id
}

// CreateCategoryCommand

type CreateCategoryCommand struct {
	Id          *string `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (c CreateCategoryCommand) validate() (*category.Props, error) {
	errs := seedwork.NewValidationErrors()
	var id *dseedwork.UniqueEntityId
	if c.Id != nil {
		parsed := parseId(&errs, "id", *c.Id)
		id = &parsed
	}

	if errs.Errors.HasErrors() {
		return nil, errs
	}

	return &category.Props{
		Id:          id,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}, nil
}

func (c CreateCategoryCommand) Run(ctx context.Context, categories category.Repository, clock seedwork.Clock) (*CategoryDto, error) {
	props, err := c.validate()
	if err != nil {
		return nil, err
	}

	entity, err := category.NewCategory(*props, clock.UtcNow())
	if err != nil {
		return nil, err
	}

	if err := categories.Insert(ctx, entity); err != nil {
		return nil, err
	}
	dto := fromCategory(entity)
	return &dto, nil
}

// UpdateCategoryCommand

type UpdateCategoryCommand struct {
	Id          string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (c UpdateCategoryCommand) validate() (*dseedwork.UniqueEntityId, error) {
	errs := seedwork.NewValidationErrors()
	id := parseId(&errs, "id", c.Id)

	if errs.Errors.HasErrors() {
		return nil, errs
	}
	return &id, nil
}

func (c UpdateCategoryCommand) Run(ctx context.Context, categories category.Repository) (*CategoryDto, error) {
	id, err := c.validate()
	if err != nil {
		return nil, err
	}

	entity, err := categories.FindById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	entity, err = entity.Update(c.Name, c.Description)
	if err != nil {
		return nil, err
	}
	if c.IsActive != nil {
		if *c.IsActive {
			entity = entity.Activate()
		} else {
			entity = entity.Deactivate()
		}
	}

	if err := categories.Update(ctx, entity); err != nil {
		return nil, err
	}
	dto := fromCategory(entity)
	return &dto, nil
}

// DeleteCategoryCommand

type DeleteCategoryCommand struct{ Id string }

func (c DeleteCategoryCommand) validate() (*dseedwork.UniqueEntityId, error) {
	errs := seedwork.NewValidationErrors()
	id := parseId(&errs, "id", c.Id)

	if errs.Errors.HasErrors() {
		return nil, errs
	}
	return &id, nil
}

func (c DeleteCategoryCommand) Run(ctx context.Context, categories category.Repository) error {
	id, err := c.validate()
	if err != nil {
		return err
	}
	return categories.Delete(ctx, id.String())
}

// GetCategoryByIdQuery

type GetCategoryByIdQuery struct{ Id string }

func (q GetCategoryByIdQuery) validate() (*dseedwork.UniqueEntityId, error) {
	errs := seedwork.NewValidationErrors()
	id := parseId(&errs, "id", q.Id)

	if errs.Errors.HasErrors() {
		return nil, errs
	}
	return &id, nil
}

func (q GetCategoryByIdQuery) Run(ctx context.Context, categories category.Repository) (*CategoryDto, error) {
	id, err := q.validate()
	if err != nil {
		return nil, err
	}

	entity, err := categories.FindById(ctx, id.String())
	if err != nil {
		return nil, err
	}
	dto := fromCategory(entity)
	return &dto, nil
}

// ListCategoriesQuery

// ListCategoriesQuery takes raw search values; malformed ones are normalized,
// never rejected.
type ListCategoriesQuery struct {
	Search repository.SearchParamsInput
}

type ListCategoriesOutput struct {
	dto.PaginationOutput[CategoryDto]
}

var listCategoriesMapper = dto.FromChild(func(o dto.PaginationOutput[CategoryDto]) ListCategoriesOutput {
	return ListCategoriesOutput{o}
})

func ListCategoriesQueryFrom(input dto.SearchInput) ListCategoriesQuery {
	return ListCategoriesQuery{Search: input.Raw()}
}

func (q ListCategoriesQuery) Run(ctx context.Context, categories category.Repository) (*ListCategoriesOutput, error) {
	params := repository.NewSearchParams(q.Search)
	result, err := categories.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryDto, 0, len(result.Items))
	for _, c := range result.Items {
		items = append(items, fromCategory(c))
	}
	output := listCategoriesMapper.ToOutput(items, result)
	return &output, nil
}
