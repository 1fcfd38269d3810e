package memory

import (
	"github.com/histafrica/sharedkernel/domain/category"
)

type CategoryRepository struct {
	*InMemorySearchableRepository[category.Category]
}

var _ category.Repository = (*CategoryRepository)(nil)

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		NewInMemorySearchableRepository("Category", SearchOptions[category.Category]{
			Filter:  category.MatchesFilter,
			Sorters: category.Sorters(),
		}),
	}
}
