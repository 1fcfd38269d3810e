package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/histafrica/sharedkernel/domain/repository"
	"github.com/histafrica/sharedkernel/domain/seedwork"
)

// SearchOptions configure how a searchable repository filters and sorts. A
// nil Filter matches everything; Sorters keys are the sortable fields.
type SearchOptions[E any] struct {
	Filter  func(entity E, filter string) bool
	Sorters map[string]func(a, b E) int
}

type InMemorySearchableRepository[E seedwork.Identifiable] struct {
	*InMemoryRepository[E]
	options SearchOptions[E]
}

func NewInMemorySearchableRepository[E seedwork.Identifiable](entity string, options SearchOptions[E]) *InMemorySearchableRepository[E] {
	return &InMemorySearchableRepository[E]{
		InMemoryRepository: NewInMemoryRepository[E](entity),
		options:            options,
	}
}

func (r *InMemorySearchableRepository[E]) SortableFields() []string {
	fields := make([]string, 0, len(r.options.Sorters))
	for name := range r.options.Sorters {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

func (r *InMemorySearchableRepository[E]) Search(_ context.Context, params repository.SearchParams) (repository.SearchResult[E], error) {
	items := r.applyFilter(r.Items(), params)
	items = r.applySort(items, params)
	return repository.NewSearchResult(r.applyPaginate(items, params), len(items), params), nil
}

func (r *InMemorySearchableRepository[E]) applyFilter(items []E, params repository.SearchParams) []E {
	if !params.HasFilter() || r.options.Filter == nil {
		return items
	}
	filter := params.FilterValue()
	return slices.DeleteFunc(items, func(e E) bool {
		return !r.options.Filter(e, filter)
	})
}

// applySort is stable; unknown sort fields keep insertion order.
func (r *InMemorySearchableRepository[E]) applySort(items []E, params repository.SearchParams) []E {
	compare, ok := r.options.Sorters[params.SortField()]
	if !params.HasSort() || !ok {
		return items
	}
	if params.IsDescending() {
		slices.SortStableFunc(items, func(a, b E) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(items, compare)
	}
	return items
}

func (r *InMemorySearchableRepository[E]) applyPaginate(items []E, params repository.SearchParams) []E {
	start := params.Offset()
	if params.PerPage < 1 || start < 0 || start >= len(items) {
		return []E{}
	}
	end := len(items)
	if params.PerPage < end-start {
		end = start + params.PerPage
	}
	return slices.Clone(items[start:end])
}
