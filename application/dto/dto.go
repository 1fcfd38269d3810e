// Package dto holds the shapes the application layer exchanges with its
// callers and the mapper from a search result to a paginated output.
package dto

import "github.com/histafrica/sharedkernel/domain/repository"

// SearchInput is the typed form of a search request. Params normalizes it.
type SearchInput struct {
	Page    *int    `json:"page,omitempty"`
	PerPage *int    `json:"per_page,omitempty"`
	Sort    *string `json:"sort,omitempty"`
	SortDir *string `json:"sort_dir,omitempty"`
	Filter  *string `json:"filter,omitempty"`
}

func (i SearchInput) Params() repository.SearchParams {
	return repository.NewSearchParams(i.Raw())
}

func (i SearchInput) Raw() repository.SearchParamsInput {
	return repository.SearchParamsInput{
		Page:    i.Page,
		PerPage: i.PerPage,
		Sort:    i.Sort,
		SortDir: i.SortDir,
		Filter:  i.Filter,
	}
}

type PaginationOutput[Item any] struct {
	Items       []Item  `json:"items"`
	Total       int     `json:"total"`
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	PerPage     int     `json:"per_page"`
	Sort        *string `json:"sort"`
	SortDir     *string `json:"sort_dir"`
	Filter      *string `json:"filter"`
}

// Paginated is satisfied by repository.SearchResult of any entity type.
type Paginated interface {
	Pagination() repository.Pagination
}

// PaginationOutputMapper builds the output shape O from a page of items.
type PaginationOutputMapper[Item, O any] struct {
	output func(PaginationOutput[Item]) O
}

func FromChild[Item, O any](output func(PaginationOutput[Item]) O) PaginationOutputMapper[Item, O] {
	return PaginationOutputMapper[Item, O]{output: output}
}

func NewPaginationOutputMapper[Item any]() PaginationOutputMapper[Item, PaginationOutput[Item]] {
	return FromChild[Item, PaginationOutput[Item]](func(o PaginationOutput[Item]) PaginationOutput[Item] { return o })
}

// ToOutput copies the page metadata of result; items may be a projection of
// the result's own items.
func (m PaginationOutputMapper[Item, O]) ToOutput(items []Item, result Paginated) O {
	p := result.Pagination()
	if items == nil {
		items = []Item{}
	}
	var sortDir *string
	if p.SortDir != nil {
		dir := string(*p.SortDir)
		sortDir = &dir
	}
	return m.output(PaginationOutput[Item]{
		Items:       items,
		Total:       p.Total,
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PerPage:     p.PerPage,
		Sort:        p.Sort,
		SortDir:     sortDir,
		Filter:      p.Filter,
	})
}
