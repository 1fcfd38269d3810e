package repository

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15
)

// SearchParamsInput carries raw, untrusted query values. Any field may hold a
// string, a number, a pointer to either, or nil.
type SearchParamsInput struct {
	Page    any
	PerPage any
	Sort    any
	SortDir any
	Filter  any
}

// SearchParams is a normalized query. Nil pointers mean absent.
type SearchParams struct {
	Page    int
	PerPage int
	Sort    *string
	SortDir *SortDirection
	Filter  *string
}

func DefaultSearchParams() SearchParams {
	return SearchParams{Page: DefaultPage, PerPage: DefaultPerPage}
}

// NewSearchParams normalizes input and never fails: malformed values fall
// back to their defaults.
func NewSearchParams(input SearchParamsInput) SearchParams {
	p := SearchParams{
		Page:    normalizePage(input.Page),
		PerPage: normalizePerPage(input.PerPage),
		Sort:    optionalString(input.Sort),
		Filter:  optionalString(input.Filter),
	}
	if p.Sort != nil {
		p.SortDir = normalizeSortDir(input.SortDir)
	}
	return p
}

func normalizePage(value any) int {
	page, ok := toInt(value)
	if !ok || page <= 0 {
		return DefaultPage
	}
	return page
}

func normalizePerPage(value any) int {
	perPage, ok := toInt(value)
	if !ok || perPage < 1 {
		return DefaultPerPage
	}
	return perPage
}

func normalizeSortDir(value any) *SortDirection {
	dir := SortAsc
	if s := optionalString(value); s != nil && SortDirection(strings.ToLower(*s)) == SortDesc {
		dir = SortDesc
	}
	return &dir
}

// toInt coerces decimal strings, Go numbers and booleans. Strings are parsed
// base 10 after trimming so "010" is 10 rather than an octal literal.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	case *string:
		if v == nil {
			return 0, false
		}
		return toInt(*v)
	case *int:
		if v == nil {
			return 0, false
		}
		return *v, true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	default:
		n, err := cast.ToIntE(v)
		return n, err == nil
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func optionalString(value any) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case *string:
		if v == nil {
			return nil
		}
		return optionalString(*v)
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		s = fmt.Sprint(value)
	}
	if s == "" {
		return nil
	}
	return &s
}

// Offset saturates at math.MaxInt when (Page-1)*PerPage does not fit in an
// int, so an oversized page always lands past the last item.
func (p SearchParams) Offset() int {
	if p.Page < 1 || p.PerPage < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

func (p SearchParams) HasSort() bool {
	return p.Sort != nil
}

func (p SearchParams) SortField() string {
	if p.Sort == nil {
		return ""
	}
	return *p.Sort
}

func (p SearchParams) IsDescending() bool {
	return p.SortDir != nil && *p.SortDir == SortDesc
}

func (p SearchParams) HasFilter() bool {
	return p.Filter != nil
}

func (p SearchParams) FilterValue() string {
	if p.Filter == nil {
		return ""
	}
	return *p.Filter
}

// Pagination is the item-free part of a SearchResult.
type Pagination struct {
	Total       int
	CurrentPage int
	PerPage     int
	LastPage    int
	Sort        *string
	SortDir     *SortDirection
	Filter      *string
}

// SearchResult is one page of a search. Build it with NewSearchResult so that
// LastPage is derived from Total and PerPage.
type SearchResult[E any] struct {
	Items       []E
	Total       int
	CurrentPage int
	PerPage     int
	Sort        *string
	SortDir     *SortDirection
	Filter      *string
	lastPage    int
}

func NewSearchResult[E any](items []E, total int, params SearchParams) SearchResult[E] {
	if items == nil {
		items = []E{}
	}
	return SearchResult[E]{
		Items:       items,
		Total:       total,
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
		Sort:        params.Sort,
		SortDir:     params.SortDir,
		Filter:      params.Filter,
		lastPage:    lastPage(total, params.PerPage),
	}
}

func lastPage(total, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}

func (r SearchResult[E]) LastPage() int {
	return r.lastPage
}

func (r SearchResult[E]) Pagination() Pagination {
	return Pagination{
		Total:       r.Total,
		CurrentPage: r.CurrentPage,
		PerPage:     r.PerPage,
		LastPage:    r.lastPage,
		Sort:        r.Sort,
		SortDir:     r.SortDir,
		Filter:      r.Filter,
	}
}

func (r SearchResult[E]) ToDict() map[string]any {
	return map[string]any{
		"items":        r.Items,
		"total":        r.Total,
		"current_page": r.CurrentPage,
		"per_page":     r.PerPage,
		"last_page":    r.lastPage,
		"sort":         deref(r.Sort),
		"sort_dir":     deref(r.SortDir),
		"filter":       deref(r.Filter),
	}
}

func (r SearchResult[E]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToDict())
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
