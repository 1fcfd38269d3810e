// Package repository defines the storage-agnostic persistence contract and
// the search protocol every backend implements.
package repository

import (
	"context"

	"github.com/histafrica/sharedkernel/domain/seedwork"
)

// Repository is implemented by every backend. FindById, Update and Delete
// return seedwork.NotFoundError when no entity has the identity. Backends
// document how they treat duplicate identities on Insert and whether
// BulkInsert is atomic.
type Repository[E seedwork.Identifiable] interface {
	Insert(ctx context.Context, entity E) error
	BulkInsert(ctx context.Context, entities []E) error
	FindById(ctx context.Context, id string) (E, error)
	FindAll(ctx context.Context) ([]E, error)
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id string) error
}

// Searchable adds filtered, sorted and paginated queries. A sort on a field
// outside SortableFields is ignored by the backends in this module.
type Searchable[E seedwork.Identifiable] interface {
	Repository[E]
	SortableFields() []string
	Search(ctx context.Context, params SearchParams) (SearchResult[E], error)
}
