// Package memory is the in-process reference backend of the repository
// contract. Entities are kept in insertion order behind a sync.RWMutex.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/histafrica/sharedkernel/domain/repository"
	"github.com/histafrica/sharedkernel/domain/seedwork"
)

// InMemoryRepository does not check for duplicate identities: Insert and
// BulkInsert always append, and lookups resolve to the first match.
type InMemoryRepository[E seedwork.Identifiable] struct {
	mu     sync.RWMutex
	items  []E
	entity string
}

var _ repository.Repository[seedwork.Entity] = (*InMemoryRepository[seedwork.Entity])(nil)

// NewInMemoryRepository names the entity type in NotFoundError messages.
func NewInMemoryRepository[E seedwork.Identifiable](entity string) *InMemoryRepository[E] {
	return &InMemoryRepository[E]{entity: entity, items: make([]E, 0)}
}

func (r *InMemoryRepository[E]) Insert(_ context.Context, entity E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, entity)
	return nil
}

// BulkInsert appends all entities under one lock, so readers observe either
// none or all of them.
func (r *InMemoryRepository[E]) BulkInsert(_ context.Context, entities []E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, entities...)
	return nil
}

func (r *InMemoryRepository[E]) FindById(_ context.Context, id string) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, err := r.indexOf(id)
	if err != nil {
		var zero E
		return zero, err
	}
	return r.items[idx], nil
}

func (r *InMemoryRepository[E]) FindAll(_ context.Context) ([]E, error) {
	return r.Items(), nil
}

func (r *InMemoryRepository[E]) Update(_ context.Context, entity E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, err := r.indexOf(entity.Id())
	if err != nil {
		return err
	}
	r.items[idx] = entity
	return nil
}

func (r *InMemoryRepository[E]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, err := r.indexOf(id)
	if err != nil {
		return err
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	return nil
}

// Items returns a snapshot of the stored entities in insertion order.
func (r *InMemoryRepository[E]) Items() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

func (r *InMemoryRepository[E]) indexOf(id string) (int, error) {
	idx := slices.IndexFunc(r.items, func(e E) bool { return e.Id() == id })
	if idx == -1 {
		return -1, seedwork.NotFoundError{Entity: r.entity, Id: id}
	}
	return idx, nil
}
