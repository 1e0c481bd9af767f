// Package fallback implements remote-first data access with a local
// key-value fallback.
//
// Every operation first calls the backend. On any backend error the
// operation is replayed against a JSON array stored under a fixed key in the
// local store, and the backend error is logged and dropped. Callers cannot
// tell which side served them.
//
// Local writes read the whole collection, apply the change and write the
// whole collection back. There is no locking: two concurrent fallback writes
// to the same key race and the last one wins. Rows written locally are never
// pushed to the backend.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/client"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
)

// Backend is the part of client.Client the accessor needs.
type Backend interface {
	Select(ctx context.Context, table string, q client.Query, out any) error
	Insert(ctx context.Context, table string, row any, out any) error
	Update(ctx context.Context, table, id string, patch any, out any) error
	Delete(ctx context.Context, table, id string) error
}

// Store is the part of the kv repository the accessor needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Location names where an entity lives on each side.
type Location struct {
	// Table is the backend table.
	Table string
	// LocalKey is the kv key holding the local JSON array.
	LocalKey string
	// ParentColumn is the backend column matched by List's parentID.
	// Empty for top-level entities.
	ParentColumn string
}

type Accessor[T models.Entity] struct {
	backend Backend
	store   Store
	log     logging.Logger
	loc     Location
}

// New builds an accessor. A nil backend makes every call go straight to the
// local store, which is how the CLI runs in offline mode.
func New[T models.Entity](backend Backend, store Store, log logging.Logger, loc Location) *Accessor[T] {
	if log == nil {
		log = logging.Nop{}
	}
	return &Accessor[T]{
		backend: backend,
		store:   store,
		log:     log.With("table", loc.Table),
		loc:     loc,
	}
}

func (a *Accessor[T]) remote(ctx context.Context, op string, call func(Backend) error) bool {
	if a.backend == nil {
		return false
	}
	if err := call(a.backend); err != nil {
		a.log.Warn(ctx, "backend call failed, using local storage", "op", op, "err", err)
		return false
	}
	return true
}

// List returns the rows whose parent column equals parentID, or every row
// when parentID is empty. The result is never nil.
func (a *Accessor[T]) List(ctx context.Context, parentID string) ([]T, error) {
	q := client.Query{Order: "created_at.desc"}
	if parentID != "" && a.loc.ParentColumn != "" {
		q.Eq = map[string]string{a.loc.ParentColumn: parentID}
	}

	var rows []T
	if a.remote(ctx, "select", func(b Backend) error { return b.Select(ctx, a.loc.Table, q, &rows) }) {
		if rows == nil {
			rows = []T{}
		}
		return rows, nil
	}

	local, err := a.load(ctx)
	if err != nil {
		return []T{}, err
	}
	return filterByParent(local, parentID), nil
}

// Get returns the row with the given id and whether it was found.
func (a *Accessor[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T

	var rows []T
	if a.remote(ctx, "get", func(b Backend) error {
		return b.Select(ctx, a.loc.Table, client.Query{Eq: map[string]string{"id": id}, Limit: 1}, &rows)
	}) {
		if len(rows) == 0 {
			return zero, false, nil
		}
		return rows[0], true, nil
	}

	local, err := a.load(ctx)
	if err != nil {
		return zero, false, err
	}
	if i := indexOf(local, id); i >= 0 {
		return local[i], true, nil
	}
	return zero, false, nil
}

// Create inserts item. Locally the new row is placed first.
func (a *Accessor[T]) Create(ctx context.Context, item T) (T, error) {
	var rows []T
	if a.remote(ctx, "insert", func(b Backend) error { return b.Insert(ctx, a.loc.Table, item, &rows) }) {
		return firstOr(rows, item), nil
	}
	return item, a.mutate(ctx, func(items []T) []T { return upsert(items, item) })
}

// Update replaces the row with item's id. Locally a missing row is inserted.
func (a *Accessor[T]) Update(ctx context.Context, item T) (T, error) {
	var rows []T
	if a.remote(ctx, "update", func(b Backend) error { return b.Update(ctx, a.loc.Table, item.EntityID(), item, &rows) }) {
		return firstOr(rows, item), nil
	}
	return item, a.mutate(ctx, func(items []T) []T { return upsert(items, item) })
}

// Delete removes the row with the given id. Deleting a missing row is not an
// error.
func (a *Accessor[T]) Delete(ctx context.Context, id string) error {
	if a.remote(ctx, "delete", func(b Backend) error { return b.Delete(ctx, a.loc.Table, id) }) {
		return nil
	}
	return a.mutate(ctx, func(items []T) []T { return remove(items, id) })
}

func (a *Accessor[T]) load(ctx context.Context) ([]T, error) {
	raw, err := a.store.Get(ctx, a.loc.LocalKey)
	if err != nil {
		return nil, fmt.Errorf("local read %s: %w", a.loc.LocalKey, err)
	}
	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("local decode %s: %w", a.loc.LocalKey, err)
	}
	return items, nil
}

func (a *Accessor[T]) mutate(ctx context.Context, fn func([]T) []T) error {
	items, err := a.load(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(fn(items))
	if err != nil {
		return fmt.Errorf("local encode %s: %w", a.loc.LocalKey, err)
	}
	if err := a.store.Set(ctx, a.loc.LocalKey, raw); err != nil {
		return fmt.Errorf("local write %s: %w", a.loc.LocalKey, err)
	}
	return nil
}
