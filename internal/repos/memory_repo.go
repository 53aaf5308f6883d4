package repos

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepo is a transient Repository. Ids start at 1 and are never reused.
type MemoryRepo[T any, P Record[T]] struct {
	mu       sync.RWMutex
	rows     map[int64]T
	nextID   int64
	onDelete []func(ctx context.Context, deleted *T) error
}

func NewMemoryRepo[T any, P Record[T]]() *MemoryRepo[T, P] {
	return &MemoryRepo[T, P]{rows: make(map[int64]T)}
}

// OnDelete registers fn to run after a row is removed. Hooks run outside the
// lock, so they may touch other repositories (e.g. to cascade).
func (r *MemoryRepo[T, P]) OnDelete(fn func(ctx context.Context, deleted *T) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDelete = append(r.onDelete, fn)
}

func (r *MemoryRepo[T, P]) GetAll(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.rows[id])
	}
	return out, nil
}

func (r *MemoryRepo[T, P]) GetByID(_ context.Context, id int64) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *MemoryRepo[T, P]) Create(_ context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	P(entity).SetPrimaryKey(r.nextID)
	r.rows[r.nextID] = *entity
	return nil
}

func (r *MemoryRepo[T, P]) Update(_ context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := P(entity).PrimaryKey()
	if _, ok := r.rows[id]; ok {
		r.rows[id] = *entity
	}
	return nil
}

func (r *MemoryRepo[T, P]) Delete(ctx context.Context, entity *T) error {
	id := P(entity).PrimaryKey()

	r.mu.Lock()
	v, ok := r.rows[id]
	delete(r.rows, id)
	hooks := slices.Clone(r.onDelete)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	for _, fn := range hooks {
		if err := fn(ctx, &v); err != nil {
			return err
		}
	}
	return nil
}

// DeleteWhere removes every row match accepts and reports how many went.
// Delete hooks are not run.
func (r *MemoryRepo[T, P]) DeleteWhere(match func(*T) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, v := range r.rows {
		if match(&v) {
			delete(r.rows, id)
			n++
		}
	}
	return n
}
