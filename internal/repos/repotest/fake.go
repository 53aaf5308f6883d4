// Package repotest provides a call-recording repository double.
package repotest

import (
	"context"
	"sync"

	"stockroom/internal/repos"
)

const (
	GetAll  = "GetAll"
	GetByID = "GetByID"
	Create  = "Create"
	Update  = "Update"
	Delete  = "Delete"
)

type Call struct {
	Method string
	ID     int64
}

// Fake serves Rows and records every call. When Err is set every method
// returns it after recording the call.
type Fake[T any, P repos.Record[T]] struct {
	mu     sync.Mutex
	rows   []T
	calls  []Call
	nextID int64

	Err error
}

// New returns a Fake holding rows. Created entities get ids above 1000.
func New[T any, P repos.Record[T]](rows ...T) *Fake[T, P] {
	return &Fake[T, P]{rows: append([]T(nil), rows...), nextID: 1000}
}

func (f *Fake[T, P]) record(method string, id int64) error {
	f.calls = append(f.calls, Call{Method: method, ID: id})
	return f.Err
}

func (f *Fake[T, P]) GetAll(context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(GetAll, 0); err != nil {
		return nil, err
	}
	return append([]T{}, f.rows...), nil
}

func (f *Fake[T, P]) GetByID(_ context.Context, id int64) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(GetByID, id); err != nil {
		return nil, err
	}
	if i := f.index(id); i >= 0 {
		v := f.rows[i]
		return &v, nil
	}
	return nil, nil
}

func (f *Fake[T, P]) Create(_ context.Context, entity *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Create, P(entity).PrimaryKey()); err != nil {
		return err
	}
	f.nextID++
	P(entity).SetPrimaryKey(f.nextID)
	f.rows = append(f.rows, *entity)
	return nil
}

func (f *Fake[T, P]) Update(_ context.Context, entity *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := P(entity).PrimaryKey()
	if err := f.record(Update, id); err != nil {
		return err
	}
	if i := f.index(id); i >= 0 {
		f.rows[i] = *entity
	}
	return nil
}

func (f *Fake[T, P]) Delete(_ context.Context, entity *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := P(entity).PrimaryKey()
	if err := f.record(Delete, id); err != nil {
		return err
	}
	if i := f.index(id); i >= 0 {
		f.rows = append(f.rows[:i], f.rows[i+1:]...)
	}
	return nil
}

func (f *Fake[T, P]) index(id int64) int {
	for i := range f.rows {
		if P(&f.rows[i]).PrimaryKey() == id {
			return i
		}
	}
	return -1
}

// Count reports how many times method was invoked.
func (f *Fake[T, P]) Count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Calls returns the recorded calls in order.
func (f *Fake[T, P]) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Mutations counts Create, Update and Delete calls together.
func (f *Fake[T, P]) Mutations() int {
	return f.Count(Create) + f.Count(Update) + f.Count(Delete)
}
