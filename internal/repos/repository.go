package repos

import "context"

// Repository is the storage capability a controller may use for one entity type.
// Absence is reported as a nil entity with a nil error.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	// Create assigns the new identifier onto entity; any id it carried is ignored.
	Create(ctx context.Context, entity *T) error
	// Update overwrites the row matching entity's id. A missing id is a no-op.
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
}

// Record is satisfied by pointers to entities with an int64 primary key.
type Record[T any] interface {
	*T
	PrimaryKey() int64
	SetPrimaryKey(id int64)
}
