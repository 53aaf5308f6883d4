package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

// Store bundles the repositories of one backend.
type Store struct {
	Products   Repository[domain.Product]
	Categories Repository[domain.Category]

	db *sqlx.DB // nil for the memory backend
}

// NewStore opens the backend named by driver: "sqlite", "pgx" or "memory".
func NewStore(driver, dsn string) (*Store, error) {
	if driver == "memory" {
		return NewMemoryStore(), nil
	}
	db, err := OpenDB(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return NewSQLStore(db), nil
}

func NewSQLStore(db *sqlx.DB) *Store {
	return &Store{
		Products:   NewProductRepo(db),
		Categories: NewCategoryRepo(db),
		db:         db,
	}
}

// NewMemoryStore wires the category -> product cascade that the SQL schema
// gets from its foreign key.
func NewMemoryStore() *Store {
	products := NewMemoryRepo[domain.Product, *domain.Product]()
	categories := NewMemoryRepo[domain.Category, *domain.Category]()
	categories.OnDelete(func(_ context.Context, c *domain.Category) error {
		products.DeleteWhere(func(p *domain.Product) bool { return p.CategoryID == c.ID })
		return nil
	})
	return &Store{Products: products, Categories: categories}
}

// DB is the underlying handle, or nil for the memory backend.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
