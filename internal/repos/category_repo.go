package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Deleting a category cascades to its products through the products.category_id
// foreign key (ON DELETE CASCADE); see ensureSchema.
var categoryTable = Table{
	Name:    "categories",
	Columns: []string{"name"},
}

type CategoryRepo = SQLRepo[domain.Category, *domain.Category]

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo {
	return NewSQLRepo[domain.Category, *domain.Category](db, categoryTable)
}
