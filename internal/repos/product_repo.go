package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

var productTable = Table{
	Name:    "products",
	Columns: []string{"name", "price", "stock", "color", "category_id"},
}

type ProductRepo = SQLRepo[domain.Product, *domain.Product]

func NewProductRepo(db *sqlx.DB) *ProductRepo {
	return NewSQLRepo[domain.Product, *domain.Product](db, productTable)
}
