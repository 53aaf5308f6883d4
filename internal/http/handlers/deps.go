package handlers

import (
	"stockroom/internal/controllers"
	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

type Deps struct {
	ProductAPI      *APIHandler[domain.Product, *domain.Product]
	CategoryAPI     *APIHandler[domain.Category, *domain.Category]
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	Metrics         *Metrics
}

func NewDeps(store *repos.Store, m *Metrics) *Deps {
	catalogSvc := services.NewCatalogService(store.Categories, store.Products)

	return &Deps{
		ProductAPI:  NewAPIHandler[domain.Product, *domain.Product]("product", apiBase+"/products", store.Products, m),
		CategoryAPI: NewAPIHandler[domain.Category, *domain.Category]("category", apiBase+"/categories", store.Categories, m),
		ProductHandler: &ProductHandler{
			Pages:   controllers.NewView[domain.Product, *domain.Product](store.Products),
			Catalog: catalogSvc,
			Metrics: m,
		},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		Metrics:         m,
	}
}
