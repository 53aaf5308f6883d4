package services

import (
	"context"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

// CatalogService answers the category <-> product questions that span two
// repositories. It only talks to storage through the Repository interface.
type CatalogService struct {
	Cats  repos.Repository[domain.Category]
	Prods repos.Repository[domain.Product]
}

func NewCatalogService(cats repos.Repository[domain.Category], prods repos.Repository[domain.Product]) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.GetAll(ctx)
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, catID int64) ([]domain.Product, error) {
	all, err := s.Prods.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range all {
		if p.CategoryID == catID {
			out = append(out, p)
		}
	}
	return out, nil
}

// CategoryWithProducts returns nil when the category does not exist.
func (s *CatalogService) CategoryWithProducts(ctx context.Context, catID int64) (*domain.Category, error) {
	c, err := s.Cats.GetByID(ctx, catID)
	if err != nil || c == nil {
		return nil, err
	}
	c.Products, err = s.ListProductsByCategory(ctx, catID)
	if err != nil {
		return nil, err
	}
	return c, nil
}
