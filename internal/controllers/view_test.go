package controllers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/controllers"
	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/repos/repotest"
)

func newView() (*controllers.View[domain.Product, *domain.Product], *productFake) {
	fake := repotest.New[domain.Product, *domain.Product](kalemler()...)
	return controllers.NewView[domain.Product, *domain.Product](fake), fake
}

func TestViewIndex(t *testing.T) {
	view, _ := newView()
	res, err := view.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, controllers.Render, res.Kind)
	assert.Equal(t, controllers.ViewIndex, res.View)
	assert.Len(t, res.Model, 2)
}

func TestViewDetailsWithoutIDRedirects(t *testing.T) {
	view, fake := newView()
	res, err := view.Details(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, controllers.Redirect, res.Kind)
	assert.Equal(t, controllers.ActionIndex, res.Action)
	assert.Empty(t, fake.Calls())
}

func TestViewDetailsUnknownID(t *testing.T) {
	view, _ := newView()
	id := int64(0)
	res, err := view.Details(context.Background(), &id)
	require.NoError(t, err)
	assert.Equal(t, controllers.NotFoundPage, res.Kind)
}

func TestViewDetails(t *testing.T) {
	view, _ := newView()
	id := int64(2)
	res, err := view.Details(context.Background(), &id)
	require.NoError(t, err)
	assert.Equal(t, controllers.Render, res.Kind)
	assert.Equal(t, controllers.ViewDetails, res.View)
	assert.Equal(t, kalemler()[1], *res.Model.(*domain.Product))
}

func TestViewCreateRedirectsToIndex(t *testing.T) {
	view, fake := newView()
	p := domain.Product{Name: "kalem 30", Price: 200, Stock: 100, CategoryID: 1}
	res, err := view.Create(context.Background(), &p)
	require.NoError(t, err)
	assert.Equal(t, controllers.Redirect, res.Kind)
	assert.Equal(t, controllers.ActionIndex, res.Action)
	assert.Equal(t, 1, fake.Count(repotest.Create))
}

func TestViewCreateForm(t *testing.T) {
	view, fake := newView()
	res := view.CreateForm()
	assert.Equal(t, controllers.ViewCreate, res.View)
	assert.Equal(t, &domain.Product{}, res.Model)
	assert.Empty(t, fake.Calls())
}

func TestViewEdit(t *testing.T) {
	view, fake := newView()
	ctx := context.Background()

	res, err := view.Edit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, controllers.ViewEdit, res.View)

	res, err = view.Edit(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, controllers.NotFoundPage, res.Kind)

	p := kalemler()[0]
	res, err = view.EditPost(ctx, 2, &p)
	require.NoError(t, err)
	assert.Equal(t, controllers.NotFoundPage, res.Kind)
	assert.Zero(t, fake.Count(repotest.Update))

	p.Stock = 49
	res, err = view.EditPost(ctx, 1, &p)
	require.NoError(t, err)
	assert.Equal(t, controllers.Redirect, res.Kind)
	assert.Equal(t, 1, fake.Count(repotest.Update))
}

func TestViewDelete(t *testing.T) {
	view, fake := newView()
	ctx := context.Background()

	res, err := view.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, controllers.ViewDelete, res.View)
	assert.Zero(t, fake.Count(repotest.Delete), "confirmation page must not delete")

	res, err = view.DeleteConfirmed(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, controllers.NotFoundPage, res.Kind)
	assert.Zero(t, fake.Count(repotest.Delete))

	res, err = view.DeleteConfirmed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, controllers.Redirect, res.Kind)
	assert.Equal(t, 1, fake.Count(repotest.Delete))
}

func TestViewStorageError(t *testing.T) {
	view, fake := newView()
	fake.Err = errors.New("connection reset")
	_, err := view.Index(context.Background())
	assert.Error(t, err)
}

// The view controller creates through a real backend and the product shows up
// on the index afterwards.
func TestViewCreateWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := repos.NewMemoryStore()
	require.NoError(t, repos.SeedIfEmpty(ctx, store))
	cats, err := store.Categories.GetAll(ctx)
	require.NoError(t, err)

	view := controllers.NewView[domain.Product, *domain.Product](store.Products)
	newProduct := domain.Product{Name: "kalem 30", Price: 200, Stock: 100, CategoryID: cats[0].ID}
	res, err := view.Create(ctx, &newProduct)
	require.NoError(t, err)
	assert.Equal(t, controllers.ActionIndex, res.Action)

	res, err = view.Index(ctx)
	require.NoError(t, err)
	var names []string
	for _, p := range res.Model.([]domain.Product) {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "kalem 30")
}
