package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagesIndex(t *testing.T) {
	app, _ := newSeededApp(t, testConfig())

	resp, body := do(t, app, httptest.NewRequest("GET", "/products", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "kalem 10")
	assert.Contains(t, body, "kalem 20")
	assert.Contains(t, body, "Defterler", "category names are resolved")

	resp, _ = do(t, app, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))
}

func TestPagesDetails(t *testing.T) {
	app, _ := newSeededApp(t, testConfig())

	resp, body := do(t, app, httptest.NewRequest("GET", "/products/details/2", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "kalem 20")
	assert.Contains(t, body, "Mavi")

	resp, body = do(t, app, httptest.NewRequest("GET", "/products/details?id=1", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "kalem 10")
}

func TestPagesDetailsWithoutIDRedirects(t *testing.T) {
	app, _ := newSeededApp(t, testConfig())

	resp, _ := do(t, app, httptest.NewRequest("GET", "/products/details", nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))
}

func TestPagesDetailsNotFound(t *testing.T) {
	app, _ := newSeededApp(t, testConfig())

	for _, target := range []string{"/products/details/0", "/products/details/42", "/products/details/x1"} {
		resp, body := do(t, app, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
		assert.Contains(t, body, "no longer available", target)
	}
}

func TestPagesCreate(t *testing.T) {
	app, store := newSeededApp(t, testConfig())

	resp, body := do(t, app, httptest.NewRequest("GET", "/products/create", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="csrf"`)
	assert.Contains(t, body, "Kalemler", "category dropdown is filled")

	tok := csrfToken(t, app)
	form := url.Values{
		"name":        {"kalem 30"},
		"price":       {"200"},
		"stock":       {"100"},
		"color":       {"Siyah"},
		"category_id": {"1"},
	}
	resp, _ = do(t, app, formRequest("/products/create", tok, form))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))

	all, err := store.Products.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "kalem 30", all[2].Name)
	assert.Equal(t, 200.0, all[2].Price)
}

func TestPagesCreateBadForm(t *testing.T) {
	app, store := newSeededApp(t, testConfig())

	tok := csrfToken(t, app)
	form := url.Values{"name": {"kalem 30"}, "price": {"lots"}, "category_id": {"1"}}
	resp, body := do(t, app, formRequest("/products/create", tok, form))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Please check")

	all, err := store.Products.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPagesCSRFRequired(t *testing.T) {
	app, store := newSeededApp(t, testConfig())

	form := url.Values{"name": {"kalem 30"}, "category_id": {"1"}}
	resp, _ := do(t, app, formRequest("/products/create", "", form))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	all, err := store.Products.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPagesEdit(t *testing.T) {
	app, store := newSeededApp(t, testConfig())
	ctx := context.Background()

	resp, body := do(t, app, httptest.NewRequest("GET", "/products/edit/1", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="kalem 10"`)

	tok := csrfToken(t, app)
	form := url.Values{
		"id": {"1"}, "name": {"kalem 11"}, "price": {"110"}, "stock": {"5"},
		"color": {"Kirmizi"}, "category_id": {"1"},
	}
	resp, _ = do(t, app, formRequest("/products/edit/1", tok, form))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	p, err := store.Products.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "kalem 11", p.Name)

	// Route and form disagree on the id: nothing changes.
	form.Set("id", "2")
	form.Set("name", "hijacked")
	resp, _ = do(t, app, formRequest("/products/edit/1", tok, form))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	p, err = store.Products.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "kalem 20", p.Name)
}

func TestPagesDelete(t *testing.T) {
	app, store := newSeededApp(t, testConfig())
	ctx := context.Background()

	resp, body := do(t, app, httptest.NewRequest("GET", "/products/delete/2", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Delete kalem 20?")

	p, err := store.Products.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, p, "confirmation page must not delete")

	tok := csrfToken(t, app)
	resp, _ = do(t, app, formRequest("/products/delete/2", tok, url.Values{}))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	p, err = store.Products.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, p)

	resp, _ = do(t, app, formRequest("/products/delete/2", tok, url.Values{}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPagesUnknownRoute(t *testing.T) {
	app, _ := newSeededApp(t, testConfig())

	resp, body := do(t, app, httptest.NewRequest("GET", "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
}

// The form pages come from the embedded templates, shared field partial included.
func TestPagesFormsRenderFromEmbeddedTemplates(t *testing.T) {
	cfg := testConfig()
	cfg.TemplateDir = ""
	app, _ := newSeededApp(t, cfg)

	for _, target := range []string{"/products/create", "/products/edit/1"} {
		resp, body := do(t, app, httptest.NewRequest("GET", target, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode, target)
		assert.NotContains(t, body, "no such template", target)
		assert.Contains(t, body, `<input name="name"`, target)
		assert.Contains(t, body, `<select name="category_id">`, target)
	}
}
