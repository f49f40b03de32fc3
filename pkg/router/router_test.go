package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	api := r.Group("/api", mark("group"))
	api.Get("/menus", "menus.index", ok, mark("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menus", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order)
}

func TestVerbs(t *testing.T) {
	r := New()
	g := r.Group("api/menus/")
	g.Put("{id}", "", ok)
	g.Patch("{id}", "", ok)
	g.Delete("{id}", "", ok)

	for _, m := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(m, "/api/menus/m1", nil))
		assert.Equal(t, http.StatusOK, rec.Code, m)
	}
}

func TestURL(t *testing.T) {
	r := New()
	r.Group("/api").Get("/menus/{id}", "menus.show", ok)

	u, err := r.URL("menus.show", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/api/menus/abc", u)

	_, err = r.URL("menus.show", nil)
	assert.Error(t, err)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	r.Get("/health", "health", ok)
	api := r.Group("/api")
	api.Post("/menus", "menus.store", ok)
	api.Get("/menus", "menus.index", ok)

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/api/menus", Name: "menus.index"},
		{Method: http.MethodPost, Path: "/api/menus", Name: "menus.store"},
		{Method: http.MethodGet, Path: "/health", Name: "health"},
	}, r.Routes())
}
