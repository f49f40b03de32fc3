package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	appctx "github.com/shashiranjanraj/qrmenu/pkg/ctx"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"id": "m1"})
		assert.Equal(t, http.StatusOK, c.WrittenStatus())
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"data":{"id":"m1"}}`, rec.Body.String())
}

func TestParam(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/menus/{id}", appctx.Wrap(func(c *appctx.Context) {
		c.Success(c.Param("id"))
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menus/abc", nil))
	assert.JSONEq(t, `{"status":200,"data":"abc"}`, rec.Body.String())
}

type input struct {
	BusinessName string `json:"businessName" validate:"required"`
}

func TestBindJSON(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
		ok   bool
	}{
		{"valid", `{"businessName":"Cafe Italiano"}`, http.StatusOK, true},
		{"malformed", `{"businessName":`, http.StatusBadRequest, false},
		{"invalid", `{}`, http.StatusUnprocessableEntity, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			appctx.Wrap(func(c *appctx.Context) {
				var in input
				ok := c.BindJSON(&in)
				assert.Equal(t, tc.ok, ok)
				if ok {
					c.Success(in)
				}
			})(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestValidationErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	appctx.Wrap(func(c *appctx.Context) {
		var in input
		c.BindJSON(&in)
	})(rec, req)

	assert.Contains(t, rec.Body.String(), `"businessName":"The businessName field is required."`)
}
