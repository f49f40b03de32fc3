package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/app/repositories"
	"github.com/shashiranjanraj/qrmenu/app/routes"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/database"
	"github.com/shashiranjanraj/qrmenu/pkg/kvstore"
	"github.com/shashiranjanraj/qrmenu/pkg/qrcode"
	"github.com/shashiranjanraj/qrmenu/pkg/router"
	"github.com/shashiranjanraj/qrmenu/pkg/storage"
)

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type api struct {
	t *testing.T
	h http.Handler
}

func newAPI(t *testing.T) *api {
	t.Helper()

	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, db.AutoMigrate(&models.User{}))

	disk, err := storage.NewLocal(t.TempDir(), "http://localhost/storage")
	require.NoError(t, err)

	r := router.New()
	routes.RegisterAPI(r, routes.APIDeps{
		Auth: services.NewAuthService(repositories.NewUserRepository(db)),
		Menus: services.NewMenuService(kvstore.NewMemory(), services.MenuOptions{
			AppURL:   "https://menus.example.com",
			Renderer: qrcode.NewRenderer("https://qr.example.com/", "200x200"),
			Notifier: qrcode.NopNotifier{},
			Policy:   qrcode.PolicyRequired,
		}),
		Disk: disk,
	})
	return &api{t: t, h: r.Handler()}
}

func (a *api) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)

	// redirects carry an HTML body; only the JSON envelope is decoded
	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (a *api) register(email string) string {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "password123", "businessName": "Cafe Italiano",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(a.t, out.Token)
	return out.Token
}

func menuBody() map[string]interface{} {
	return map[string]interface{}{
		"businessName": "Cafe Italiano",
		"themeId":      "1",
		"categories":   []map[string]string{{"id": "2", "name": "Main Dishes"}},
		"items": []map[string]interface{}{
			{"name": "Margherita", "price": 12.5, "category": "2"},
		},
	}
}

func TestMenuLifecycle(t *testing.T) {
	a := newAPI(t)
	owner := a.register("owner@example.com")
	other := a.register("other@example.com")

	rec, env := a.do(http.MethodPost, "/api/menus", owner, menuBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Menu
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "/api/menus/"+created.ID, rec.Header().Get("Location"))
	assert.Equal(t, "https://menus.example.com/menu/"+created.ID, created.MenuURL)
	assert.NotEmpty(t, created.QRCodeURL)

	rec, env = a.do(http.MethodGet, "/api/menus", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.Menu
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	rec, env = a.do(http.MethodGet, "/api/public/menus/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var public models.PublicMenu
	require.NoError(t, json.Unmarshal(env.Data, &public))
	assert.Equal(t, created.ID, public.Menu.ID)
	require.NotNil(t, public.Theme)
	assert.Equal(t, "1", public.Theme.ID)

	rec, env = a.do(http.MethodGet, "/api/public/menus/"+created.ID+"/qr", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Zero(t, env.Status)
	assert.Equal(t, created.QRCodeURL, rec.Header().Get("Location"))

	rec, _ = a.do(http.MethodPatch, "/api/menus/"+created.ID, other, map[string]string{"businessName": "Stolen"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = a.do(http.MethodPatch, "/api/menus/"+created.ID, owner, map[string]string{"businessName": "Trattoria"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Menu
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Trattoria", updated.BusinessName)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	rec, _ = a.do(http.MethodDelete, "/api/menus/"+created.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = a.do(http.MethodDelete, "/api/menus/"+created.ID, owner, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/public/menus/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/api/menus", "", menuBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", env.Message)

	rec, _ = a.do(http.MethodGet, "/api/menus", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateMenuValidation(t *testing.T) {
	a := newAPI(t)
	token := a.register("owner@example.com")

	body := menuBody()
	body["themeId"] = "99"
	rec, env := a.do(http.MethodPost, "/api/menus", token, body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "themeId")

	body = menuBody()
	body["items"] = []interface{}{}
	rec, env = a.do(http.MethodPost, "/api/menus", token, body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "items")
}

func TestCatalogEndpoints(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []models.MenuCategory
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Equal(t, services.DefaultCategories, cats)

	rec, _ = a.do(http.MethodGet, "/api/themes/2", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/themes/404", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDuplicateRegistration(t *testing.T) {
	a := newAPI(t)
	a.register("owner@example.com")

	rec, _ := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "OWNER@example.com", "password": "password123", "businessName": "Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
