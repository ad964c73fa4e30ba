package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hungerhub/catalog"
	"hungerhub/fallback"
	"hungerhub/models"
	"hungerhub/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app  *fiber.App
	repo *repository.MenuRepository
}

func newTestApp(t *testing.T, fallbackContent string) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:routes_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.MenuItem{}, &models.User{}, &models.Feedback{}))

	fbPath := filepath.Join(t.TempDir(), "mydata.json")
	if fallbackContent != "" {
		require.NoError(t, os.WriteFile(fbPath, []byte(fallbackContent), 0644))
	}

	repo := repository.NewMenuRepository(gdb)
	app := fiber.New()
	SetupRoutes(app, &Handler{
		Service:  catalog.NewService(repo, fallback.NewStore(fbPath)),
		Users:    repository.NewUserRepository(gdb),
		Feedback: repository.NewFeedbackRepository(gdb),
		Sessions: session.New(),
		Hub:      NewHub(),
	})
	return &testEnv{app: app, repo: repo}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestPing(t *testing.T) {
	env := newTestApp(t, "")
	resp := env.do(t, "GET", "/ping", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "pong", string(body))
}

func TestGetMenuUsesFallbackWhenEmpty(t *testing.T) {
	env := newTestApp(t, `{"menuItems": [{"name": "Fries"}]}`)

	resp := env.do(t, "GET", "/api/menu", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "fallback", resp.Header.Get("X-Menu-Source"))

	var items []models.MenuItem
	decodeJSON(t, resp, &items)
	require.Len(t, items, 1)
	require.Equal(t, "Fries", items[0].Name)
}

func TestGetMenuPrefersRepository(t *testing.T) {
	env := newTestApp(t, `{"menuItems": [{"name": "Fries"}]}`)

	_, err := env.repo.Create(models.MenuItemInput{Name: "Pizza"})
	require.NoError(t, err)

	resp := env.do(t, "GET", "/api/menu", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "repository", resp.Header.Get("X-Menu-Source"))

	var items []models.MenuItem
	decodeJSON(t, resp, &items)
	require.Len(t, items, 1)
	require.Equal(t, "Pizza", items[0].Name)
}

func TestGetMenuEmptyIsNotAnError(t *testing.T) {
	env := newTestApp(t, "") // no fallback document either

	resp := env.do(t, "GET", "/api/menu", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []models.MenuItem
	decodeJSON(t, resp, &items)
	require.Empty(t, items)
}

func TestCreateMenuItem(t *testing.T) {
	env := newTestApp(t, "")

	resp := env.do(t, "POST", "/api/menu", `{"name": "Pizza", "price": "$8.99"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item models.MenuItem
	decodeJSON(t, resp, &item)
	require.NotZero(t, item.ID)
	require.Equal(t, "Pizza", item.Name)
	require.Equal(t, "general", item.Category)
	require.False(t, item.CreatedAt.IsZero())
}

func TestCreateMenuItemBlankName(t *testing.T) {
	env := newTestApp(t, "")

	for _, body := range []string{`{}`, `{"name": ""}`, `{"name": "   "}`, `{"price": "$5"}`} {
		resp := env.do(t, "POST", "/api/menu", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %s", body)
	}

	items, err := env.repo.List()
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestUpdateMenuItem(t *testing.T) {
	env := newTestApp(t, "")

	created, err := env.repo.Create(models.MenuItemInput{Name: "Pizza"})
	require.NoError(t, err)

	resp := env.do(t, "PUT", fmt.Sprintf("/api/menu/%d", created.ID), `{"name": "Deluxe Pizza", "price": "$10.99"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var item models.MenuItem
	decodeJSON(t, resp, &item)
	require.Equal(t, created.ID, item.ID)
	require.Equal(t, "Deluxe Pizza", item.Name)
	require.Equal(t, "$10.99", item.Price)
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	env := newTestApp(t, "")

	resp := env.do(t, "PUT", "/api/menu/9999", `{"name": "x"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, "PUT", "/api/menu/not-a-number", `{"name": "x"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteMenuItem(t *testing.T) {
	env := newTestApp(t, "")

	created, err := env.repo.Create(models.MenuItemInput{Name: "Pizza"})
	require.NoError(t, err)

	resp := env.do(t, "DELETE", fmt.Sprintf("/api/menu/%d", created.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	require.Equal(t, true, body["success"])

	resp = env.do(t, "DELETE", fmt.Sprintf("/api/menu/%d", created.ID), "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSeedMenu(t *testing.T) {
	env := newTestApp(t, `{"menuItems": [
		{"name": "Pizza"}, {"name": "Fries"}
	]}`)

	_, err := env.repo.Create(models.MenuItemInput{Name: "leftover"})
	require.NoError(t, err)

	resp := env.do(t, "GET", "/api/seed-menu", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	decodeJSON(t, resp, &body)
	require.Equal(t, 2, body["inserted"])

	items, err := env.repo.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestSeedMenuMissingDocument(t *testing.T) {
	env := newTestApp(t, "")

	resp := env.do(t, "GET", "/api/seed-menu", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateFeedback(t *testing.T) {
	env := newTestApp(t, "")

	resp := env.do(t, "POST", "/api/feedback", `{"name": "Ada", "rating": 5, "message": "great"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, "POST", "/api/feedback", `{"name": "Ada", "rating": 9}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, "POST", "/api/feedback", `{"rating": 3}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestApp(t, "")

	resp := env.do(t, "POST", "/auth/register", `{"name": "Ada", "email": "ada@example.com", "password": "s3cret"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, "POST", "/auth/register", `{"name": "Ada", "email": "ada@example.com", "password": "other"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, "POST", "/auth/login", `{"email": "ada@example.com", "password": "s3cret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	_, leaked := user["PasswordHash"]
	require.False(t, leaked)

	resp = env.do(t, "POST", "/auth/login", `{"email": "ada@example.com", "password": "wrong"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiresLogin(t *testing.T) {
	env := newTestApp(t, "")

	resp := env.do(t, "GET", "/admin", "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/auth/login", resp.Header.Get("Location"))
}
