package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-storefront-api/internal/model"
	"go-storefront-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	byID map[uuid.UUID]*model.User
}

func (m *mockUserRepo) FindByUsername(username string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(user *model.User) error { return nil }

func (m *mockUserRepo) FindAll() ([]model.User, error) { return nil, nil }

func (m *mockUserRepo) AdminExists() (bool, error) { return false, nil }

func newTestApp() (*fiber.App, *jwt.Service, *mockUserRepo) {
	repo := &mockUserRepo{byID: make(map[uuid.UUID]*model.User)}
	tokens := jwt.NewService("test-secret", time.Hour)

	app := fiber.New()
	app.Get("/admin-only", RequireAuth(repo, tokens), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ok"})
	})
	return app, tokens, repo
}

func addUser(repo *mockUserRepo, role string) *model.User {
	user := &model.User{Username: "someone", Role: role}
	user.ID = uuid.New()
	repo.byID[user.ID] = user
	return user
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Message
}

func TestRequireAuth_NoToken(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Not authorized, no token", message(t, resp))
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Not authorized, no token", message(t, resp))
}

func TestRequireAuth_BadToken(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Not authorized, token failed", message(t, resp))
}

func TestRequireAuth_UnknownAccount(t *testing.T) {
	app, tokens, _ := newTestApp()

	token, err := tokens.Generate(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Not authorized, token failed", message(t, resp))
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	app, tokens, repo := newTestApp()
	user := addUser(repo, model.RoleUser)

	token, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Not authorized as an admin", message(t, resp))
}

func TestRequireAdmin_Admin(t *testing.T) {
	app, tokens, repo := newTestApp()
	admin := addUser(repo, model.RoleAdmin)

	token, err := tokens.Generate(admin.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
