package config

import (
	"Ginraidee/domain"
	"Ginraidee/entities"
	"Ginraidee/pkg/jwt"
	"Ginraidee/pkg/llm"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type scriptedCompleter struct {
	text string
	err  error
}

func (s scriptedCompleter) Name() string { return "scripted" }

func (s scriptedCompleter) Complete(context.Context, llm.ChatRequest) (llm.ChatResponse, error) {
	if s.err != nil {
		return llm.ChatResponse{}, s.err
	}
	return llm.ChatResponse{Choices: []string{s.text}}, nil
}

func newTestApp(t *testing.T, completer llm.ChatCompleter) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.InventoryItem{}))

	app, err := NewApp(db, AppOptions{
		Completer: completer,
		Now:       func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, domain.Response) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out domain.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, res := call(t, app, http.MethodPost, "/api/v1/auth/register", "", domain.RegisterRequest{
		Email:    email,
		Password: "secret123",
		Name:     "Cook",
		Language: "en",
	})
	require.Equal(t, fiber.StatusCreated, status, res.Error)

	var auth domain.AuthResponse
	require.NoError(t, json.Unmarshal(res.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func addItem(t *testing.T, app *fiber.App, token, name, date string) domain.InventoryItemResponse {
	t.Helper()
	status, res := call(t, app, http.MethodPost, "/api/v1/inventory", token, domain.AddInventoryItemRequest{
		Name:           name,
		Category:       "Vegetables",
		Quantity:       2,
		Unit:           "pcs",
		ExpirationDate: date,
	})
	require.Equal(t, fiber.StatusCreated, status, res.Error)

	var item domain.InventoryItemResponse
	require.NoError(t, json.Unmarshal(res.Data, &item))
	return item
}

func TestNewAppRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	_, err = NewApp(db, AppOptions{Completer: scriptedCompleter{text: "soup"}})
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)
}

func TestInventoryLifecycle(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "soup"})
	token := register(t, app, "cook@example.com")

	carrot := addItem(t, app, token, "Carrot", "2024-03-11")
	assert.Equal(t, "🥕", carrot.Emoji)
	addItem(t, app, token, "Milk", "2024-03-08")
	addItem(t, app, token, "Rice", "2024-04-01")

	status, res := call(t, app, http.MethodGet, "/api/v1/inventory", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	var items []domain.InventoryItemResponse
	require.NoError(t, json.Unmarshal(res.Data, &items))
	assert.Len(t, items, 3)

	status, res = call(t, app, http.MethodGet, "/api/v1/inventory/stats", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	var stats domain.InventoryStatsResponse
	require.NoError(t, json.Unmarshal(res.Data, &stats))
	assert.Equal(t, domain.InventoryStatsResponse{TotalItems: 3, ExpiredItems: 1, TodayItems: 1, FreshItems: 1}, stats)

	status, res = call(t, app, http.MethodGet, "/api/v1/inventory/expiring/soon", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(res.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, "Carrot", items[1].Name)

	status, res = call(t, app, http.MethodGet, "/api/v1/inventory/by-date/2024-03-11", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(res.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, carrot.ID, items[0].ID)

	name := "Baby carrot"
	status, res = call(t, app, http.MethodPut, "/api/v1/inventory/"+carrot.ID, token, domain.UpdateInventoryItemRequest{Name: &name})
	require.Equal(t, fiber.StatusOK, status, res.Error)
	var updated domain.InventoryItemResponse
	require.NoError(t, json.Unmarshal(res.Data, &updated))
	assert.Equal(t, "Baby carrot", updated.Name)
	assert.Equal(t, float64(2), updated.Quantity)

	status, _ = call(t, app, http.MethodDelete, "/api/v1/inventory/"+carrot.ID, token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/api/v1/inventory/"+carrot.ID, token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = call(t, app, http.MethodDelete, "/api/v1/inventory/"+carrot.ID, token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestInventoryIsScopedToOwner(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "soup"})
	alice := register(t, app, "alice@example.com")
	bob := register(t, app, "bob@example.com")

	item := addItem(t, app, alice, "Egg", "2024-03-12")

	status, _ := call(t, app, http.MethodGet, "/api/v1/inventory/"+item.ID, bob, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = call(t, app, http.MethodDelete, "/api/v1/inventory/"+item.ID, bob, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = call(t, app, http.MethodGet, "/api/v1/inventory/"+item.ID, alice, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAddItemRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "soup"})
	token := register(t, app, "cook@example.com")

	status, res := call(t, app, http.MethodPost, "/api/v1/inventory", token, domain.AddInventoryItemRequest{
		Name:           "Carrot",
		Category:       "Vegetables",
		Quantity:       1,
		Unit:           "pcs",
		ExpirationDate: "11/03/2024",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, res.Success)

	status, _ = call(t, app, http.MethodPost, "/api/v1/inventory", token, domain.AddInventoryItemRequest{
		Name:           "Carrot",
		Category:       "Spaceship",
		Quantity:       1,
		Unit:           "pcs",
		ExpirationDate: "2024-03-11",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestBlankNameIsBadRequest(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "soup"})
	token := register(t, app, "cook@example.com")

	status, _ := call(t, app, http.MethodPost, "/api/v1/inventory", token, map[string]any{
		"name":            "   ",
		"category":        "Vegetables",
		"quantity":        1,
		"unit":            "pcs",
		"expiration_date": "2024-03-11",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	item := addItem(t, app, token, "Leek", "2024-03-11")
	status, _ = call(t, app, http.MethodPut, "/api/v1/inventory/"+item.ID, token, map[string]any{"name": "   "})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, res := call(t, app, http.MethodGet, "/api/v1/inventory/"+item.ID, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	var got domain.InventoryItemResponse
	require.NoError(t, json.Unmarshal(res.Data, &got))
	assert.Equal(t, "Leek", got.Name)
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "soup"})

	status, _ := call(t, app, http.MethodGet, "/api/v1/inventory", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = call(t, app, http.MethodGet, "/api/v1/inventory", "not-a-jwt", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginAndRefresh(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "soup"})
	register(t, app, "cook@example.com")

	status, _ := call(t, app, http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{Email: "cook@example.com", Password: "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, res := call(t, app, http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{Email: "cook@example.com", Password: "secret123"})
	require.Equal(t, fiber.StatusOK, status)
	var auth domain.AuthResponse
	require.NoError(t, json.Unmarshal(res.Data, &auth))

	status, _ = call(t, app, http.MethodPost, "/api/v1/auth/refresh", auth.Token, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, http.MethodPost, "/api/v1/auth/register", "", domain.RegisterRequest{
		Email: "cook@example.com", Password: "secret123", Name: "Again",
	})
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestGuestOwner(t *testing.T) {
	t.Setenv("GUEST_USER_ID", "3f1c1b9e-8a51-4c1e-9a36-5b7e0d2f4a10")
	app := newTestApp(t, scriptedCompleter{text: "soup"})

	item := addItem(t, app, "", "Tofu", "2024-03-12")
	assert.NotEmpty(t, item.ID)

	status, _ := call(t, app, http.MethodGet, "/api/v1/inventory/"+item.ID, "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestGenerateRecipe(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "Stir-fry the Carrot with garlic."})
	token := register(t, app, "cook@example.com")
	carrot := addItem(t, app, token, "Carrot", "2024-03-11")

	status, res := call(t, app, http.MethodPost, "/api/v1/recipes/generate", token, domain.GenerateRecipeRequest{
		ItemIDs: []string{carrot.ID},
	})
	require.Equal(t, fiber.StatusOK, status, res.Error)

	var recipe domain.RecipeResult
	require.NoError(t, json.Unmarshal(res.Data, &recipe))
	assert.Equal(t, domain.RecipeSourceGenerated, recipe.Source)
	assert.Equal(t, []string{carrot.ID}, recipe.UsedIngredientIDs)

	status, _ = call(t, app, http.MethodPost, "/api/v1/recipes/generate", token, domain.GenerateRecipeRequest{})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSuggestRecipesFallsBackWhenProviderFails(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{err: errors.New("provider down")})
	token := register(t, app, "cook@example.com")

	status, res := call(t, app, http.MethodPost, "/api/v1/recipes/suggest", token, domain.SuggestRecipeRequest{})
	require.Equal(t, fiber.StatusOK, status)
	var empty domain.SuggestionResult
	require.NoError(t, json.Unmarshal(res.Data, &empty))
	assert.Nil(t, empty.Suggestion)
	assert.NotEmpty(t, empty.Message)

	addItem(t, app, token, "Milk", "2024-03-10")
	status, res = call(t, app, http.MethodPost, "/api/v1/recipes/suggest", token, domain.SuggestRecipeRequest{})
	require.Equal(t, fiber.StatusOK, status)
	var suggestion domain.SuggestionResult
	require.NoError(t, json.Unmarshal(res.Data, &suggestion))
	require.NotNil(t, suggestion.Suggestion)
	assert.Equal(t, domain.RecipeSourceFallback, suggestion.Suggestion.Source)
	assert.Len(t, suggestion.ExpiringItems, 1)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "soup"})

	status, res := call(t, app, http.MethodGet, "/api/v1/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, res.Success)
	assert.Equal(t, domain.MessageFailedProcessRequest, res.Message)
}

func TestCatalogPingAndMetrics(t *testing.T) {
	app := newTestApp(t, scriptedCompleter{text: "soup"})

	status, res := call(t, app, http.MethodGet, "/api/v1/catalog", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(res.Data), "Vegetables")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "ginraidee_http_requests_total"))
}
