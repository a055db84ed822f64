package gateway

import (
	"Ginraidee/domain"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, data any, errMsg string) {
	t.Helper()
	env := map[string]any{"success": status < 300}
	if data != nil {
		env["data"] = data
	}
	if errMsg != "" {
		env["error"] = errMsg
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(env))
}

func newTestGateway(t *testing.T, handler http.HandlerFunc) InventoryGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewInventoryGateway(Session{BaseURL: srv.URL + "/", Token: "secret"}, nil)
}

func TestCreateSendsPersistedFieldsWithToken(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/inventory", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var got map[string]any
		assert.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Milk", got["name"])
		assert.Equal(t, "2024-03-12", got["expiration_date"])
		assert.NotContains(t, got, "status")

		writeEnvelope(t, w, http.StatusCreated, map[string]any{
			"id":              "item-1",
			"name":            "Milk",
			"category":        "Dairy",
			"quantity":        1.5,
			"unit":            "L",
			"expiration_date": "2024-03-12",
			"status":          "today",
		}, "")
	})

	item, err := gw.Create(context.Background(), domain.AddInventoryItemRequest{
		Name:           "Milk",
		Category:       "Dairy",
		Quantity:       1.5,
		Unit:           "L",
		ExpirationDate: "2024-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, domain.NewDate(2024, 3, 12), item.ExpirationDate)
	assert.Equal(t, 1.5, item.Quantity)
}

func TestSingleItemCallsRequireAnID(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{"no data", nil},
		{"item without id", map[string]any{"name": "Milk", "expiration_date": "2024-03-12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, http.StatusCreated, tt.data, "")
			})

			item, err := gw.Create(context.Background(), domain.AddInventoryItemRequest{Name: "Milk"})
			var perr *domain.PersistenceError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, domain.StatusClassServer, perr.Class)
			assert.Empty(t, item.ID)

			_, err = gw.Get(context.Background(), "item-1")
			assert.Error(t, err)
		})
	}
}

func TestGet(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/api/v1/inventory/item-1":
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"id":              "item-1",
				"name":            "Tofu",
				"expiration_date": "2024-03-14",
			}, "")
		default:
			writeEnvelope(t, w, http.StatusNotFound, nil, "inventory item not found")
		}
	})

	item, err := gw.Get(context.Background(), "item-1")
	require.NoError(t, err)
	assert.Equal(t, "Tofu", item.Name)
	assert.Equal(t, domain.NewDate(2024, 3, 14), item.ExpirationDate)

	_, err = gw.Get(context.Background(), "item-2")
	assert.ErrorIs(t, err, domain.ErrInventoryItemNotFound)
}

func TestListDecodesItems(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inventory", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, []map[string]any{
			{"id": "a", "name": "Egg", "expiration_date": "2024-03-11"},
			{"id": "b", "name": "Rice", "expiration_date": "2024-06-01T00:00:00Z"},
		}, "")
	})

	items, err := gw.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Egg", items[0].Name)
	assert.Equal(t, domain.NewDate(2024, 6, 1), items[1].ExpirationDate)
}

func TestNotFoundIsClassified(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		writeEnvelope(t, w, http.StatusNotFound, nil, "inventory item not found")
	})

	name := "Cheese"
	_, err := gw.Update(context.Background(), "missing", domain.UpdateInventoryItemRequest{Name: &name})
	require.Error(t, err)

	var perr *domain.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, domain.StatusClassNotFound, perr.Class)
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
	assert.Equal(t, "inventory item not found", perr.Message)
	assert.ErrorIs(t, err, domain.ErrInventoryItemNotFound)
}

func TestStatusClasses(t *testing.T) {
	tests := []struct {
		status int
		want   domain.StatusClass
	}{
		{http.StatusBadRequest, domain.StatusClassClient},
		{http.StatusUnauthorized, domain.StatusClassClient},
		{http.StatusNotFound, domain.StatusClassNotFound},
		{http.StatusInternalServerError, domain.StatusClassServer},
		{http.StatusBadGateway, domain.StatusClassServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, tt.status, nil, "nope")
			})

			err := gw.Delete(context.Background(), "x")
			var perr *domain.PersistenceError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.want, perr.Class)
		})
	}
}

func TestTransportFailureIsServerClass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gw := NewInventoryGateway(Session{BaseURL: url}, nil)
	_, err := gw.List(context.Background())

	var perr *domain.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, domain.StatusClassServer, perr.Class)
	assert.Equal(t, 0, perr.StatusCode)
	assert.NotNil(t, perr.Cause)
}

func TestExpiringSoonAndByDatePaths(t *testing.T) {
	var paths []string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, []any{}, "")
	})

	_, err := gw.ExpiringSoon(context.Background())
	require.NoError(t, err)
	_, err = gw.ByDate(context.Background(), domain.NewDate(2024, 3, 9))
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/v1/inventory/expiring/soon", "/api/v1/inventory/by-date/2024-03-09"}, paths)
}

func TestNoTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, []any{}, "")
	}))
	defer srv.Close()

	_, err := NewInventoryGateway(Session{BaseURL: srv.URL}, nil).List(context.Background())
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"token": "jwt-token",
			"user":  map[string]any{"id": "u1", "email": "a@b.co"},
		}, "")
	}))
	defer srv.Close()

	res, err := NewAuthGateway(Session{BaseURL: srv.URL}, nil).Login(context.Background(), domain.LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, "u1", res.User.ID)
}

func TestRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/refresh", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer old-token" {
			writeEnvelope(t, w, http.StatusUnauthorized, nil, "token invalid")
			return
		}
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"token": "new-token",
			"user":  map[string]any{"id": "u1"},
		}, "")
	}))
	defer srv.Close()

	session := Session{BaseURL: srv.URL}
	res, err := NewAuthGateway(session.WithToken("old-token"), nil).Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-token", res.Token)

	_, err = NewAuthGateway(session, nil).Refresh(context.Background())
	var perr *domain.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
}
