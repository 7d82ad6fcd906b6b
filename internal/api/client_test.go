package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend is a small in-memory stand-in for the menu API.
type backend struct {
	mu         sync.Mutex
	categories []map[string]any
	calls      map[string]int // "METHOD /path" -> count
	lastQuery  string
	lastHeader http.Header
	lastBody   []byte
	nextID     int

	// override, when set, answers every request instead of the default routes.
	override http.HandlerFunc
}

func newBackend(t *testing.T, cats ...map[string]any) (*backend, *Client) {
	t.Helper()
	b := &backend{categories: cats, calls: map[string]int{}, nextID: 100}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, New(srv.URL+"/api", WithToken("secret"))
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/api")
	route := path
	if strings.HasPrefix(path, "/categories/") {
		route = "/categories/{id}"
	}
	if strings.HasPrefix(path, "/menuitem/") {
		route = "/menuitem/{id}"
	}

	b.mu.Lock()
	b.calls[r.Method+" "+route]++
	b.lastQuery = r.URL.RawQuery
	b.lastHeader = r.Header.Clone()
	b.lastBody = body
	override := b.override
	b.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case r.Method == http.MethodGet && route == "/categories":
		_ = json.NewEncoder(w).Encode(map[string]any{"categories": b.categories})
	case r.Method == http.MethodPost && route == "/categories":
		var in map[string]any
		_ = json.Unmarshal(body, &in)
		b.nextID++
		in["_id"] = fmt.Sprintf("c%d", b.nextID)
		b.categories = append(b.categories, in)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	case r.Method == http.MethodPut && route == "/categories/{id}":
		var in map[string]any
		_ = json.Unmarshal(body, &in)
		in["_id"] = strings.TrimPrefix(path, "/categories/")
		_ = json.NewEncoder(w).Encode(map[string]any{"category": in})
	case r.Method == http.MethodDelete && route == "/categories/{id}":
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func cat(id, name string) map[string]any {
	return map[string]any{"_id": id, "name": name}
}

func TestListCategoriesMapsIDsAndQuery(t *testing.T) {
	b, c := newBackend(t,
		map[string]any{"_id": "1", "name": "Drinks", "description": "Cold", "imageUrl": "http://img/1.png"},
		cat("2", "Mains"),
	)

	got, err := c.ListCategories(context.Background(), &model.CategoryQuery{Q: "dr", Limit: 10, Page: 2, Strict: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "Drinks", got[0].Name)
	assert.Equal(t, "Cold", model.Deref(got[0].Description))
	assert.Equal(t, "http://img/1.png", model.Deref(got[0].ImageURL))
	assert.Nil(t, got[1].Description)
	assert.Equal(t, "limit=10&page=2&q=dr&strict=true", b.lastQuery)

	assert.Equal(t, "Bearer secret", b.lastHeader.Get("Authorization"))
	_, err = uuid.Parse(b.lastHeader.Get("X-Request-ID"))
	assert.NoError(t, err, "request id should be a uuid")
}

func TestListCategoriesEmptyEnvelope(t *testing.T) {
	b, c := newBackend(t)
	b.override = func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{}`)) }

	got, err := c.ListCategories(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListCategoriesFailure(t *testing.T) {
	b, c := newBackend(t)
	b.override = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}

	_, err := c.ListCategories(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.Contains(t, err.Error(), "failed to fetch categories")
}

func TestCreateCategoryRejectsDuplicateWithoutWriting(t *testing.T) {
	b, c := newBackend(t, cat("1", "desserts"))

	_, err := c.CreateCategory(context.Background(), model.NewCategory{Name: "Desserts"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, 1, b.count("GET /categories"))
	assert.Equal(t, 0, b.count("POST /categories"))
}

func TestCreateCategory(t *testing.T) {
	b, c := newBackend(t, cat("1", "Drinks"))

	got, err := c.CreateCategory(context.Background(), model.NewCategory{
		Name:        "Desserts",
		Description: model.Ptr("Sweet things"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Desserts", got.Name)
	assert.Equal(t, "Sweet things", model.Deref(got.Description))
	assert.Equal(t, 1, b.count("POST /categories"))
	assert.JSONEq(t, `{"name":"Desserts","description":"Sweet things"}`, string(b.lastBody))
}

func TestCreateCategoryRequiresName(t *testing.T) {
	b, c := newBackend(t)
	_, err := c.CreateCategory(context.Background(), model.NewCategory{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Equal(t, 0, b.count("GET /categories"))
}

func TestCreateCategoryWithoutIDIsInvalid(t *testing.T) {
	b, c := newBackend(t)
	b.override = func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"categories":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"name":"Soups"}`))
	}
	_, err := c.CreateCategory(context.Background(), model.NewCategory{Name: "Soups"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestUpdateCategoryKeepingOwnName(t *testing.T) {
	b, c := newBackend(t, cat("42", "Same"), cat("43", "Other"))

	echo, err := c.UpdateCategory(context.Background(), "42", model.CategoryPatch{Name: model.Ptr("Same")})
	require.NoError(t, err)
	assert.Equal(t, "Same", model.Deref(echo.Name))
	assert.Equal(t, 1, b.count("PUT /categories/{id}"))
}

func TestUpdateCategoryCaseOnlyRename(t *testing.T) {
	_, c := newBackend(t, cat("42", "same"))

	_, err := c.UpdateCategory(context.Background(), "42", model.CategoryPatch{Name: model.Ptr("Same")})
	assert.NoError(t, err)
}

func TestUpdateCategoryRejectsNameOfAnotherCategory(t *testing.T) {
	b, c := newBackend(t, cat("42", "Starters"), cat("43", "Mains"))

	_, err := c.UpdateCategory(context.Background(), "42", model.CategoryPatch{Name: model.Ptr("MAINS")})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, 0, b.count("PUT /categories/{id}"))
}

func TestUpdateCategoryUnknownID(t *testing.T) {
	b, c := newBackend(t, cat("1", "Drinks"))

	_, err := c.UpdateCategory(context.Background(), "nope", model.CategoryPatch{Description: model.Ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, b.count("PUT /categories/{id}"))
}

func TestUpdateCategoryNonJSONBody(t *testing.T) {
	b, c := newBackend(t)
	b.override = func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"categories":[{"_id":"1","name":"Drinks"}]}`))
			return
		}
		_, _ = w.Write([]byte("OK"))
	}

	_, err := c.UpdateCategory(context.Background(), "1", model.CategoryPatch{Description: model.Ptr("x")})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestDeleteCategoryErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"json message", http.StatusConflict, `{"message":"category has menu items"}`, "failed to delete category: category has menu items"},
		{"json error", http.StatusBadRequest, `{"error":"bad id"}`, "failed to delete category: bad id"},
		{"raw text", http.StatusInternalServerError, "database down", "failed to delete category: database down"},
		{"empty body", http.StatusNotFound, "", "failed to delete category: status 404"},
		{"json without message", http.StatusBadGateway, `{"ok":false}`, "failed to delete category: status 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c := newBackend(t)
			b.override = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}
			err := c.DeleteCategory(context.Background(), "1")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.True(t, IsStatus(err, tt.status))
		})
	}
}

func TestDeleteCategoryEmptySuccessBody(t *testing.T) {
	b, c := newBackend(t, cat("1", "Drinks"))
	require.NoError(t, c.DeleteCategory(context.Background(), "1"))
	assert.Equal(t, 1, b.count("DELETE /categories/{id}"))
}

func TestTransportErrorIsNotStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL)

	_, err := c.ListMenuItems(context.Background())
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}
