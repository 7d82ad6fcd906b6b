package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Makepad-fr/menuadmin/internal/api"
	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs the category tab against the real client and a canned server.
func TestCategoryTabAgainstHTTPBackend(t *testing.T) {
	var writes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/categories":
			_, _ = w.Write([]byte(`{"categories":[{"_id":"41","name":"desserts"},{"_id":"42","name":"Same"}]}`))
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/categories/"):
			writes.Add(1)
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			body["_id"] = strings.TrimPrefix(r.URL.Path, "/categories/")
			_ = json.NewEncoder(w).Encode(body)
		default:
			writes.Add(1)
			http.Error(w, "unexpected", http.StatusTeapot)
		}
	}))
	defer srv.Close()

	tab := NewCategoryTab(api.New(srv.URL), nil)
	require.NoError(t, tab.Load(context.Background()))

	_, err := tab.Create(context.Background(), form.CategoryForm{Name: "Desserts"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, int32(0), writes.Load())
	assert.Len(t, tab.Items(), 2)

	got, err := tab.Update(context.Background(), "42", form.CategoryForm{Name: "Same", Description: "now described"})
	require.NoError(t, err)
	assert.Equal(t, "Same", got.Name)
	assert.Equal(t, "now described", *got.Description)
	assert.Equal(t, int32(1), writes.Load())

	_, err = tab.Update(context.Background(), "42", form.CategoryForm{Name: "DESSERTS", Description: "now described"})
	assert.ErrorIs(t, err, api.ErrAlreadyExists)
	assert.Equal(t, int32(1), writes.Load())
}
