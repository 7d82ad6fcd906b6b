package controller

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Makepad-fr/menuadmin/internal/api"
	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func seededMenuItemTab(t *testing.T) (*MenuItemTab, *fakeAPI) {
	t.Helper()
	f := newFake()
	f.items = []model.MenuItem{
		{ID: "m1", Name: "Latte", Description: "Milk", Price: 3.5, CategoryID: "c1"},
		{ID: "m2", Name: "Soup", Description: "Hot", Price: 5, CategoryID: "c2", Image: model.Ptr("https://img/s.png")},
	}
	tab := NewMenuItemTab(f, zaptest.NewLogger(t))
	require.NoError(t, tab.Load(context.Background()))
	return tab, f
}

func TestMenuItemCreate(t *testing.T) {
	tab, f := seededMenuItemTab(t)

	created, err := tab.Submit(context.Background(), "", form.MenuItemForm{Name: "Tea", Price: "2.25", CategoryID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, model.NewMenuItem{Name: "Tea", Price: 2.25, CategoryID: "c1"}, f.lastNewItem)

	items := tab.Items()
	require.Len(t, items, 3)
	assert.Equal(t, created, items[2])
}

func TestMenuItemCreateRejectsBadPrice(t *testing.T) {
	tab, f := seededMenuItemTab(t)
	_, err := tab.Create(context.Background(), form.MenuItemForm{Name: "Tea", Price: "free"})
	assert.ErrorIs(t, err, form.ErrInvalid)
	assert.Equal(t, 0, f.count("createMenuItem"))
}

func TestMenuItemUpdateMergesEcho(t *testing.T) {
	tab, f := seededMenuItemTab(t)
	// The server echoes only the price.
	f.itemEcho = &model.MenuItemPatch{Price: model.Ptr(4.0)}

	fm := form.MenuItemFormFrom(model.MenuItem{ID: "m1", Name: "Latte", Description: "Milk", Price: 4, CategoryID: "c1"})
	got, err := tab.Submit(context.Background(), "m1", fm)
	require.NoError(t, err)

	assert.Equal(t, model.MenuItemPatch{Price: model.Ptr(4.0)}, f.lastItemPatch)
	assert.Equal(t, model.MenuItem{ID: "m1", Name: "Latte", Description: "Milk", Price: 4, CategoryID: "c1"}, got)
	items := tab.Items()
	assert.Equal(t, got, items[0])
	assert.Equal(t, "Soup", items[1].Name)
	assert.Equal(t, 5.0, items[1].Price)
}

func TestMenuItemUpdateWithUploadedImage(t *testing.T) {
	tab, f := seededMenuItemTab(t)
	p := filepath.Join(t.TempDir(), "soup.jpg")
	require.NoError(t, os.WriteFile(p, []byte("JPG"), 0o644))

	fm := form.MenuItemFormFrom(model.MenuItem{Name: "Soup", Description: "Hot", Price: 5, CategoryID: "c2"})
	fm.Image = p
	got, err := tab.Update(context.Background(), "m2", fm)
	require.NoError(t, err)
	assert.Equal(t, model.MenuItemPatch{Image: model.Ptr(f.uploadURL)}, f.lastItemPatch)
	assert.Equal(t, f.uploadURL, model.Deref(got.Image))
}

func TestMenuItemDelete(t *testing.T) {
	tab, f := seededMenuItemTab(t)

	require.NoError(t, tab.Delete(context.Background(), "m1"))
	assert.Equal(t, []string{"m2"}, ids(tab.Items()))

	assert.ErrorIs(t, tab.Delete(context.Background(), "m1"), ErrNotInList)
	assert.Equal(t, 1, f.count("deleteMenuItem"))
}

func TestMenuItemDeleteWinsOverLaterUpdate(t *testing.T) {
	tab, f := seededMenuItemTab(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	f.deleteItemHook = func(ctx context.Context, id string) error {
		close(entered)
		<-release
		return ctx.Err()
	}
	f.errs["updateMenuItem"] = &api.StatusError{Op: "update menu item", StatusCode: 404, Message: "not found"}

	deleted := make(chan error, 1)
	go func() { deleted <- tab.Delete(context.Background(), "m1") }()
	<-entered

	_, err := tab.Update(context.Background(), "m1", form.MenuItemForm{Name: "Flat white", Price: "3.5", CategoryID: "c1"})
	assert.True(t, api.IsStatus(err, 404), "got %v", err)
	close(release)

	require.NoError(t, <-deleted, "a sent delete must not be cancelled")
	assert.Equal(t, []string{"m2"}, ids(tab.Items()))
	assert.Equal(t, Idle, tab.State())
}

func TestMenuItemDeleteFailureKeepsEntry(t *testing.T) {
	tab, f := seededMenuItemTab(t)
	f.deleteItemHook = func(ctx context.Context, id string) error {
		assert.Equal(t, Deleting, tab.State())
		return errors.New("failed to delete menu item: status 500")
	}

	err := tab.Delete(context.Background(), "m2")
	require.Error(t, err)
	assert.Len(t, tab.Items(), 2)
	assert.Equal(t, Idle, tab.State())
}
