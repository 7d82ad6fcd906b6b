package form

import (
	"testing"

	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageFile(t *testing.T) {
	tests := []struct {
		in       string
		wantPath string
		wantOK   bool
	}{
		{"", "", false},
		{"https://cdn.example/a.png", "", false},
		{"http://cdn.example/a.png", "", false},
		{"./photos/a.png", "./photos/a.png", true},
		{" /tmp/a.png ", "/tmp/a.png", true},
		{"ftp://host/a.png", "ftp://host/a.png", true},
	}
	for _, tt := range tests {
		p, ok := ImageFile(tt.in)
		if p != tt.wantPath || ok != tt.wantOK {
			t.Errorf("ImageFile(%q) = (%q, %v), want (%q, %v)", tt.in, p, ok, tt.wantPath, tt.wantOK)
		}
	}
}

func TestCategoryFormNewCategory(t *testing.T) {
	in, err := CategoryForm{Name: "  Desserts ", Description: ""}.NewCategory("")
	require.NoError(t, err)
	assert.Equal(t, model.NewCategory{Name: "Desserts"}, in)

	in, err = CategoryForm{Name: "Drinks", Description: "Cold", Image: "https://img/x.png"}.NewCategory("")
	require.NoError(t, err)
	assert.Equal(t, "https://img/x.png", model.Deref(in.ImageURL))

	in, err = CategoryForm{Name: "Drinks", Image: "./x.png"}.NewCategory("https://cdn/up.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/up.png", model.Deref(in.ImageURL))

	in, err = CategoryForm{Name: "Drinks", Image: "./x.png"}.NewCategory("")
	require.NoError(t, err)
	assert.Nil(t, in.ImageURL, "a file path is never sent as a URL")
}

func TestCategoryFormRequiresName(t *testing.T) {
	_, err := CategoryForm{Name: "   "}.NewCategory("")
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "name is required")
}

func TestCategoryFormPatchOnlyChangedFields(t *testing.T) {
	prior := model.Category{ID: "1", Name: "Drinks", Description: model.Ptr("Cold")}

	p, err := CategoryFormFrom(prior).Patch(prior, "")
	require.NoError(t, err)
	assert.True(t, p.Empty())

	p, err = CategoryForm{Name: "Drinks", Description: "Hot and cold"}.Patch(prior, "")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryPatch{Description: model.Ptr("Hot and cold")}, p)

	p, err = CategoryForm{Name: "Beverages", Description: "Cold"}.Patch(prior, "https://cdn/new.png")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryPatch{Name: model.Ptr("Beverages"), ImageURL: model.Ptr("https://cdn/new.png")}, p)
}

func TestMenuItemFormValidation(t *testing.T) {
	tests := []struct {
		name string
		form MenuItemForm
		want string
	}{
		{"missing name", MenuItemForm{Price: "1"}, "name is required"},
		{"missing price", MenuItemForm{Name: "Tea"}, "price is required"},
		{"price not a number", MenuItemForm{Name: "Tea", Price: "cheap"}, "price must be a number"},
		{"negative price", MenuItemForm{Name: "Tea", Price: "-1"}, "price must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.NewMenuItem("")
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMenuItemFormNewMenuItem(t *testing.T) {
	in, err := MenuItemForm{Name: "Latte", Description: "Milk", Price: "3.50", CategoryID: "c1", Image: "https://img/l.png"}.NewMenuItem("")
	require.NoError(t, err)
	assert.Equal(t, model.NewMenuItem{Name: "Latte", Description: "Milk", Price: 3.5, CategoryID: "c1", Image: model.Ptr("https://img/l.png")}, in)

	in, err = MenuItemForm{Name: "Water", Price: "0"}.NewMenuItem("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, in.Price)
}

func TestMenuItemFormPatch(t *testing.T) {
	prior := model.MenuItem{ID: "m1", Name: "Latte", Description: "Milk", Price: 3.5, CategoryID: "c1"}

	p, err := MenuItemFormFrom(prior).Patch(prior, "")
	require.NoError(t, err)
	assert.True(t, p.Empty())

	f := MenuItemFormFrom(prior)
	f.Price = "4"
	f.CategoryID = "c2"
	p, err = f.Patch(prior, "")
	require.NoError(t, err)
	assert.Equal(t, model.MenuItemPatch{Price: model.Ptr(4.0), CategoryID: model.Ptr("c2")}, p)

	f.Price = "-2"
	_, err = f.Patch(prior, "")
	assert.ErrorIs(t, err, ErrInvalid)
}
