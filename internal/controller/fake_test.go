package controller

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Makepad-fr/menuadmin/internal/model"
)

// fakeAPI implements CategoryAPI and MenuItemAPI in memory and records
// calls. Hooks, when set, replace the default behavior of one operation.
type fakeAPI struct {
	mu     sync.Mutex
	cats   []model.Category
	items  []model.MenuItem
	calls  map[string]int
	nextID int

	errs map[string]error

	uploadURL      string
	uploadedBytes  string
	lastNewCat     model.NewCategory
	lastCatPatch   model.CategoryPatch
	lastNewItem    model.NewMenuItem
	lastItemPatch  model.MenuItemPatch
	catEcho        *model.CategoryPatch
	itemEcho       *model.MenuItemPatch
	updateCatHook  func(ctx context.Context, id string, p model.CategoryPatch) (model.CategoryPatch, error)
	// createdCatHook runs after a category is stored, before the response.
	createdCatHook func(c model.Category)
	deleteItemHook func(ctx context.Context, id string) error
}

func newFake() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}, errs: map[string]error{}, uploadURL: "https://cdn.example/up.png"}
}

func (f *fakeAPI) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := f.record("upload"); err != nil {
		return "", err
	}
	b, _ := io.ReadAll(r)
	f.mu.Lock()
	f.uploadedBytes = string(b)
	f.mu.Unlock()
	return f.uploadURL, nil
}

func (f *fakeAPI) ListCategories(ctx context.Context, q *model.CategoryQuery) ([]model.Category, error) {
	if err := f.record("listCategories"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Category(nil), f.cats...), nil
}

func (f *fakeAPI) CreateCategory(ctx context.Context, in model.NewCategory) (model.Category, error) {
	if err := f.record("createCategory"); err != nil {
		return model.Category{}, err
	}
	f.mu.Lock()
	f.lastNewCat = in
	f.nextID++
	c := model.Category{ID: fmt.Sprintf("c%d", f.nextID), Name: in.Name, Description: in.Description, ImageURL: in.ImageURL}
	f.cats = append(f.cats, c)
	hook := f.createdCatHook
	f.mu.Unlock()
	if hook != nil {
		hook(c)
	}
	return c, nil
}

func (f *fakeAPI) UpdateCategory(ctx context.Context, id string, p model.CategoryPatch) (model.CategoryPatch, error) {
	if err := f.record("updateCategory"); err != nil {
		return model.CategoryPatch{}, err
	}
	f.mu.Lock()
	f.lastCatPatch = p
	hook, echo := f.updateCatHook, f.catEcho
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, id, p)
	}
	if echo != nil {
		return *echo, nil
	}
	return p, nil
}

func (f *fakeAPI) DeleteCategory(ctx context.Context, id string) error {
	return f.record("deleteCategory")
}

func (f *fakeAPI) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	if err := f.record("listMenuItems"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.MenuItem(nil), f.items...), nil
}

func (f *fakeAPI) CreateMenuItem(ctx context.Context, in model.NewMenuItem) (model.MenuItem, error) {
	if err := f.record("createMenuItem"); err != nil {
		return model.MenuItem{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastNewItem = in
	f.nextID++
	return model.MenuItem{ID: fmt.Sprintf("m%d", f.nextID), Name: in.Name, Description: in.Description, Price: in.Price, CategoryID: in.CategoryID, Image: in.Image}, nil
}

func (f *fakeAPI) UpdateMenuItem(ctx context.Context, id string, p model.MenuItemPatch) (model.MenuItemPatch, error) {
	if err := f.record("updateMenuItem"); err != nil {
		return model.MenuItemPatch{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastItemPatch = p
	if f.itemEcho != nil {
		return *f.itemEcho, nil
	}
	return p, nil
}

func (f *fakeAPI) DeleteMenuItem(ctx context.Context, id string) error {
	if err := f.record("deleteMenuItem"); err != nil {
		return err
	}
	if f.deleteItemHook != nil {
		return f.deleteItemHook(ctx, id)
	}
	return nil
}
