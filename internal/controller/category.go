package controller

import (
	"context"
	"fmt"

	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/Makepad-fr/menuadmin/internal/store"
	"go.uber.org/zap"
)

type CategoryAPI interface {
	ImageUploader
	ListCategories(ctx context.Context, q *model.CategoryQuery) ([]model.Category, error)
	CreateCategory(ctx context.Context, in model.NewCategory) (model.Category, error)
	UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (model.CategoryPatch, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryTab struct {
	tab[model.Category]
	api CategoryAPI
	// resync re-fetches the whole list after a successful write.
	resync bool
}

type CategoryOption func(*CategoryTab)

// WithResync makes every successful write re-fetch the list, trading an
// extra request for guaranteed agreement with the server.
func WithResync(on bool) CategoryOption {
	return func(t *CategoryTab) { t.resync = on }
}

func NewCategoryTab(api CategoryAPI, logger *zap.Logger, opts ...CategoryOption) *CategoryTab {
	t := &CategoryTab{tab: newTab[model.Category]("category", logger), api: api}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load replaces the local list with the server's.
func (t *CategoryTab) Load(ctx context.Context) error {
	cats, err := t.api.ListCategories(ctx, nil)
	if err != nil {
		return err
	}
	t.list.Set(cats)
	t.logger.Debug("categories loaded", zap.Int("count", len(cats)))
	return nil
}

// Submit creates when id is "" and updates otherwise.
func (t *CategoryTab) Submit(ctx context.Context, id string, f form.CategoryForm) (model.Category, error) {
	if id == "" {
		return t.Create(ctx, f)
	}
	return t.Update(ctx, id, f)
}

func (t *CategoryTab) Create(ctx context.Context, f form.CategoryForm) (model.Category, error) {
	if err := f.Validate(); err != nil {
		return model.Category{}, err
	}
	a := t.begin(ctx, "", Submitting)
	defer a.done()

	uploaded, err := uploadAttachment(a.ctx, t.api, f.Image)
	if err != nil {
		return model.Category{}, t.failed(a, "upload", err)
	}
	in, err := f.NewCategory(uploaded)
	if err != nil {
		return model.Category{}, err
	}
	created, err := t.api.CreateCategory(a.ctx, in)
	if err != nil {
		return model.Category{}, t.failed(a, "create", err)
	}
	if !t.commit(a, func(items []model.Category) []model.Category {
		return store.Put(items, created)
	}) {
		return model.Category{}, ErrSuperseded
	}
	t.logger.Info("category created", zap.String("id", created.ID), zap.String("name", created.Name))
	t.afterWrite(ctx)
	return created, nil
}

// Update sends only the fields that differ from the local copy and merges
// the server's echo into it. An unchanged form sends nothing.
func (t *CategoryTab) Update(ctx context.Context, id string, f form.CategoryForm) (model.Category, error) {
	prior, ok := t.list.Get(id)
	if !ok {
		return model.Category{}, fmt.Errorf("update category %s: %w", id, ErrNotInList)
	}
	if err := f.Validate(); err != nil {
		return model.Category{}, err
	}
	a := t.begin(ctx, id, Submitting)
	defer a.done()

	uploaded, err := uploadAttachment(a.ctx, t.api, f.Image)
	if err != nil {
		return model.Category{}, t.failed(a, "upload", err)
	}
	patch, err := f.Patch(prior, uploaded)
	if err != nil {
		return model.Category{}, err
	}
	if patch.Empty() {
		t.logger.Debug("category unchanged", zap.String("id", id))
		return prior, nil
	}
	echo, err := t.api.UpdateCategory(a.ctx, id, patch)
	if err != nil {
		return model.Category{}, t.failed(a, "update", err)
	}

	// Server fields win; fields it left out keep the local value.
	merged := echo.ApplyTo(prior)
	if !t.commit(a, func(items []model.Category) []model.Category {
		out, _ := store.Update(items, id, func(c model.Category) model.Category {
			merged = echo.ApplyTo(c)
			return merged
		})
		return out
	}) {
		return model.Category{}, ErrSuperseded
	}
	t.logger.Info("category updated", zap.String("id", id))
	t.afterWrite(ctx)
	return merged, nil
}

func (t *CategoryTab) Delete(ctx context.Context, id string) error {
	if err := t.remove(ctx, id, t.api.DeleteCategory); err != nil {
		return err
	}
	t.afterWrite(ctx)
	return nil
}

func (t *CategoryTab) afterWrite(ctx context.Context) {
	if !t.resync {
		return
	}
	if err := t.Load(ctx); err != nil {
		t.logger.Warn("category resync failed; keeping local list", zap.Error(err))
	}
}
