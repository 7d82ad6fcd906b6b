package controller

import (
	"context"
	"fmt"

	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/Makepad-fr/menuadmin/internal/store"
	"go.uber.org/zap"
)

type MenuItemAPI interface {
	ImageUploader
	ListMenuItems(ctx context.Context) ([]model.MenuItem, error)
	CreateMenuItem(ctx context.Context, in model.NewMenuItem) (model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, patch model.MenuItemPatch) (model.MenuItemPatch, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

type MenuItemTab struct {
	tab[model.MenuItem]
	api MenuItemAPI
}

func NewMenuItemTab(api MenuItemAPI, logger *zap.Logger) *MenuItemTab {
	return &MenuItemTab{tab: newTab[model.MenuItem]("menu item", logger), api: api}
}

func (t *MenuItemTab) Load(ctx context.Context) error {
	items, err := t.api.ListMenuItems(ctx)
	if err != nil {
		return err
	}
	t.list.Set(items)
	t.logger.Debug("menu items loaded", zap.Int("count", len(items)))
	return nil
}

func (t *MenuItemTab) Submit(ctx context.Context, id string, f form.MenuItemForm) (model.MenuItem, error) {
	if id == "" {
		return t.Create(ctx, f)
	}
	return t.Update(ctx, id, f)
}

func (t *MenuItemTab) Create(ctx context.Context, f form.MenuItemForm) (model.MenuItem, error) {
	if err := f.Validate(); err != nil {
		return model.MenuItem{}, err
	}
	a := t.begin(ctx, "", Submitting)
	defer a.done()

	uploaded, err := uploadAttachment(a.ctx, t.api, f.Image)
	if err != nil {
		return model.MenuItem{}, t.failed(a, "upload", err)
	}
	in, err := f.NewMenuItem(uploaded)
	if err != nil {
		return model.MenuItem{}, err
	}
	created, err := t.api.CreateMenuItem(a.ctx, in)
	if err != nil {
		return model.MenuItem{}, t.failed(a, "create", err)
	}
	if !t.commit(a, func(items []model.MenuItem) []model.MenuItem {
		return store.Put(items, created)
	}) {
		return model.MenuItem{}, ErrSuperseded
	}
	t.logger.Info("menu item created", zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (t *MenuItemTab) Update(ctx context.Context, id string, f form.MenuItemForm) (model.MenuItem, error) {
	prior, ok := t.list.Get(id)
	if !ok {
		return model.MenuItem{}, fmt.Errorf("update menu item %s: %w", id, ErrNotInList)
	}
	if err := f.Validate(); err != nil {
		return model.MenuItem{}, err
	}
	a := t.begin(ctx, id, Submitting)
	defer a.done()

	uploaded, err := uploadAttachment(a.ctx, t.api, f.Image)
	if err != nil {
		return model.MenuItem{}, t.failed(a, "upload", err)
	}
	patch, err := f.Patch(prior, uploaded)
	if err != nil {
		return model.MenuItem{}, err
	}
	if patch.Empty() {
		return prior, nil
	}
	echo, err := t.api.UpdateMenuItem(a.ctx, id, patch)
	if err != nil {
		return model.MenuItem{}, t.failed(a, "update", err)
	}

	merged := echo.ApplyTo(prior)
	if !t.commit(a, func(items []model.MenuItem) []model.MenuItem {
		out, _ := store.Update(items, id, func(m model.MenuItem) model.MenuItem {
			merged = echo.ApplyTo(m)
			return merged
		})
		return out
	}) {
		return model.MenuItem{}, ErrSuperseded
	}
	t.logger.Info("menu item updated", zap.String("id", id))
	return merged, nil
}

func (t *MenuItemTab) Delete(ctx context.Context, id string) error {
	return t.remove(ctx, id, t.api.DeleteMenuItem)
}
