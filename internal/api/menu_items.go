package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Makepad-fr/menuadmin/internal/model"
)

const menuItemsPath = "/menuitem"

func (c *Client) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	res, err := c.do(ctx, http.MethodGet, menuItemsPath, nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetch menu items: %w", err)
	}
	if !res.ok() {
		return nil, &StatusError{Op: "fetch menu items", StatusCode: res.status}
	}

	var items []wireMenuItem
	if err := json.Unmarshal(res.body, &items); err != nil {
		// Some deployments wrap the list like the category endpoint does.
		var payload struct {
			MenuItems []wireMenuItem `json:"menuItems"`
		}
		if err2 := json.Unmarshal(res.body, &payload); err2 != nil {
			return nil, invalidResponse("fetch menu items", err)
		}
		items = payload.MenuItems
	}
	out := make([]model.MenuItem, 0, len(items))
	for _, w := range items {
		out = append(out, w.menuItem())
	}
	return out, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, in model.NewMenuItem) (model.MenuItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.MenuItem{}, fmt.Errorf("create menu item: %w", ErrNameRequired)
	}
	res, err := c.sendJSON(ctx, http.MethodPost, menuItemsPath, in)
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("create menu item: %w", err)
	}
	if !res.ok() {
		return model.MenuItem{}, statusError("create menu item", res.status, res.body)
	}
	w, err := decodeOne[wireMenuItem](res.body, "menuItem")
	if err != nil {
		return model.MenuItem{}, invalidResponse("create menu item", err)
	}
	if w.id() == "" {
		return model.MenuItem{}, invalidResponse("create menu item", fmt.Errorf("missing id"))
	}
	base := model.MenuItem{
		ID:          w.id(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
	}
	return w.patch().ApplyTo(base), nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, patch model.MenuItemPatch) (model.MenuItemPatch, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.MenuItemPatch{}, fmt.Errorf("update menu item: %w", ErrNameRequired)
	}
	res, err := c.sendJSON(ctx, http.MethodPut, menuItemsPath+"/"+escape(id), patch)
	if err != nil {
		return model.MenuItemPatch{}, fmt.Errorf("update menu item: %w", err)
	}
	if !res.ok() {
		return model.MenuItemPatch{}, statusError("update menu item", res.status, res.body)
	}
	w, err := decodeOne[wireMenuItem](res.body, "menuItem")
	if err != nil {
		return model.MenuItemPatch{}, invalidResponse("update menu item", err)
	}
	return w.patch(), nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	res, err := c.do(ctx, http.MethodDelete, menuItemsPath+"/"+escape(id), nil, nil, "")
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if !res.ok() {
		return statusError("delete menu item", res.status, res.body)
	}
	return nil
}
