package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Makepad-fr/menuadmin/internal/model"
	"go.uber.org/zap"
)

const categoriesPath = "/categories"

func categoryQuery(q *model.CategoryQuery) url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Strict {
		v.Set("strict", "true")
	}
	return v
}

// ListCategories fetches categories. A nil query fetches everything.
func (c *Client) ListCategories(ctx context.Context, q *model.CategoryQuery) ([]model.Category, error) {
	res, err := c.do(ctx, http.MethodGet, categoriesPath, categoryQuery(q), nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	if !res.ok() {
		return nil, &StatusError{Op: "fetch categories", StatusCode: res.status}
	}

	var payload struct {
		Categories []wireCategory `json:"categories"`
	}
	if err := json.Unmarshal(res.body, &payload); err != nil {
		return nil, invalidResponse("fetch categories", err)
	}
	out := make([]model.Category, 0, len(payload.Categories))
	for _, w := range payload.Categories {
		out = append(out, w.category())
	}
	return out, nil
}

// CreateCategory re-reads the category list and refuses to POST when the
// name is already taken. The check is only as fresh as that read.
func (c *Client) CreateCategory(ctx context.Context, in model.NewCategory) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, fmt.Errorf("create category: %w", ErrNameRequired)
	}
	existing, err := c.ListCategories(ctx, nil)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	if dup, found := model.FindByName(existing, in.Name, ""); found {
		c.logger.Debug("category name taken", zap.String("name", in.Name), zap.String("id", dup.ID))
		return model.Category{}, fmt.Errorf("category %q %w", in.Name, ErrAlreadyExists)
	}

	res, err := c.sendJSON(ctx, http.MethodPost, categoriesPath, in)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	if !res.ok() {
		return model.Category{}, statusError("create category", res.status, res.body)
	}
	w, err := decodeOne[wireCategory](res.body, "category")
	if err != nil {
		return model.Category{}, invalidResponse("create category", err)
	}
	if w.id() == "" {
		return model.Category{}, invalidResponse("create category", fmt.Errorf("missing id"))
	}

	// Fields the server did not echo keep the submitted values.
	base := model.Category{ID: w.id(), Name: in.Name, Description: in.Description, ImageURL: in.ImageURL}
	return w.patch().ApplyTo(base), nil
}

// UpdateCategory PUTs patch and returns the fields the server echoed.
// When the patch renames the category the new name is checked against
// every other category first; keeping the current name never collides.
func (c *Client) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (model.CategoryPatch, error) {
	existing, err := c.ListCategories(ctx, nil)
	if err != nil {
		return model.CategoryPatch{}, fmt.Errorf("update category: %w", err)
	}
	var current *model.Category
	for i := range existing {
		if existing[i].ID == id {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		return model.CategoryPatch{}, fmt.Errorf("update category %s: %w", id, ErrNotFound)
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return model.CategoryPatch{}, fmt.Errorf("update category: %w", ErrNameRequired)
		}
		if *patch.Name != current.Name {
			if _, found := model.FindByName(existing, *patch.Name, id); found {
				return model.CategoryPatch{}, fmt.Errorf("category %q %w", *patch.Name, ErrAlreadyExists)
			}
		}
	}

	res, err := c.sendJSON(ctx, http.MethodPut, categoriesPath+"/"+escape(id), patch)
	if err != nil {
		return model.CategoryPatch{}, fmt.Errorf("update category: %w", err)
	}
	if !res.ok() {
		return model.CategoryPatch{}, statusError("update category", res.status, res.body)
	}
	w, err := decodeOne[wireCategory](res.body, "category")
	if err != nil {
		return model.CategoryPatch{}, invalidResponse("update category", err)
	}
	return w.patch(), nil
}

// DeleteCategory accepts any 2xx, including an empty body.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	res, err := c.do(ctx, http.MethodDelete, categoriesPath+"/"+escape(id), nil, nil, "")
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !res.ok() {
		return statusError("delete category", res.status, res.body)
	}
	return nil
}
