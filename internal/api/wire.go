package api

import (
	"encoding/json"

	"github.com/Makepad-fr/menuadmin/internal/model"
)

// The backend is document-store backed and exposes "_id"; some routes
// answer with "id". Both are accepted.

type wireCategory struct {
	MongoID     string  `json:"_id"`
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

func (w wireCategory) id() string {
	if w.MongoID != "" {
		return w.MongoID
	}
	return w.ID
}

func (w wireCategory) patch() model.CategoryPatch {
	return model.CategoryPatch{Name: w.Name, Description: w.Description, ImageURL: w.ImageURL}
}

func (w wireCategory) category() model.Category {
	return w.patch().ApplyTo(model.Category{ID: w.id()})
}

type wireMenuItem struct {
	MongoID     string   `json:"_id"`
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *string  `json:"categoryId"`
	Image       *string  `json:"image"`
}

func (w wireMenuItem) id() string {
	if w.MongoID != "" {
		return w.MongoID
	}
	return w.ID
}

func (w wireMenuItem) patch() model.MenuItemPatch {
	return model.MenuItemPatch{
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		CategoryID:  w.CategoryID,
		Image:       w.Image,
	}
}

func (w wireMenuItem) menuItem() model.MenuItem {
	return w.patch().ApplyTo(model.MenuItem{ID: w.id()})
}

// decodeOne unmarshals a single object that may be bare or wrapped in
// {"<key>": {...}}.
func decodeOne[T any](body []byte, key string) (T, error) {
	var zero T
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return zero, err
	}
	if raw, ok := envelope[key]; ok && len(raw) > 0 && raw[0] == '{' {
		body = raw
	}
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return zero, err
	}
	return v, nil
}
