package model

import "strings"

// Category groups menu items. Name is unique case-insensitively
// across the categories the server knows about.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

func (c Category) EntityID() string { return c.ID }

// NewCategory is the create payload. The server assigns the id.
type NewCategory struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// CategoryPatch is a partial category. As a request it carries only the
// fields that changed; as a response it carries only the fields the
// server echoed back. Nil means absent.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.ImageURL == nil
}

// ApplyTo merges p over c: fields present in p win, absent fields keep
// the value from c. The id is never touched.
func (p CategoryPatch) ApplyTo(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = ptr(*p.Description)
	}
	if p.ImageURL != nil {
		c.ImageURL = ptr(*p.ImageURL)
	}
	return c
}

// CategoryQuery filters the category list endpoint. Zero values are not sent.
type CategoryQuery struct {
	Q      string
	Limit  int
	Page   int
	Strict bool
}

// SameName reports whether two category names collide.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FindByName returns the first category whose name collides with name,
// skipping the category with id exceptID (pass "" to skip none).
func FindByName(cats []Category, name, exceptID string) (Category, bool) {
	for _, c := range cats {
		if exceptID != "" && c.ID == exceptID {
			continue
		}
		if SameName(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr[T any](v T) *T { return &v }

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T { return ptr(v) }
