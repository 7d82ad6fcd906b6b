package model

// MenuItem is a dish or drink on the menu. CategoryID is not checked
// against the category list; a dangling id just has no label.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"categoryId"`
	Image       *string `json:"image,omitempty"`
}

func (m MenuItem) EntityID() string { return m.ID }

type NewMenuItem struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	CategoryID  string  `json:"categoryId"`
	Image       *string `json:"image,omitempty"`
}

// MenuItemPatch follows the same rules as CategoryPatch.
type MenuItemPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

func (p MenuItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.CategoryID == nil && p.Image == nil
}

func (p MenuItemPatch) ApplyTo(m MenuItem) MenuItem {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.CategoryID != nil {
		m.CategoryID = *p.CategoryID
	}
	if p.Image != nil {
		m.Image = ptr(*p.Image)
	}
	return m
}

// CategoryLabel resolves the display name of m's category, "" when the
// id matches nothing.
func CategoryLabel(cats []Category, categoryID string) string {
	for _, c := range cats {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return ""
}
