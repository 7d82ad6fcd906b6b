package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Makepad-fr/menuadmin/internal/model"
)

type MenuItemForm struct {
	Name        string `validate:"required"`
	Description string
	Price       string `validate:"required,numeric"`
	CategoryID  string
	Image       string
}

func MenuItemFormFrom(m model.MenuItem) MenuItemForm {
	return MenuItemForm{
		Name:        m.Name,
		Description: m.Description,
		Price:       strconv.FormatFloat(m.Price, 'f', -1, 64),
		CategoryID:  m.CategoryID,
		Image:       model.Deref(m.Image),
	}
}

func (f MenuItemForm) normalized() MenuItemForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Price = strings.TrimSpace(f.Price)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	f.Image = strings.TrimSpace(f.Image)
	return f
}

func (f MenuItemForm) Validate() error {
	_, err := f.parse()
	return err
}

func (f MenuItemForm) parse() (float64, error) {
	f = f.normalized()
	if err := check(f); err != nil {
		return 0, err
	}
	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: price must be a number", ErrInvalid)
	}
	return price, nil
}

func (f MenuItemForm) NewMenuItem(uploaded string) (model.NewMenuItem, error) {
	price, err := f.parse()
	if err != nil {
		return model.NewMenuItem{}, err
	}
	f = f.normalized()
	in := model.NewMenuItem{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		CategoryID:  f.CategoryID,
		Image:       optional(resolveImage(f.Image, uploaded)),
	}
	if err := check(in); err != nil {
		return model.NewMenuItem{}, err
	}
	return in, nil
}

func (f MenuItemForm) Patch(prior model.MenuItem, uploaded string) (model.MenuItemPatch, error) {
	price, err := f.parse()
	if err != nil {
		return model.MenuItemPatch{}, err
	}
	if price < 0 {
		return model.MenuItemPatch{}, fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	f = f.normalized()
	var p model.MenuItemPatch
	if f.Name != prior.Name {
		p.Name = model.Ptr(f.Name)
	}
	if f.Description != prior.Description {
		p.Description = model.Ptr(f.Description)
	}
	if price != prior.Price {
		p.Price = model.Ptr(price)
	}
	if f.CategoryID != prior.CategoryID {
		p.CategoryID = model.Ptr(f.CategoryID)
	}
	if img := resolveImage(f.Image, uploaded); img != "" && img != model.Deref(prior.Image) {
		p.Image = model.Ptr(img)
	}
	return p, nil
}
