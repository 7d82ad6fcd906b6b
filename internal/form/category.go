package form

import (
	"strings"

	"github.com/Makepad-fr/menuadmin/internal/model"
)

type CategoryForm struct {
	Name        string `validate:"required"`
	Description string
	// Image is an image URL or a local file to upload. Empty keeps the
	// current image.
	Image string
}

func CategoryFormFrom(c model.Category) CategoryForm {
	return CategoryForm{
		Name:        c.Name,
		Description: model.Deref(c.Description),
		Image:       model.Deref(c.ImageURL),
	}
}

func (f CategoryForm) normalized() CategoryForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Image = strings.TrimSpace(f.Image)
	return f
}

func (f CategoryForm) Validate() error {
	return check(f.normalized())
}

// NewCategory maps the form to a create payload. uploaded is the URL of
// an image uploaded for this submission, if any.
func (f CategoryForm) NewCategory(uploaded string) (model.NewCategory, error) {
	f = f.normalized()
	if err := check(f); err != nil {
		return model.NewCategory{}, err
	}
	return model.NewCategory{
		Name:        f.Name,
		Description: optional(f.Description),
		ImageURL:    optional(resolveImage(f.Image, uploaded)),
	}, nil
}

// Patch maps the form to an update payload holding only the fields that
// differ from prior.
func (f CategoryForm) Patch(prior model.Category, uploaded string) (model.CategoryPatch, error) {
	f = f.normalized()
	if err := check(f); err != nil {
		return model.CategoryPatch{}, err
	}
	var p model.CategoryPatch
	if f.Name != prior.Name {
		p.Name = model.Ptr(f.Name)
	}
	if f.Description != model.Deref(prior.Description) {
		p.Description = model.Ptr(f.Description)
	}
	if img := resolveImage(f.Image, uploaded); img != "" && img != model.Deref(prior.ImageURL) {
		p.ImageURL = model.Ptr(img)
	}
	return p, nil
}
