// Package form turns what the user typed into create payloads and
// partial update payloads for the API client.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator"
)

var ErrInvalid = errors.New("invalid form")

var validate = validator.New()

// check runs struct validation and flattens the first failure into a
// readable message wrapped in ErrInvalid.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	fe := verrs[0]
	field := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalid, field)
	case "numeric":
		return fmt.Errorf("%w: %s must be a number", ErrInvalid, field)
	case "gte":
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, field)
	}
	return fmt.Errorf("%w: %s failed %q", ErrInvalid, field, fe.Tag())
}

func fieldLabel(name string) string {
	switch name {
	case "CategoryID":
		return "category"
	}
	return strings.ToLower(name)
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ImageFile returns the local path held by an image field, if the field
// names a file rather than a URL.
func ImageFile(image string) (string, bool) {
	image = strings.TrimSpace(image)
	if image == "" || IsURL(image) {
		return "", false
	}
	return image, true
}

// resolveImage picks the URL to send: a freshly uploaded one wins over a
// URL typed into the field. File paths never reach the server.
func resolveImage(field, uploaded string) string {
	if uploaded != "" {
		return uploaded
	}
	if IsURL(field) {
		return strings.TrimSpace(field)
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
