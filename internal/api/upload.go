package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const uploadPath = "/image_upload"

// UploadImage posts r as multipart field "file" and returns the hosted URL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if r == nil || strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("upload image: %w", ErrMissingFile)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("upload image: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	res, err := c.do(ctx, http.MethodPost, uploadPath, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if !res.ok() {
		return "", statusError("upload image", res.status, res.body)
	}
	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.Unmarshal(res.body, &out); err != nil {
		return "", invalidResponse("upload image", err)
	}
	if out.ImageURL == "" {
		return "", invalidResponse("upload image", fmt.Errorf("missing imageUrl"))
	}
	return out.ImageURL, nil
}
