// Package auth finds the bearer token sent to the menu API.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const EnvToken = "MENUADMIN_TOKEN"

type Source string

const (
	SourceEnv  Source = "env"
	SourceFile Source = "file"
)

// Credentials is the saved login. Source is where it was found and is
// not written to disk.
type Credentials struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at,omitempty"`
	Source  Source    `json:"-"`
}

var userHomeDir = os.UserHomeDir

// credentialsPath is ~/.menuadmin/credentials.json.
func credentialsPath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".menuadmin", "credentials.json"), nil
}

// Lookup returns the configured credentials, nil when logged out.
// MENUADMIN_TOKEN takes precedence over the saved file.
func Lookup() (*Credentials, error) {
	if tok := normalize(os.Getenv(EnvToken)); tok != "" {
		return &Credentials{Token: tok, Source: SourceEnv}, nil
	}
	path, err := credentialsPath()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", path, err)
	}
	c.Token = normalize(c.Token)
	if c.Token == "" {
		return nil, nil
	}
	c.Source = SourceFile
	return &c, nil
}

// Token is the bare token, "" when logged out or unreadable.
func Token() string {
	c, err := Lookup()
	if err != nil || c == nil {
		return ""
	}
	return c.Token
}

// Save writes token to the credentials file, owner-only.
func Save(token string) error {
	token = normalize(token)
	if token == "" {
		return errors.New("empty token")
	}
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	raw, err := json.MarshalIndent(Credentials{Token: token, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the credentials file. Being logged out already is fine.
func Clear() error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// normalize trims space and an optional "Bearer " prefix.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 6 && strings.EqualFold(s[:6], "bearer") && (len(s) == 6 || s[6] == ' ') {
		s = strings.TrimSpace(s[6:])
	}
	return s
}
