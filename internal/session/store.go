// Package session persists the opaque COLLECTIVE session token and keeps
// the API client's bearer header in sync with it. The token is trusted
// until explicitly cleared; there is no expiry or refresh logic.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenHeader is the outbound-request header mirror the store keeps in
// sync. *client.Client satisfies it.
type TokenHeader interface {
	SetToken(token string)
	ClearToken()
}

// Store owns the token file and its header mirror. Construct one per
// process and inject it; there is no package-level state.
type Store struct {
	path   string
	header TokenHeader
}

// DefaultPath returns ~/.collective/token.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".collective", "token"), nil
}

// New creates a store over the given token file. header may be nil when
// no client exists yet (e.g. during logout).
func New(path string, header TokenHeader) *Store {
	return &Store{path: path, header: header}
}

// Get returns the persisted token, or "" when logged out.
func (s *Store) Get() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Set persists the token and updates the bearer header in the same call,
// so the next request by any collaborator is authenticated consistently.
func (s *Store) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if s.header != nil {
		s.header.SetToken(token)
	}
	return nil
}

// Clear removes the persisted token and the bearer header. Clearing an
// absent token is a no-op success.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	if s.header != nil {
		s.header.ClearToken()
	}
	return nil
}
