// Package auth loads the Claude Code OAuth credentials the sessions API
// requires. Lookup order: macOS Keychain (darwin only), then the credentials
// file under CLAUDE_CONFIG_DIR or ~/.claude.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoCredentials indicates that no credential source produced a token.
// Callers must not issue any API request after seeing it.
var ErrNoCredentials = errors.New("no Claude Code credentials found")

// Credentials mirrors the on-disk .credentials.json shape.
type Credentials struct {
	ClaudeAIOAuth OAuthToken `json:"claudeAiOauth"`
}

// OAuthToken is the bearer token used against the sessions API.
type OAuthToken struct {
	AccessToken string   `json:"accessToken"`
	ExpiresAt   int64    `json:"expiresAt"`
	Scopes      []string `json:"scopes"`
}

// String keeps the access token out of logs and error messages.
func (t OAuthToken) String() string {
	return fmt.Sprintf("OAuthToken{AccessToken:[REDACTED] ExpiresAt:%d Scopes:%v}", t.ExpiresAt, t.Scopes)
}

// CredentialsFilePath returns the path to .credentials.json, respecting the
// CLAUDE_CONFIG_DIR override.
func CredentialsFilePath() string {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, ".credentials.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".claude", ".credentials.json")
}

// Load resolves credentials from the first available source.
func Load() (Credentials, error) {
	if creds, ok := loadFromKeychain(); ok {
		return creds, nil
	}

	path := CredentialsFilePath()
	if _, err := os.Stat(path); err == nil {
		return LoadFromFile(path)
	}

	return Credentials{}, fmt.Errorf("%w: checked %s; log in with 'claude' first", ErrNoCredentials, path)
}

// LoadFromFile reads and parses a credentials file.
func LoadFromFile(path string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials from %s: %w", path, err)
	}
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials from %s: %w", path, err)
	}
	if creds.ClaudeAIOAuth.AccessToken == "" {
		return Credentials{}, fmt.Errorf("%w: %s has no access token", ErrNoCredentials, path)
	}
	return creds, nil
}
