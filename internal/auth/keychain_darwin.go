//go:build darwin

package auth

import (
	"encoding/json"
	"os/exec"
	"strings"
)

// loadFromKeychain reads the credentials the Claude CLI stores in the macOS
// Keychain. Any failure falls through to the file-based source.
func loadFromKeychain() (Credentials, bool) {
	out, err := exec.Command("security", "find-generic-password", "-s", "Claude Code-credentials", "-w").Output()
	if err != nil {
		return Credentials{}, false
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(out))), &creds); err != nil {
		return Credentials{}, false
	}
	if creds.ClaudeAIOAuth.AccessToken == "" {
		return Credentials{}, false
	}
	return creds, true
}
