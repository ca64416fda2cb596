//go:build !darwin

package auth

// loadFromKeychain is a no-op outside macOS.
func loadFromKeychain() (Credentials, bool) {
	return Credentials{}, false
}
