package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// LoadOrCreateKeyFile loads raw key material from the given file, creating the
// file with size random bytes when it does not exist yet. The file stores the
// key base64url-encoded so it survives editors and config management tooling.
// Used for the session token signing key.
func LoadOrCreateKeyFile(path string, size int) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		key := make([]byte, size)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("cryptox: failed to generate key: %w", err)
		}
		encoded := base64.RawURLEncoding.EncodeToString(key)
		if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
			return nil, fmt.Errorf("cryptox: failed to write key file: %w", err)
		}
		return key, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to read key file: %w", err)
	}
	key, err := base64.RawURLEncoding.DecodeString(string(data))
	if err != nil {
		return nil, fmt.Errorf("cryptox: key file is not valid base64url: %w", err)
	}
	return key, nil
}
