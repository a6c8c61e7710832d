// Package credentials loads the session token used to authenticate against
// the puzzle website.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultTokenFile = ".session_token"

var (
	ErrTokenNotFound = errors.New("session token file not found")
	ErrEmptyToken    = errors.New("session token file is empty")
)

// ReadToken reads the session token from path and returns it trimmed.
// The token is never validated beyond being non-empty.
func ReadToken(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTokenNotFound, path)
		}
		return "", fmt.Errorf("reading session token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyToken, path)
	}
	return token, nil
}
