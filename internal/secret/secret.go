// Package secret keeps the optional image service token in the OS keyring.
package secret

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	service = "dreamwall"
	user    = "image-token"
)

var (
	// ErrNotFound is returned when no token is stored.
	ErrNotFound = errors.New("token not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be used.
	ErrUnavailable = errors.New("OS keyring is not available")
)

// Token returns the stored token.
func Token() (string, error) {
	token, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return token, nil
}

// TokenOrEmpty returns the stored token, or "" when none is stored or the
// keyring is unavailable. Requests are then sent anonymously.
func TokenOrEmpty() string {
	token, err := Token()
	if err != nil {
		return ""
	}
	return token
}

// SetToken stores token, replacing any previous value.
func SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(service, user, token); err != nil {
		return fmt.Errorf("store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the stored token.
func DeleteToken() error {
	if err := keyring.Delete(service, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete token from keyring: %w", err)
	}
	return nil
}
