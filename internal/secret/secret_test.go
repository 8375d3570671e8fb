package secret

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetToken(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("  sk-test-123 \n"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	got, err := Token()
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	if got != "sk-test-123" {
		t.Errorf("Token() = %q, want %q", got, "sk-test-123")
	}
	if TokenOrEmpty() != "sk-test-123" {
		t.Errorf("TokenOrEmpty() = %q", TokenOrEmpty())
	}
}

func TestSetTokenEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("   "); err == nil {
		t.Error("SetToken(blank) should return an error")
	}
}

func TestTokenNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteToken()

	if _, err := Token(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Token() error = %v, want %v", err, ErrNotFound)
	}
	if TokenOrEmpty() != "" {
		t.Errorf("TokenOrEmpty() = %q, want empty", TokenOrEmpty())
	}
}

func TestDeleteToken(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("sk-test"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}
	if err := DeleteToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteToken() = %v, want %v", err, ErrNotFound)
	}
}

func TestTokenUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus down"))
	t.Cleanup(gokeyring.MockInit)

	if _, err := Token(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Token() error = %v, want %v", err, ErrUnavailable)
	}
}
