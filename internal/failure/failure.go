// Package failure classifies the errors a refresh cycle can run into so callers
// can report them as status text instead of inspecting error strings.
package failure

import (
	"errors"
	"fmt"
)

// Kind identifies which collaborator produced an error.
type Kind int

const (
	Unknown Kind = iota
	// ConfigLoad covers corrupt or missing settings and catalog files.
	ConfigLoad
	// Network covers image fetch failures, including non-2xx responses.
	Network
	// OSIntegration covers wallpaper and screen queries against the OS.
	OSIntegration
	// PromptResolution covers malformed catalog entries.
	PromptResolution
)

func (k Kind) String() string {
	switch k {
	case ConfigLoad:
		return "config"
	case Network:
		return "network"
	case OSIntegration:
		return "os"
	case PromptResolution:
		return "prompt"
	default:
		return "unknown"
	}
}

// Error wraps a cause with its kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err tagged with kind. A nil err stays nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Describe renders err as a single status line.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	switch KindOf(err) {
	case Network:
		return fmt.Sprintf("Image download failed: %v", err)
	case OSIntegration:
		return fmt.Sprintf("Failed to set wallpaper: %v", err)
	case ConfigLoad:
		return fmt.Sprintf("Settings unavailable: %v", err)
	case PromptResolution:
		return fmt.Sprintf("Prompt error: %v", err)
	default:
		return fmt.Sprintf("Refresh failed: %v", err)
	}
}
