// Package wallpaper applies an image file as the desktop background and
// reports the screen size images should be generated at.
package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/five82/dreamwall/internal/failure"
)

// Setter applies a local image file as the wallpaper.
type Setter interface {
	Apply(ctx context.Context, path string) error
}

// SetterFunc adapts a function to Setter.
type SetterFunc func(ctx context.Context, path string) error

// Apply calls f.
func (f SetterFunc) Apply(ctx context.Context, path string) error {
	return f(ctx, path)
}

const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// System returns the Setter for the running OS.
func System() Setter {
	return newSystemSetter()
}

// ScreenSize reports the primary display resolution.
func ScreenSize(ctx context.Context) (int, int, error) {
	w, h, err := screenSize(ctx)
	if err != nil {
		return 0, 0, failure.Wrap(failure.OSIntegration, "detect screen size", err)
	}
	return w, h, nil
}

// Dimensions returns the configured size when both values are set, the
// detected screen size otherwise, and DefaultWidth x DefaultHeight when
// detection fails.
func Dimensions(ctx context.Context, width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	w, h, err := ScreenSize(ctx)
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// runner executes external commands; swapped in tests.
type runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

var dimensionsPattern = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

// parseDimensions finds the first "W x H" after keyword in out.
func parseDimensions(out []byte, keyword string) (int, int, error) {
	idx := bytes.Index(out, []byte(keyword))
	if idx < 0 {
		return 0, 0, fmt.Errorf("no %q in output", keyword)
	}
	m := dimensionsPattern.FindSubmatch(out[idx+len(keyword):])
	if m == nil {
		return 0, 0, fmt.Errorf("no dimensions after %q", keyword)
	}
	w, _ := strconv.Atoi(string(m[1]))
	h, _ := strconv.Atoi(string(m[2]))
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid dimensions %dx%d", w, h)
	}
	return w, h, nil
}
