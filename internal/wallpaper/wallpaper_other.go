//go:build !linux && !darwin && !windows

package wallpaper

import (
	"context"
	"errors"
	"runtime"

	"github.com/five82/dreamwall/internal/failure"
)

var errUnsupported = errors.New("wallpaper not supported on " + runtime.GOOS)

func newSystemSetter() Setter {
	return SetterFunc(func(context.Context, string) error {
		return failure.Wrap(failure.OSIntegration, "set wallpaper", errUnsupported)
	})
}

func screenSize(context.Context) (int, int, error) {
	return 0, 0, errUnsupported
}
