//go:build darwin

package wallpaper

import (
	"context"
	"path/filepath"

	"github.com/five82/dreamwall/internal/failure"
)

type darwinSetter struct {
	run runner
}

func newSystemSetter() Setter {
	return &darwinSetter{run: execRunner{}}
}

func (s *darwinSetter) Apply(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return failure.Wrap(failure.OSIntegration, "resolve wallpaper path", err)
	}
	if err := s.run.Run(ctx, "osascript", "-e", darwinScript(abs)); err != nil {
		return failure.Wrap(failure.OSIntegration, "set wallpaper", err)
	}
	return nil
}

func screenSize(ctx context.Context) (int, int, error) {
	out, err := execRunner{}.Output(ctx, "system_profiler", "SPDisplaysDataType")
	if err != nil {
		return 0, 0, err
	}
	return parseDimensions(out, "Resolution:")
}
