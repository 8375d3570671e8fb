//go:build linux

package wallpaper

import (
	"context"
	"os"
	"path/filepath"

	"github.com/five82/dreamwall/internal/failure"
)

type linuxSetter struct {
	run    runner
	getenv func(string) string
}

func newSystemSetter() Setter {
	return &linuxSetter{run: execRunner{}, getenv: os.Getenv}
}

func (s *linuxSetter) Apply(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return failure.Wrap(failure.OSIntegration, "resolve wallpaper path", err)
	}
	cmds := linuxCommands(s.getenv("XDG_CURRENT_DESKTOP"), abs)
	if err := s.run.Run(ctx, cmds[0][0], cmds[0][1:]...); err != nil {
		return failure.Wrap(failure.OSIntegration, "set wallpaper", err)
	}
	for _, cmd := range cmds[1:] {
		_ = s.run.Run(ctx, cmd[0], cmd[1:]...)
	}
	return nil
}

func screenSize(ctx context.Context) (int, int, error) {
	out, err := execRunner{}.Output(ctx, "xrandr", "--current")
	if err != nil {
		return 0, 0, err
	}
	return parseDimensions(out, "current")
}
