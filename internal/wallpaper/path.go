package wallpaper

import (
	"os"
	"path/filepath"
	"strings"
)

// AlternatePath returns the sibling file cycles swap with path. Some
// desktops keep showing a cached image when the configured URI is unchanged,
// so consecutive wallpapers never share a file name.
func AlternatePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-b" + ext
}

// Newest returns whichever of paths was modified last, or "" when none
// exist.
func Newest(paths ...string) string {
	var (
		best    string
		bestMod int64
	)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best, bestMod = p, mod
		}
	}
	return best
}
