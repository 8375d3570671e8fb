package wallpaper

import (
	"net/url"
	"path/filepath"
	"strings"
)

// linuxCommands returns the commands that set the wallpaper on the given
// desktop (XDG_CURRENT_DESKTOP). Only the first command must succeed; later
// ones are best-effort companions such as GNOME's dark-mode key.
func linuxCommands(desktop, path string) [][]string {
	fileURI := (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
	d := strings.ToLower(desktop)
	switch {
	case strings.Contains(d, "cinnamon"):
		return [][]string{
			{"gsettings", "set", "org.cinnamon.desktop.background", "picture-uri", fileURI},
		}
	case strings.Contains(d, "mate"):
		return [][]string{
			{"gsettings", "set", "org.mate.background", "picture-filename", path},
		}
	case strings.Contains(d, "kde"):
		return [][]string{
			{"plasma-apply-wallpaperimage", path},
		}
	case strings.Contains(d, "gnome"), strings.Contains(d, "unity"),
		strings.Contains(d, "ubuntu"), strings.Contains(d, "budgie"), strings.Contains(d, "pantheon"):
		return [][]string{
			{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", fileURI},
			{"gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", fileURI},
		}
	default:
		return [][]string{
			{"feh", "--bg-fill", path},
		}
	}
}

// darwinScript is the AppleScript that sets every desktop's picture.
func darwinScript(path string) string {
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `tell application "System Events" to tell every desktop to set picture to "` + escaped + `"`
}
