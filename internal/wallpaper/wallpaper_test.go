package wallpaper

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/five82/dreamwall/internal/failure"
)

func TestLinuxCommands_ByDesktop(t *testing.T) {
	path := "/home/me/walls/img.jpg"
	tests := []struct {
		desktop string
		first   []string
		count   int
	}{
		{"ubuntu:GNOME", []string{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", "file:///home/me/walls/img.jpg"}, 2},
		{"X-Cinnamon", []string{"gsettings", "set", "org.cinnamon.desktop.background", "picture-uri", "file:///home/me/walls/img.jpg"}, 1},
		{"MATE", []string{"gsettings", "set", "org.mate.background", "picture-filename", path}, 1},
		{"KDE", []string{"plasma-apply-wallpaperimage", path}, 1},
		{"i3", []string{"feh", "--bg-fill", path}, 1},
		{"", []string{"feh", "--bg-fill", path}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.desktop, func(t *testing.T) {
			cmds := linuxCommands(tt.desktop, path)
			if len(cmds) != tt.count {
				t.Fatalf("len(cmds) = %d, want %d", len(cmds), tt.count)
			}
			if !slices.Equal(cmds[0], tt.first) {
				t.Fatalf("cmds[0] = %v, want %v", cmds[0], tt.first)
			}
		})
	}
}

func TestLinuxCommands_EscapesSpacesInURI(t *testing.T) {
	cmds := linuxCommands("GNOME", "/home/me/AI Wallpaper App/img.jpg")
	if got := cmds[0][4]; got != "file:///home/me/AI%20Wallpaper%20App/img.jpg" {
		t.Fatalf("uri = %q", got)
	}
}

func TestDarwinScript_QuotesPath(t *testing.T) {
	got := darwinScript(`/Users/me/a "b".jpg`)
	if !strings.Contains(got, `set picture to "/Users/me/a \"b\".jpg"`) {
		t.Fatalf("script = %q", got)
	}
}

func TestParseDimensions(t *testing.T) {
	xrandr := []byte("Screen 0: minimum 8 x 8, current 2560 x 1440, maximum 32767 x 32767\nDP-1 connected")
	w, h, err := parseDimensions(xrandr, "current")
	if err != nil || w != 2560 || h != 1440 {
		t.Fatalf("xrandr = %dx%d, %v", w, h, err)
	}

	profiler := []byte("Displays:\n  Color LCD:\n    Resolution: 3024 x 1964 Retina\n")
	w, h, err = parseDimensions(profiler, "Resolution:")
	if err != nil || w != 3024 || h != 1964 {
		t.Fatalf("system_profiler = %dx%d, %v", w, h, err)
	}

	if _, _, err := parseDimensions([]byte("nothing here"), "current"); err == nil {
		t.Fatalf("parseDimensions accepted output without keyword")
	}
	if _, _, err := parseDimensions([]byte("current: unknown"), "current"); err == nil {
		t.Fatalf("parseDimensions accepted output without numbers")
	}
}

func TestDimensions_PrefersConfiguredSize(t *testing.T) {
	w, h := Dimensions(context.Background(), 1280, 720)
	if w != 1280 || h != 720 {
		t.Fatalf("Dimensions = %dx%d, want 1280x720", w, h)
	}
}

func TestSetterFunc(t *testing.T) {
	want := errors.New("nope")
	var got string
	s := SetterFunc(func(_ context.Context, path string) error {
		got = path
		return want
	})
	if err := s.Apply(context.Background(), "/tmp/x.jpg"); !errors.Is(err, want) || got != "/tmp/x.jpg" {
		t.Fatalf("Apply = %v, path %q", err, got)
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

func TestSave_FitCropsToExactSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "img.jpg")
	if err := Save(encodePNG(t, 400, 400), path, 160, 90, true); err != nil {
		t.Fatalf("Save: %v", err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 90 {
		t.Fatalf("saved size = %dx%d, want 160x90", b.Dx(), b.Dy())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestSave_WithoutFitWritesRawBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.jpg")
	if err := Save([]byte("raw"), path, 10, 10, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "raw" {
		t.Fatalf("file = %q", data)
	}
}

func TestSave_UndecodableIsNetworkFailure(t *testing.T) {
	err := Save([]byte("<html>rate limited</html>"), filepath.Join(t.TempDir(), "img.jpg"), 10, 10, true)
	if err == nil {
		t.Fatalf("Save accepted non-image payload")
	}
	if failure.KindOf(err) != failure.Network {
		t.Fatalf("KindOf = %v, want Network", failure.KindOf(err))
	}
}

func TestAlternatePath(t *testing.T) {
	if got := AlternatePath("/data/downloaded_image.jpg"); got != "/data/downloaded_image-b.jpg" {
		t.Fatalf("AlternatePath = %q", got)
	}
}

func TestNewest(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.jpg")
	if got := Newest(a, b); got != "" {
		t.Fatalf("Newest with no files = %q", got)
	}
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	older := time.Now().Add(-time.Minute)
	if err := os.Chtimes(b, older, older); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	if got := Newest(a, b); got != a {
		t.Fatalf("Newest = %q, want %q", got, a)
	}
}
