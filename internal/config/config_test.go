package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func stubConfigDir(t *testing.T, dir string, err error) {
	t.Helper()
	prev := userConfigDir
	userConfigDir = func() (string, error) { return dir, err }
	t.Cleanup(func() { userConfigDir = prev })
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(dataDirEnv, "")
	stubConfigDir(t, filepath.Join(home, "appdata"), nil)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, "appdata", appDirName) {
		t.Fatalf("DataDir = %q, want under appdata", cfg.DataDir)
	}
	if cfg.Image.Endpoint != defaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Image.Endpoint, defaultEndpoint)
	}
	if cfg.Image.Model != defaultModel {
		t.Fatalf("Model = %q, want %q", cfg.Image.Model, defaultModel)
	}
	if !cfg.Image.Fit {
		t.Fatalf("Fit = false, want true by default")
	}
	if cfg.PollEvery != time.Second {
		t.Fatalf("PollEvery = %v, want 1s", cfg.PollEvery)
	}
	if cfg.SettingsPath() != filepath.Join(cfg.DataDir, "settings.json") {
		t.Fatalf("SettingsPath = %q", cfg.SettingsPath())
	}
}

func TestDefaultDataDir_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	stubConfigDir(t, "", errors.New("$XDG_CONFIG_HOME and $HOME unset"))

	got := defaultDataDir()
	if got != filepath.Join(home, ".dreamwall") {
		t.Fatalf("defaultDataDir = %q, want %q", got, filepath.Join(home, ".dreamwall"))
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(dataDirEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
data_dir = "  ~/walls  "
catalog_path = "~/prompts.json"
poll_seconds = 5

[image]
endpoint = " http://localhost:9000/prompt/ "
model = "turbo"
timeout_seconds = 10
width = 2560
height = 1440
fit = false

[log]
debug = true
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, "walls") {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, filepath.Join(home, "walls"))
	}
	if cfg.CatalogPath != filepath.Join(home, "prompts.json") {
		t.Fatalf("CatalogPath = %q", cfg.CatalogPath)
	}
	if cfg.PollEvery != 5*time.Second {
		t.Fatalf("PollEvery = %v, want 5s", cfg.PollEvery)
	}
	if cfg.Image.Endpoint != "http://localhost:9000/prompt/" {
		t.Fatalf("Endpoint = %q", cfg.Image.Endpoint)
	}
	if cfg.Image.Model != "turbo" || cfg.Image.Timeout != 10*time.Second {
		t.Fatalf("Image = %+v", cfg.Image)
	}
	if cfg.Image.Width != 2560 || cfg.Image.Height != 1440 || cfg.Image.Fit {
		t.Fatalf("Image sizing = %+v", cfg.Image)
	}
	if !cfg.Debug {
		t.Fatalf("Debug = false, want true")
	}
	if !strings.HasPrefix(cfg.LogPath(), filepath.Join(home, "walls", "logs")) {
		t.Fatalf("LogPath = %q", cfg.LogPath())
	}
}

func TestLoad_PartialSizeIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[image]\nwidth = 800\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Image.Width != 0 || cfg.Image.Height != 0 {
		t.Fatalf("Image size = %dx%d, want detection (0x0)", cfg.Image.Width, cfg.Image.Height)
	}
}

func TestLoad_EnvOverridesDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	override := filepath.Join(home, "override")
	t.Setenv(dataDirEnv, override)

	cfg, err := Load(filepath.Join(home, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != override {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, override)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`data_dir = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
