package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures where dreamwall keeps its files and how it talks to the
// image service.
type Config struct {
	DataDir     string
	CatalogPath string
	PollEvery   time.Duration
	Image       Image
	Debug       bool
}

// Image configures the image generation endpoint and output sizing.
type Image struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
	Width    int // zero means detect the screen
	Height   int
	Fit      bool
}

const (
	defaultConfigPath = "~/.config/dreamwall/config.toml"
	fallbackDataDir   = "~/.dreamwall"
	appDirName        = "dreamwall"
	defaultEndpoint   = "https://image.pollinations.ai/prompt/"
	defaultModel      = "flux"
	defaultTimeout    = 90 * time.Second
	defaultPollEvery  = time.Second
	dataDirEnv        = "DREAMWALL_DATA_DIR"
	settingsFileName  = "settings.json"
	imageFileName     = "downloaded_image.jpg"
	lockFileName      = "dreamwall.lock"
	logDirName        = "logs"
	logFileName       = "dreamwall.log"
)

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:   defaultDataDir(),
		PollEvery: defaultPollEvery,
		Image: Image{
			Endpoint: defaultEndpoint,
			Model:    defaultModel,
			Timeout:  defaultTimeout,
			Fit:      true,
		},
	}
}

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataDir     string `toml:"data_dir"`
		CatalogPath string `toml:"catalog_path"`
		PollSeconds int    `toml:"poll_seconds"`
		Image       struct {
			Endpoint       string `toml:"endpoint"`
			Model          string `toml:"model"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
			Width          int    `toml:"width"`
			Height         int    `toml:"height"`
			Fit            *bool  `toml:"fit"`
		} `toml:"image"`
		Log struct {
			Debug bool `toml:"debug"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if catalog := strings.TrimSpace(raw.CatalogPath); catalog != "" {
		cfg.CatalogPath = mustExpand(catalog)
	}
	if raw.PollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}
	if endpoint := strings.TrimSpace(raw.Image.Endpoint); endpoint != "" {
		cfg.Image.Endpoint = endpoint
	}
	if model := strings.TrimSpace(raw.Image.Model); model != "" {
		cfg.Image.Model = model
	}
	if raw.Image.TimeoutSeconds > 0 {
		cfg.Image.Timeout = time.Duration(raw.Image.TimeoutSeconds) * time.Second
	}
	if raw.Image.Width > 0 && raw.Image.Height > 0 {
		cfg.Image.Width = raw.Image.Width
		cfg.Image.Height = raw.Image.Height
	}
	if raw.Image.Fit != nil {
		cfg.Image.Fit = *raw.Image.Fit
	}
	cfg.Debug = raw.Log.Debug

	applyEnv(&cfg)
	return cfg, nil
}

// SettingsPath returns the JSON settings document location.
func (c Config) SettingsPath() string {
	return filepath.Join(c.dataDir(), settingsFileName)
}

// ImagePath returns where the latest wallpaper image is written.
func (c Config) ImagePath() string {
	return filepath.Join(c.dataDir(), imageFileName)
}

// LockPath returns the single-instance lockfile location.
func (c Config) LockPath() string {
	return filepath.Join(c.dataDir(), lockFileName)
}

// LogDir returns the directory holding rotated logs.
func (c Config) LogDir() string {
	return filepath.Join(c.dataDir(), logDirName)
}

// LogPath returns the active log file.
func (c Config) LogPath() string {
	return filepath.Join(c.LogDir(), logFileName)
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return defaultDataDir()
	}
	return c.DataDir
}

func applyEnv(cfg *Config) {
	if dir := strings.TrimSpace(os.Getenv(dataDirEnv)); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
}

// defaultDataDir prefers the platform config dir (APPDATA on Windows) and
// falls back to the home directory when it cannot be resolved.
func defaultDataDir() string {
	base, err := userConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		return mustExpand(fallbackDataDir)
	}
	return filepath.Join(base, appDirName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
