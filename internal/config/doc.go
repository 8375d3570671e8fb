// Package config loads dreamwall's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dreamwall/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. DREAMWALL_DATA_DIR, when set, overrides data_dir
//
// # Data Directory
//
// User-writable state (settings.json, the downloaded image, the lockfile and
// rotated logs) lives in the data directory. It defaults to the platform
// config dir (APPDATA on Windows, ~/.config on Linux, ~/Library/Application
// Support on macOS) joined with "dreamwall". When that cannot be resolved the
// home directory is used instead (~/.dreamwall).
//
// # TOML Format
//
//	data_dir = "~/.dreamwall"
//	catalog_path = ""
//	poll_seconds = 1
//
//	[image]
//	endpoint = "https://image.pollinations.ai/prompt/"
//	model = "flux"
//	timeout_seconds = 90
//	width = 0
//	height = 0
//	fit = true
//
//	[log]
//	debug = false
//
// Every field is optional. width and height are only honoured as a pair; zero
// means the screen size is detected at generation time.
//
// # Error Handling
//
// Missing config files are NOT an error. Load returns errors for unreadable
// files and TOML parse failures so a typo is reported at startup instead of
// silently ignored.
package config
