// Package settings persists the user's wallpaper selections and the refresh
// schedule as a flat JSON document.
//
// The document is the only state shared between the UI and the refresh loop.
// Every writer does a full load-mutate-save through Update; there is no
// in-process lock on the file, so two writers racing inside the same window
// can drop one update (last writer wins). Writes are user-paced on one side
// and interval-paced on the other, which keeps that window narrow.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// TimeLayout is the on-disk format of next_update_time (local time).
const TimeLayout = "2006-01-02 15:04:05"

const (
	DefaultIntervalMinutes = 30
	// MaxIntervalMinutes is one year. Larger values fall back to the default.
	MaxIntervalMinutes = 365 * 24 * 60
	defaultSelection   = "Random"
)

const (
	keyStyle       = "selected_style"
	keyDescriptor  = "selected_descriptor"
	keyCategory    = "selected_category"
	keyLastPrompt  = "last_prompt"
	keyInterval    = "interval_minutes"
	keyAutoRefresh = "auto_refresh_enabled"
	keyNextUpdate  = "next_update_time"
	keyTheme       = "theme"
)

// Settings is the typed view of the document. Keys dreamwall does not know
// about are carried through unchanged.
type Settings struct {
	Style           string
	Descriptor      string
	Category        string
	LastPrompt      string // free-text override; empty uses the category
	IntervalMinutes int
	AutoRefresh     bool
	NextUpdate      time.Time // zero when nothing is scheduled
	Theme           string

	extra map[string]json.RawMessage
}

// Defaults returns the settings of a fresh install.
func Defaults() Settings {
	return Settings{
		Style:           defaultSelection,
		Descriptor:      defaultSelection,
		Category:        defaultSelection,
		IntervalMinutes: DefaultIntervalMinutes,
	}
}

// Interval returns the refresh cadence, between one minute and one year.
// Values outside that range use the default.
func (s Settings) Interval() time.Duration {
	minutes := s.IntervalMinutes
	if minutes <= 0 || minutes > MaxIntervalMinutes {
		minutes = DefaultIntervalMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// HasNextUpdate reports whether a due-time is persisted.
func (s Settings) HasNextUpdate() bool {
	return !s.NextUpdate.IsZero()
}

// NextUpdateText renders the due-time the way it is stored.
func (s Settings) NextUpdateText() string {
	if !s.HasNextUpdate() {
		return "Not yet scheduled"
	}
	return s.NextUpdate.Format(TimeLayout)
}

// ScheduleFrom sets the due-time to basis plus the configured interval.
func (s *Settings) ScheduleFrom(basis time.Time) {
	s.NextUpdate = basis.Add(s.Interval()).Truncate(time.Second)
}

// MarshalJSON writes known fields over the preserved unknown ones.
func (s Settings) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(s.extra)+8)
	for k, v := range s.extra {
		doc[k] = v
	}
	doc[keyStyle] = s.Style
	doc[keyDescriptor] = s.Descriptor
	doc[keyCategory] = s.Category
	doc[keyLastPrompt] = s.LastPrompt
	doc[keyInterval] = s.IntervalMinutes
	doc[keyAutoRefresh] = s.AutoRefresh
	if s.HasNextUpdate() {
		doc[keyNextUpdate] = s.NextUpdate.Format(TimeLayout)
	}
	if s.Theme != "" {
		doc[keyTheme] = s.Theme
	}
	return json.Marshal(doc)
}

// UnmarshalJSON is lenient: a malformed value falls back to its default
// instead of failing the whole document.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Defaults()

	takeString(raw, keyStyle, &out.Style)
	takeString(raw, keyDescriptor, &out.Descriptor)
	takeString(raw, keyCategory, &out.Category)
	takeString(raw, keyLastPrompt, &out.LastPrompt)
	takeString(raw, keyTheme, &out.Theme)

	if v, ok := raw[keyInterval]; ok {
		delete(raw, keyInterval)
		if minutes, ok := parseInterval(v); ok {
			out.IntervalMinutes = minutes
		}
	}
	if v, ok := raw[keyAutoRefresh]; ok {
		delete(raw, keyAutoRefresh)
		_ = json.Unmarshal(v, &out.AutoRefresh)
	}
	if v, ok := raw[keyNextUpdate]; ok {
		delete(raw, keyNextUpdate)
		var text string
		if json.Unmarshal(v, &text) == nil {
			if due, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(text), time.Local); err == nil {
				out.NextUpdate = due
			}
		}
	}

	if len(raw) > 0 {
		out.extra = raw
	}
	*s = out
	return nil
}

func takeString(raw map[string]json.RawMessage, key string, dst *string) {
	v, ok := raw[key]
	if !ok {
		return
	}
	delete(raw, key)
	var text string
	if json.Unmarshal(v, &text) == nil {
		*dst = text
	}
}

func parseInterval(v json.RawMessage) (int, bool) {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		var text string
		if json.Unmarshal(v, &text) != nil {
			return 0, false
		}
		n = json.Number(strings.TrimSpace(text))
	}
	minutes, err := strconv.Atoi(n.String())
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		minutes = int(f)
	}
	if minutes <= 0 || minutes > MaxIntervalMinutes {
		return 0, false
	}
	return minutes, true
}

// Store reads and writes the settings document at a fixed path.
type Store struct {
	path   string
	logger *log.Logger
}

// NewStore returns a Store for path. A nil logger discards output.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: path, logger: logger}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted settings, or defaults when the file is missing,
// unreadable or corrupt.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("settings unreadable, using defaults", "path", s.path, "err", err)
		}
		return Defaults()
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Defaults()
	}
	var out Settings
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Warn("settings corrupt, using defaults", "path", s.path, "err", err)
		return Defaults()
	}
	return out
}

// Save writes the whole document, creating parent directories as needed.
func (s *Store) Save(st Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.saveFailed(fmt.Errorf("create settings dir: %w", err))
	}
	data, err := json.MarshalIndent(st, "", "    ")
	if err != nil {
		return s.saveFailed(fmt.Errorf("marshal settings: %w", err))
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.json")
	if err != nil {
		return s.saveFailed(fmt.Errorf("write settings: %w", err))
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return s.saveFailed(fmt.Errorf("write settings: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return s.saveFailed(fmt.Errorf("write settings: %w", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return s.saveFailed(fmt.Errorf("replace settings: %w", err))
	}
	return nil
}

// Update loads the document, applies fn and saves the result. The returned
// settings reflect fn's changes even when the save fails.
func (s *Store) Update(fn func(*Settings)) (Settings, error) {
	st := s.Load()
	fn(&st)
	return st, s.Save(st)
}

func (s *Store) saveFailed(err error) error {
	s.logger.Error("settings not saved", "path", s.path, "err", err)
	return err
}
