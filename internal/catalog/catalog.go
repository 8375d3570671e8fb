// Package catalog holds the category -> example prompt table used when the
// user has not typed their own prompt.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/dreamwall/internal/failure"
)

// embeddedPrompts ships with the binary so a fresh install has categories
// without any files next to the executable.
//
//go:embed prompts.json
var embeddedPrompts []byte

// Catalog is an immutable mapping from category name to complete prompts.
type Catalog struct {
	entries map[string][]string
	names   []string
}

// New builds a catalog from entries. Blank prompts are dropped; categories
// whose list ends up empty are kept so they resolve to the fallback prompt.
func New(entries map[string][]string) Catalog {
	c := Catalog{entries: make(map[string][]string, len(entries))}
	for name, prompts := range entries {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kept := make([]string, 0, len(prompts))
		for _, p := range prompts {
			if strings.TrimSpace(p) != "" {
				kept = append(kept, p)
			}
		}
		c.entries[name] = kept
		c.names = append(c.names, name)
	}
	slices.Sort(c.names)
	return c
}

// Parse decodes a JSON object of category -> list of strings. A category
// whose value is not a list of strings is kept with no prompts and reported
// through the returned error; the rest of the catalog is still usable.
func Parse(data []byte) (Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Catalog{}, failure.Wrap(failure.ConfigLoad, "parse catalog", err)
	}
	entries := make(map[string][]string, len(raw))
	var malformed []string
	for name, value := range raw {
		var prompts []string
		if err := json.Unmarshal(value, &prompts); err != nil {
			malformed = append(malformed, name)
			entries[name] = nil
			continue
		}
		entries[name] = prompts
	}
	cat := New(entries)
	if len(malformed) > 0 {
		slices.Sort(malformed)
		return cat, failure.Wrap(failure.PromptResolution, "parse catalog",
			fmt.Errorf("malformed categories: %s", strings.Join(malformed, ", ")))
	}
	return cat, nil
}

// Embedded returns the catalog bundled with the binary.
func Embedded() Catalog {
	cat, _ := Parse(embeddedPrompts)
	return cat
}

// Load reads the catalog at path, or the embedded one when path is empty.
// Read and parse failures are logged and yield whatever could be recovered,
// possibly an empty catalog.
func Load(path string, logger *log.Logger) Catalog {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	data := embeddedPrompts
	if strings.TrimSpace(path) != "" {
		read, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("catalog unreadable, no categories available", "path", path, "err", err)
			return Catalog{}
		}
		data = read
	}
	cat, err := Parse(data)
	if err != nil {
		logger.Warn("catalog loaded with problems", "path", path, "err", err)
	}
	return cat
}

// Names returns category names in sorted order.
func (c Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Prompts returns the prompts for name and whether the category exists.
func (c Catalog) Prompts(name string) ([]string, bool) {
	prompts, ok := c.entries[name]
	return prompts, ok
}

// Len reports how many categories the catalog has.
func (c Catalog) Len() int {
	return len(c.names)
}
