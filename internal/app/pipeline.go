package app

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/five82/dreamwall/internal/catalog"
	"github.com/five82/dreamwall/internal/imagegen"
	"github.com/five82/dreamwall/internal/prompt"
	"github.com/five82/dreamwall/internal/refresh"
	"github.com/five82/dreamwall/internal/settings"
	"github.com/five82/dreamwall/internal/wallpaper"
)

// Pipeline is the generate-and-set cycle: build a prompt, fetch the image,
// save it and hand it to the desktop.
type Pipeline struct {
	Catalog   catalog.Catalog
	Fetcher   imagegen.Fetcher
	Setter    wallpaper.Setter
	ImagePath string // alternates with wallpaper.AlternatePath(ImagePath)
	Width     int    // zero detects the screen
	Height    int
	Fit       bool
	Rand      prompt.Rand // nil uses the global source
	Logger    *log.Logger

	// dimensions is swapped in tests to avoid probing the display.
	dimensions func(ctx context.Context, w, h int) (int, int)

	mu       sync.Mutex
	override string
	applied  string // image path of the last successful cycle
}

var _ refresh.Cycler = (*Pipeline)(nil)

// SetOverride sets a free-text prompt that takes precedence over the
// persisted last_prompt for this process only.
func (p *Pipeline) SetOverride(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.override = strings.TrimSpace(text)
}

// Override returns the in-process free-text prompt.
func (p *Pipeline) Override() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.override
}

// Prompt resolves the prompt the next cycle would use for st.
func (p *Pipeline) Prompt(st settings.Settings) string {
	text := p.Override()
	if text == "" {
		text = st.LastPrompt
	}
	return prompt.Build(prompt.Request{
		UserText:   text,
		Style:      st.Style,
		Descriptor: st.Descriptor,
		Category:   st.Category,
	}, p.Catalog, p.Rand)
}

// Cycle implements refresh.Cycler. No step is retried.
func (p *Pipeline) Cycle(ctx context.Context, st settings.Settings) (refresh.Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dims := p.dimensions
	if dims == nil {
		dims = wallpaper.Dimensions
	}

	text := p.Prompt(st)
	res := refresh.Result{Prompt: text}

	w, h := dims(ctx, p.Width, p.Height)
	logger.Debug("fetching image", "prompt", text, "width", w, "height", h)

	data, err := p.Fetcher.Fetch(ctx, text, w, h)
	if err != nil {
		return res, err
	}
	target := p.target()
	if err := wallpaper.Save(data, target, w, h, p.Fit); err != nil {
		return res, err
	}
	if err := p.Setter.Apply(ctx, target); err != nil {
		return res, err
	}
	p.mu.Lock()
	p.applied = target
	p.mu.Unlock()
	res.ImagePath = target
	return res, nil
}

// target alternates between ImagePath and its sibling so the desktop sees
// a new file every cycle. A fresh process continues from whichever file was
// written last.
func (p *Pipeline) target() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	alt := wallpaper.AlternatePath(p.ImagePath)
	if p.applied == "" {
		p.applied = wallpaper.Newest(p.ImagePath, alt)
	}
	if p.applied == p.ImagePath {
		return alt
	}
	return p.ImagePath
}
