// Package prompt turns the user's selections into the text sent to the image
// service.
package prompt

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/five82/dreamwall/internal/catalog"
)

// Random is the selection meaning "draw uniformly from the real vocabulary".
const Random = "Random"

// Styles lists the art styles a prompt can be rendered in.
var Styles = []string{
	"neon", "synthwave", "dreamy", "fantasy", "cyberpunk", "lowpoly",
	"oil painting", "sketch", "vaporwave", "retrofuturism", "dark fantasy", "anime-style",
	"pixel art", "photorealistic", "watercolor", "line art", "glitchcore", "minimalist",
	"steampunk", "gothic", "concept art", "dreamcore", "hyperrealism", "mosaic",
}

// Descriptors lists the scene descriptors mixed into generated prompts.
var Descriptors = []string{
	"dusk", "sunset", "fog", "crystals", "city", "galaxy", "alien landscape",
	"northern lights", "celestial", "rainy streets", "underwater world", "volcanic eruption",
	"frozen tundra", "overgrown ruins", "infinite void", "parallel universe", "bioluminescence",
	"mystic forest", "lunar surface", "haunted valley", "utopia", "dystopia", "time-lapse sky",
	"electric storm", "floating islands", "neon jungle", "mirror dimension", "sacred temple",
}

// Rand is the random source used for every draw. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Request carries the user's selections.
type Request struct {
	UserText   string
	Style      string
	Descriptor string
	Category   string
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// WithSentinel returns vocab prefixed with Random, the order shown in pickers.
func WithSentinel(vocab []string) []string {
	return append([]string{Random}, vocab...)
}

// Resolve returns choice, or a uniform draw from vocab when choice is Random
// or blank. Unknown non-sentinel values pass through unchanged.
func Resolve(choice string, vocab []string, rng Rand) string {
	if rng == nil {
		rng = globalRand{}
	}
	if choice != "" && choice != Random {
		return choice
	}
	return vocab[rng.IntN(len(vocab))]
}

// Build resolves req into a final prompt. Draws happen in a fixed order
// (style, descriptor, category, prompt) so a seeded source reproduces the
// same output. Build never fails: anything unexpected while reading the
// catalog yields the generic fallback prompt.
func Build(req Request, cat catalog.Catalog, rng Rand) (out string) {
	if rng == nil {
		rng = globalRand{}
	}
	style := Resolve(req.Style, Styles, rng)
	desc := Resolve(req.Descriptor, Descriptors, rng)

	if user := strings.TrimSpace(req.UserText); user != "" {
		return fmt.Sprintf("%s, %s, %s art", user, desc, style)
	}

	defer func() {
		if r := recover(); r != nil {
			out = generic(desc, style)
		}
	}()

	category := req.Category
	if category == "" || category == Random {
		names := cat.Names()
		if len(names) == 0 {
			return generic(desc, style)
		}
		category = names[rng.IntN(len(names))]
	}

	prompts, _ := cat.Prompts(category)
	if len(prompts) == 0 {
		return fmt.Sprintf("unknown dreamscape, %s, %s art", desc, style)
	}
	return prompts[rng.IntN(len(prompts))]
}

func generic(desc, style string) string {
	return fmt.Sprintf("surreal nature, %s, %s art", desc, style)
}

// IsStyle reports whether s is a real style (not the sentinel).
func IsStyle(s string) bool {
	return slices.Contains(Styles, s)
}

// IsDescriptor reports whether s is a real descriptor (not the sentinel).
func IsDescriptor(s string) bool {
	return slices.Contains(Descriptors, s)
}
