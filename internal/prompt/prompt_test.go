package prompt

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/five82/dreamwall/internal/catalog"
)

var suffixPattern = regexp.MustCompile(`^(.*), ([^,]+), ([^,]+) art$`)

func splitSuffix(t *testing.T, out string) (head, desc, style string) {
	t.Helper()
	m := suffixPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("prompt %q does not match \"{text}, {descriptor}, {style} art\"", out)
	}
	return m[1], m[2], m[3]
}

// badRand returns out-of-range indexes to exercise the recovery path.
type badRand struct{ calls int }

func (b *badRand) IntN(n int) int {
	b.calls++
	if b.calls <= 2 {
		return 0
	}
	return n + 5
}

func TestBuild_UserTextAlwaysUsesSuffix(t *testing.T) {
	cat := catalog.Embedded()
	for seed := uint64(0); seed < 200; seed++ {
		out := Build(Request{
			UserText:   "  a quiet harbor  ",
			Style:      Random,
			Descriptor: Random,
			Category:   "Space",
		}, cat, NewRand(seed))

		head, desc, style := splitSuffix(t, out)
		if head != "a quiet harbor" {
			t.Fatalf("head = %q, want trimmed user text", head)
		}
		if !IsDescriptor(desc) {
			t.Fatalf("descriptor %q not from vocabulary", desc)
		}
		if !IsStyle(style) {
			t.Fatalf("style %q not from vocabulary", style)
		}
	}
}

func TestBuild_ExplicitSelectionsPassThrough(t *testing.T) {
	out := Build(Request{UserText: "castle", Style: "gothic", Descriptor: "fog"}, catalog.Catalog{}, NewRand(1))
	if out != "castle, fog, gothic art" {
		t.Fatalf("Build = %q", out)
	}
}

func TestBuild_CatalogEntryReturnedVerbatim(t *testing.T) {
	cat := catalog.New(map[string][]string{
		"Space":  {"nebula one", "nebula two"},
		"Nature": {"forest"},
	})
	var all []string
	for _, name := range cat.Names() {
		prompts, _ := cat.Prompts(name)
		all = append(all, prompts...)
	}

	for seed := uint64(0); seed < 200; seed++ {
		for _, category := range []string{Random, "", "Space", "Nature"} {
			out := Build(Request{UserText: "   ", Style: Random, Descriptor: Random, Category: category}, cat, NewRand(seed))
			if !slices.Contains(all, out) {
				t.Fatalf("category %q: %q is not a catalog entry", category, out)
			}
		}
	}
}

func TestBuild_NamedCategoryStaysInCategory(t *testing.T) {
	cat := catalog.New(map[string][]string{"A": {"a1", "a2"}, "B": {"b1"}})
	for seed := uint64(0); seed < 50; seed++ {
		out := Build(Request{Category: "A"}, cat, NewRand(seed))
		if out != "a1" && out != "a2" {
			t.Fatalf("Build = %q, want an A prompt", out)
		}
	}
}

func TestBuild_EmptyCatalogUsesGenericTemplate(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		out := Build(Request{Style: Random, Descriptor: Random, Category: Random}, catalog.Catalog{}, NewRand(seed))
		head, desc, style := splitSuffix(t, out)
		if head != "surreal nature" || !IsDescriptor(desc) || !IsStyle(style) {
			t.Fatalf("Build = %q, want generic fallback", out)
		}
	}
}

func TestBuild_SeededEmptyCatalogIsReproducible(t *testing.T) {
	req := Request{Style: Random, Descriptor: Random, Category: Random}
	first := Build(req, catalog.Catalog{}, NewRand(42))
	second := Build(req, catalog.Catalog{}, NewRand(42))
	if first != second {
		t.Fatalf("seeded builds differ: %q vs %q", first, second)
	}

	rng := NewRand(42)
	style := Styles[rng.IntN(len(Styles))]
	desc := Descriptors[rng.IntN(len(Descriptors))]
	want := fmt.Sprintf("surreal nature, %s, %s art", desc, style)
	if first != want {
		t.Fatalf("Build = %q, want %q", first, want)
	}
}

func TestBuild_UnknownOrEmptyCategory(t *testing.T) {
	cat := catalog.New(map[string][]string{"Empty": nil, "Full": {"x"}})
	for _, category := range []string{"Missing", "Empty"} {
		out := Build(Request{Style: "neon", Descriptor: "fog", Category: category}, cat, NewRand(3))
		if out != "unknown dreamscape, fog, neon art" {
			t.Fatalf("category %q: Build = %q", category, out)
		}
	}
}

func TestBuild_RecoversFromBadDraws(t *testing.T) {
	cat := catalog.New(map[string][]string{"A": {"a"}})
	out := Build(Request{Style: Random, Descriptor: Random, Category: Random}, cat, &badRand{})
	if !strings.HasPrefix(out, "surreal nature, ") || !strings.HasSuffix(out, " art") {
		t.Fatalf("Build = %q, want generic fallback after recovery", out)
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("neon", Styles, NewRand(1)); got != "neon" {
		t.Fatalf("Resolve(neon) = %q", got)
	}
	if got := Resolve("my own style", Styles, NewRand(1)); got != "my own style" {
		t.Fatalf("Resolve(custom) = %q, want passthrough", got)
	}
	for _, choice := range []string{Random, ""} {
		got := Resolve(choice, Styles, NewRand(7))
		if got == Random || !IsStyle(got) {
			t.Fatalf("Resolve(%q) = %q, want a vocabulary entry", choice, got)
		}
	}
	if got := Resolve(Random, Styles, nil); !IsStyle(got) {
		t.Fatalf("Resolve with nil rng = %q", got)
	}
}

func TestWithSentinel(t *testing.T) {
	got := WithSentinel(Styles)
	if got[0] != Random || len(got) != len(Styles)+1 {
		t.Fatalf("WithSentinel = %v", got[:3])
	}
	if Styles[0] == Random {
		t.Fatalf("WithSentinel mutated the vocabulary")
	}
}
