package catalog

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/five82/dreamwall/internal/failure"
)

func TestEmbedded_HasSortedNonEmptyCategories(t *testing.T) {
	cat := Embedded()
	if cat.Len() == 0 {
		t.Fatalf("embedded catalog is empty")
	}
	names := cat.Names()
	if !slices.IsSorted(names) {
		t.Fatalf("Names not sorted: %v", names)
	}
	for _, name := range names {
		prompts, ok := cat.Prompts(name)
		if !ok || len(prompts) == 0 {
			t.Fatalf("category %q has no prompts", name)
		}
	}
}

func TestParse_MalformedCategoryKeptEmpty(t *testing.T) {
	cat, err := Parse([]byte(`{"Good": ["a", "  ", "b"], "Bad": 42, "Empty": []}`))
	if err == nil {
		t.Fatalf("Parse returned nil error for malformed category")
	}
	if failure.KindOf(err) != failure.PromptResolution {
		t.Fatalf("KindOf = %v, want PromptResolution", failure.KindOf(err))
	}

	if got := cat.Names(); !slices.Equal(got, []string{"Bad", "Empty", "Good"}) {
		t.Fatalf("Names = %v", got)
	}
	good, _ := cat.Prompts("Good")
	if !slices.Equal(good, []string{"a", "b"}) {
		t.Fatalf("Good = %v, want blanks dropped", good)
	}
	bad, ok := cat.Prompts("Bad")
	if !ok || len(bad) != 0 {
		t.Fatalf("Bad = %v (ok=%v), want present and empty", bad, ok)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	cat, err := Parse([]byte(`[`))
	if err == nil {
		t.Fatalf("Parse returned nil error")
	}
	if failure.KindOf(err) != failure.ConfigLoad {
		t.Fatalf("KindOf = %v, want ConfigLoad", failure.KindOf(err))
	}
	if cat.Len() != 0 {
		t.Fatalf("Len = %d, want 0", cat.Len())
	}
}

func TestLoad_MissingFileYieldsEmptyCatalog(t *testing.T) {
	cat := Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	if cat.Len() != 0 {
		t.Fatalf("Len = %d, want 0", cat.Len())
	}
}

func TestLoad_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.json")
	if err := os.WriteFile(path, []byte(`{"Only": ["one prompt"]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cat := Load(path, nil)
	if got := cat.Names(); !slices.Equal(got, []string{"Only"}) {
		t.Fatalf("Names = %v", got)
	}
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	if Load("", nil).Len() != Embedded().Len() {
		t.Fatalf("Load(\"\") should return the embedded catalog")
	}
}

func TestNames_ReturnsCopy(t *testing.T) {
	cat := New(map[string][]string{"A": {"x"}, "B": {"y"}})
	names := cat.Names()
	names[0] = "mutated"
	if cat.Names()[0] != "A" {
		t.Fatalf("Names exposed internal slice")
	}
}
