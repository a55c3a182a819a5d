package mapping

import "testing"

func containsVariant(variants []string, want string) bool {
	for _, v := range variants {
		if v == want {
			return true
		}
	}
	return false
}

func TestExpand_IncludesOriginalTerm(t *testing.T) {
	g := NewVariantGenerator(NewTokenizer())
	variants := g.Expand("Fever")
	if !containsVariant(variants, "fever") {
		t.Errorf("expected lowercased original among %v", variants)
	}
}

func TestExpand_EmptyTerm(t *testing.T) {
	g := NewVariantGenerator(NewTokenizer())
	if got := g.Expand("  "); len(got) != 0 {
		t.Errorf("expected no variants, got %v", got)
	}
}

func TestExpand_PluralToggle(t *testing.T) {
	g := NewVariantGenerator(NewTokenizer())

	if variants := g.Expand("ulcers"); !containsVariant(variants, "ulcer") {
		t.Errorf("expected singular form among %v", variants)
	}
	if variants := g.Expand("ulcer"); !containsVariant(variants, "ulcers") {
		t.Errorf("expected plural form among %v", variants)
	}
}

func TestExpand_SuffixToggleStripsKnownSuffix(t *testing.T) {
	g := NewVariantGenerator(NewTokenizer())
	variants := g.Expand("gastritis")
	if !containsVariant(variants, "gastr") {
		t.Errorf("expected suffix-stripped root among %v", variants)
	}
}

func TestExpand_MinimumVariantLength(t *testing.T) {
	g := NewVariantGenerator(NewTokenizer())
	for _, term := range []string{"a", "flu", "gastritis"} {
		for _, v := range g.Expand(term) {
			if len(v) < minVariantLen {
				t.Errorf("Expand(%q) produced too-short variant %q", term, v)
			}
		}
	}
}

func TestExpand_Deduplicates(t *testing.T) {
	g := NewVariantGenerator(NewTokenizer())
	variants := g.Expand("fever")
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if _, dup := seen[v]; dup {
			t.Errorf("duplicate variant %q in %v", v, variants)
		}
		seen[v] = struct{}{}
	}
}
