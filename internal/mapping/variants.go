package mapping

import "strings"

// domainSuffixes is the fixed catalogue of medical morphological suffixes
// toggled when generating query variants.
var domainSuffixes = []string{"itis", "osis", "emia", "algia", "pathy", "iasis"}

const (
	minVariantLen = 2
	minRootLen    = 3
	minSuffixBase = 4
)

// VariantGenerator expands a term into alternate forms likely to appear in
// the external vocabulary.
type VariantGenerator struct {
	tokenizer Tokenizer
}

// NewVariantGenerator creates a variant generator over the given tokenizer.
func NewVariantGenerator(tokenizer Tokenizer) *VariantGenerator {
	return &VariantGenerator{tokenizer: tokenizer}
}

// Expand returns a deduplicated set of variants: the original term, its
// stemmed form when it differs, the plural-toggled form, and suffix-toggled
// forms for the domain suffix catalogue. Deterministic for a given input.
func (g *VariantGenerator) Expand(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var variants []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if len(v) < minVariantLen {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	add(term)

	if stemmed := g.tokenizer.Stem(term); stemmed != term {
		add(stemmed)
	}

	if strings.HasSuffix(term, "s") {
		add(strings.TrimSuffix(term, "s"))
	} else {
		add(term + "s")
	}

	for _, suffix := range domainSuffixes {
		if strings.HasSuffix(term, suffix) {
			if root := strings.TrimSuffix(term, suffix); len(root) >= minRootLen {
				add(root)
			}
		} else if len(term) >= minSuffixBase {
			add(term + suffix)
		}
	}

	return variants
}
