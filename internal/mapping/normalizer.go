package mapping

import (
	"regexp"
	"strings"
)

const (
	maxFragments   = 10
	minFragmentLen = 3
	minBigramLen   = 7
)

var (
	bracketedAside = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	clauseDelim    = regexp.MustCompile(`[.;,/\-]`)
)

// clinicalPatterns is the fixed catalogue of clinically meaningful phrases
// scanned for in definitions. Hits are added ahead of plain tokens since they
// carry more signal as search queries.
var clinicalPatterns = []string{
	"abdominal pain",
	"joint pain",
	"body ache",
	"burning sensation",
	"loss of appetite",
	"skin disease",
	"digestive disorder",
	"elevated body temperature",
	"fever",
	"pain",
	"swelling",
	"inflammation",
	"cough",
	"headache",
	"vomiting",
	"nausea",
	"diarrhea",
	"diarrhoea",
	"constipation",
	"jaundice",
	"anemia",
	"anaemia",
	"ulcer",
	"itching",
	"rash",
	"fatigue",
	"weakness",
	"giddiness",
	"indigestion",
	"thirst",
}

// Normalizer reduces free text to a bounded set of search-worthy fragments.
type Normalizer struct {
	tokenizer Tokenizer
}

// NewNormalizer creates a normalizer over the given tokenizer.
func NewNormalizer(tokenizer Tokenizer) *Normalizer {
	return &Normalizer{tokenizer: tokenizer}
}

// Fragments extracts up to maxFragments unique lexical fragments from text:
// clinical-pattern hits, stemmed tokens, and discriminative bigrams, in that
// extraction order. Pure function of its input.
func (n *Normalizer) Fragments(text string) []string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return nil
	}
	lowered = bracketedAside.ReplaceAllString(lowered, " ")

	seen := make(map[string]struct{})
	var fragments []string
	add := func(fragment string) {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) < minFragmentLen || len(fragments) >= maxFragments {
			return
		}
		if _, ok := seen[fragment]; ok {
			return
		}
		seen[fragment] = struct{}{}
		fragments = append(fragments, fragment)
	}

	for _, pattern := range clinicalPatterns {
		if strings.Contains(lowered, pattern) {
			add(pattern)
		}
	}

	for _, clause := range clauseDelim.Split(lowered, -1) {
		tokens := n.tokenizer.Tokenize(clause)
		for _, token := range tokens {
			add(n.tokenizer.Stem(token))
		}
		for i := 0; i+1 < len(tokens); i++ {
			bigram := tokens[i] + " " + tokens[i+1]
			if len(bigram) >= minBigramLen {
				add(bigram)
			}
		}
	}

	return fragments
}
