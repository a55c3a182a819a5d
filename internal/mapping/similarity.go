package mapping

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Component weights of the combined similarity score.
const (
	weightJaccard  = 0.4
	weightFuzzy    = 0.3
	weightSequence = 0.3
)

// Scorer computes a bounded [0,1] similarity between two strings by
// combining token-set overlap, an edit-distance ratio, and a longest-
// common-subsequence ratio. The edit-distance step is not strictly
// commutative for unequal-length inputs; that asymmetry is accepted.
type Scorer struct {
	tokenizer Tokenizer
}

// NewScorer creates a similarity scorer over the given tokenizer.
func NewScorer(tokenizer Tokenizer) *Scorer {
	return &Scorer{tokenizer: tokenizer}
}

// Score returns the weighted similarity of a and b. Empty or degenerate
// inputs yield 0; identical non-empty strings with at least one non-stop-word
// token yield 1.
func (s *Scorer) Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}

	score := weightJaccard*s.jaccard(a, b) +
		weightFuzzy*fuzzyRatio(a, b) +
		weightSequence*sequenceRatio(a, b)

	return clamp01(score)
}

func (s *Scorer) jaccard(a, b string) float64 {
	setA := toSet(s.tokenizer.Tokenize(a))
	setB := toSet(s.tokenizer.Tokenize(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func fuzzyRatio(a, b string) float64 {
	similarity, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(similarity)
}

func sequenceRatio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	lcs := edlib.LCS(a, b)
	return 2 * float64(lcs) / float64(total)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
