package mapping

import (
	"regexp"
	"strings"

	"github.com/surgebase/porter2"
)

// Tokenizer turns free text into lower-cased word tokens with stop words and
// very short tokens removed. The linguistic implementation additionally stems
// tokens; the fallback keeps the same filtering rules with no stemming, so
// only stemming accuracy degrades, never the filtering contract.
type Tokenizer interface {
	Tokenize(text string) []string
	Stem(word string) string
	Name() string
}

const minTokenLen = 3

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "with": {}, "from": {}, "that": {}, "this": {},
	"are": {}, "was": {}, "for": {}, "not": {}, "its": {}, "all": {},
	"has": {}, "have": {}, "had": {}, "can": {}, "may": {}, "which": {},
	"into": {}, "due": {}, "such": {}, "also": {}, "other": {}, "when": {},
	"where": {}, "there": {}, "been": {}, "being": {}, "more": {}, "most": {},
	"some": {}, "than": {}, "then": {}, "these": {}, "those": {}, "upon": {},
	"characterized": {}, "associated": {}, "caused": {}, "known": {},
	"condition": {}, "disease": {}, "disorder": {}, "patient": {},
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// PorterTokenizer is the linguistic tokenizer backed by the porter2 stemmer.
type PorterTokenizer struct{}

// NewTokenizer returns the linguistic tokenizer used by default.
func NewTokenizer() *PorterTokenizer {
	return &PorterTokenizer{}
}

func (t *PorterTokenizer) Name() string { return "porter2" }

func (t *PorterTokenizer) Stem(word string) string {
	return porter2.Stem(strings.ToLower(word))
}

func (t *PorterTokenizer) Tokenize(text string) []string {
	return splitWords(text)
}

// FallbackTokenizer is the degraded regex-only tokenizer. Same filtering
// rules as the linguistic tokenizer; Stem is the identity.
type FallbackTokenizer struct{}

// NewFallbackTokenizer returns the degraded tokenizer.
func NewFallbackTokenizer() *FallbackTokenizer {
	return &FallbackTokenizer{}
}

func (t *FallbackTokenizer) Name() string { return "fallback" }

func (t *FallbackTokenizer) Stem(word string) string {
	return strings.ToLower(word)
}

func (t *FallbackTokenizer) Tokenize(text string) []string {
	return splitWords(text)
}

func splitWords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < minTokenLen || isStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
