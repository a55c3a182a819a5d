package mapping

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/providers"
)

// Per-call budget for the external lookup. A call that exceeds it simply
// contributes zero candidates; the engine never retries.
const lookupTimeout = 10 * time.Second

// TM2Chapter is the ICD-11 traditional medicine chapter used by the
// chapter-restricted strategy.
const TM2Chapter = "26"

const (
	directTermMaxQueries   = 5
	directTermResultLimit  = 5
	definitionMaxFragments = 7
	definitionResultLimit  = 3
	chapterMaxFragments    = 5
	chapterResultLimit     = 3
	chapterBoost           = 1.3
	symptomResultLimit     = 3
	symptomDiscount        = 0.8
	definitionWeightDef    = 0.7
	definitionWeightTerm   = 0.3
)

// symptomCatalogue is the fixed set of symptom keywords scanned for by the
// symptom-keyword strategy.
var symptomCatalogue = []string{
	"pain", "fever", "nausea", "swelling", "cough", "headache",
	"vomiting", "diarrhea", "diarrhoea", "constipation", "fatigue",
	"itching", "rash", "weakness", "thirst",
}

// Strategy is one independent heuristic that produces zero or more scored
// candidates for a source concept. Strategies never mutate shared state and
// absorb lookup failures locally.
type Strategy interface {
	Kind() entities.StrategyKind
	Candidates(ctx context.Context, source entities.SourceConcept) []entities.Candidate
}

type strategyBase struct {
	lookup providers.ConceptLookup
	scorer *Scorer
	logger zerolog.Logger
}

// search performs one bounded lookup call, returning nil on any failure.
// A missing lookup collaborator counts as a failure too: the API runs
// without WHO credentials and every strategy then contributes nothing.
func (b *strategyBase) search(ctx context.Context, kind entities.StrategyKind, query, chapterFilter string, limit int) []entities.ExternalConcept {
	if b.lookup == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	results, err := b.lookup.Search(callCtx, query, chapterFilter, limit)
	if err != nil {
		b.logger.Warn().
			Err(err).
			Str("strategy", string(kind)).
			Str("query", query).
			Msg("lookup call failed, contributing zero candidates")
		return nil
	}
	return results
}

// directTermStrategy queries the lookup with the raw term and its variants
// and scores results against the term.
type directTermStrategy struct {
	strategyBase
	variants *VariantGenerator
}

func (s *directTermStrategy) Kind() entities.StrategyKind {
	return entities.StrategyDirectTerm
}

func (s *directTermStrategy) Candidates(ctx context.Context, source entities.SourceConcept) []entities.Candidate {
	queries := uniqueNonEmpty(append([]string{strings.TrimSpace(source.Term)}, s.variants.Expand(source.Term)...))
	if len(queries) > directTermMaxQueries {
		queries = queries[:directTermMaxQueries]
	}

	var candidates []entities.Candidate
	for _, query := range queries {
		for _, result := range s.search(ctx, s.Kind(), query, "", directTermResultLimit) {
			candidates = append(candidates, entities.Candidate{
				Code:       result.Code,
				Term:       result.Term,
				Definition: result.Definition,
				Confidence: clamp01(s.scorer.Score(source.Term, result.Term)),
				Method:     s.Kind(),
				SearchTerm: query,
			})
		}
	}
	return candidates
}

// definitionExtractionStrategy queries with fragments extracted from the
// definition and scores results mainly against the full definition.
type definitionExtractionStrategy struct {
	strategyBase
	normalizer *Normalizer
}

func (s *definitionExtractionStrategy) Kind() entities.StrategyKind {
	return entities.StrategyDefinitionExtraction
}

func (s *definitionExtractionStrategy) Candidates(ctx context.Context, source entities.SourceConcept) []entities.Candidate {
	fragments := s.normalizer.Fragments(source.Definition)
	if len(fragments) > definitionMaxFragments {
		fragments = fragments[:definitionMaxFragments]
	}

	var candidates []entities.Candidate
	for _, fragment := range fragments {
		for _, result := range s.search(ctx, s.Kind(), fragment, "", definitionResultLimit) {
			score := definitionWeightDef*s.scorer.Score(source.Definition, result.Definition) +
				definitionWeightTerm*s.scorer.Score(fragment, result.Term)
			candidates = append(candidates, entities.Candidate{
				Code:       result.Code,
				Term:       result.Term,
				Definition: result.Definition,
				Confidence: clamp01(score),
				Method:     s.Kind(),
				SearchTerm: fragment,
			})
		}
	}
	return candidates
}

// tm2ChapterStrategy restricts the lookup to the traditional medicine chapter
// and boosts scores, since chapter-filtered matches are a priori more likely
// to be correct for NAMASTE concepts.
type tm2ChapterStrategy struct {
	strategyBase
	normalizer *Normalizer
}

func (s *tm2ChapterStrategy) Kind() entities.StrategyKind {
	return entities.StrategyTM2Chapter
}

func (s *tm2ChapterStrategy) Candidates(ctx context.Context, source entities.SourceConcept) []entities.Candidate {
	fragments := s.normalizer.Fragments(source.Definition)
	if len(fragments) > chapterMaxFragments {
		fragments = fragments[:chapterMaxFragments]
	}
	queries := uniqueNonEmpty(append([]string{strings.TrimSpace(source.Term)}, fragments...))

	var candidates []entities.Candidate
	for _, query := range queries {
		for _, result := range s.search(ctx, s.Kind(), query, TM2Chapter, chapterResultLimit) {
			score := s.scorer.Score(source.Definition, result.Definition) * chapterBoost
			candidates = append(candidates, entities.Candidate{
				Code:       result.Code,
				Term:       result.Term,
				Definition: result.Definition,
				Confidence: clamp01(score),
				Method:     s.Kind(),
				SearchTerm: query,
			})
		}
	}
	return candidates
}

// symptomKeywordStrategy queries with symptom words found in the definition.
// Symptom-only overlap is a weaker signal, so scores are discounted.
type symptomKeywordStrategy struct {
	strategyBase
}

func (s *symptomKeywordStrategy) Kind() entities.StrategyKind {
	return entities.StrategySymptomKeyword
}

func (s *symptomKeywordStrategy) Candidates(ctx context.Context, source entities.SourceConcept) []entities.Candidate {
	words := wordSet(strings.ToLower(source.Definition))

	var candidates []entities.Candidate
	for _, symptom := range symptomCatalogue {
		if _, ok := words[symptom]; !ok {
			continue
		}
		for _, result := range s.search(ctx, s.Kind(), symptom, "", symptomResultLimit) {
			score := symptomDiscount * s.scorer.Score(source.Definition, result.Definition)
			candidates = append(candidates, entities.Candidate{
				Code:       result.Code,
				Term:       result.Term,
				Definition: result.Definition,
				Confidence: clamp01(score),
				Method:     s.Kind(),
				SearchTerm: symptom,
			})
		}
	}
	return candidates
}

// wordSet splits text into letter runs so catalogue keywords match whole
// words only ("rash" must not fire on "crashing").
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) }) {
		set[w] = struct{}{}
	}
	return set
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
