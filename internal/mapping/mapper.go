package mapping

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/providers"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/observability"
	apperrors "github.com/SanyamBinayake/SIH-Demo/pkg/errors"
)

const maxResultCandidates = 5

// Mapper coordinates the mapping strategies and merges their candidates into
// a ranked MappingResult. Strategies run concurrently, each filling its own
// slice; slices are concatenated in fixed strategy order before ranking so
// the outcome is deterministic regardless of scheduling.
type Mapper struct {
	strategies []Strategy
	logger     zerolog.Logger
}

// NewMapper builds a mapper with the full strategy catalogue over the given
// lookup collaborator and tokenizer.
func NewMapper(lookup providers.ConceptLookup, tokenizer Tokenizer, logger zerolog.Logger) *Mapper {
	scorer := NewScorer(tokenizer)
	normalizer := NewNormalizer(tokenizer)
	variants := NewVariantGenerator(tokenizer)
	base := strategyBase{lookup: lookup, scorer: scorer, logger: logger}

	return &Mapper{
		logger: logger,
		strategies: []Strategy{
			&directTermStrategy{strategyBase: base, variants: variants},
			&definitionExtractionStrategy{strategyBase: base, normalizer: normalizer},
			&tm2ChapterStrategy{strategyBase: base, normalizer: normalizer},
			&symptomKeywordStrategy{strategyBase: base},
		},
	}
}

// Map runs every strategy for the source concept and returns the merged,
// deduplicated, ranked result. It fails only when the concept has no
// searchable text; an unreachable lookup degrades to an empty result.
func (m *Mapper) Map(ctx context.Context, source entities.SourceConcept) (*entities.MappingResult, error) {
	if strings.TrimSpace(source.Term) == "" && strings.TrimSpace(source.Definition) == "" {
		return nil, apperrors.NewNotFoundError("source concept has no searchable text")
	}

	ctx, span := observability.StartSpan(ctx, "mapping.Map")
	defer span.End()
	span.SetAttributes(attribute.String("concept.code", source.Code))

	perStrategy := make([][]entities.Candidate, len(m.strategies))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, strategy := range m.strategies {
		group.Go(func() error {
			perStrategy[i] = strategy.Candidates(groupCtx, source)
			return nil
		})
	}
	// Strategies absorb their own failures, so the only error path is a
	// cancelled context, which still leaves valid (possibly empty) slices.
	_ = group.Wait()

	var all []entities.Candidate
	for _, candidates := range perStrategy {
		all = append(all, candidates...)
	}

	ranked := rank(all)
	result := &entities.MappingResult{
		Source:          source,
		Candidates:      ranked,
		TotalCandidates: len(all),
		Success:         len(ranked) > 0,
	}

	span.SetAttributes(
		attribute.Int("candidates.considered", len(all)),
		attribute.Int("candidates.returned", len(ranked)),
	)
	m.logger.Debug().
		Str("code", source.Code).
		Int("considered", len(all)).
		Int("returned", len(ranked)).
		Msg("mapped source concept")

	return result, nil
}

// rank deduplicates candidates by code and sorts by confidence.
//
// Duplicate policy: the first-seen occurrence of a code wins, even when a
// later strategy scored the same code higher. Strategies are ordered by
// trustworthiness, so first-seen keeps the more direct evidence; the policy
// is deliberate and relied on by tests.
func rank(candidates []entities.Candidate) []entities.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]entities.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Code]; ok {
			continue
		}
		seen[c.Code] = struct{}{}
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Confidence > unique[j].Confidence
	})

	if len(unique) > maxResultCandidates {
		unique = unique[:maxResultCandidates]
	}
	return unique
}
