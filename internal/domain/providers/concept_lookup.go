package providers

import (
	"context"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
)

// ConceptLookup is the external vocabulary lookup consumed by the mapping
// engine. Implementations own their authentication and rate limiting.
//
// Search returns an empty slice (not an error) for a non-matching query.
// Transport or auth failures surface as errors; callers treat those as
// "no candidates from this call". chapterFilter restricts the search to one
// chapter of the vocabulary (empty string means unfiltered).
type ConceptLookup interface {
	Search(ctx context.Context, query, chapterFilter string, limit int) ([]entities.ExternalConcept, error)
}
