package services

import (
	"context"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/providers"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/repositories"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/observability"
	"github.com/SanyamBinayake/SIH-Demo/internal/terminology"
	apperrors "github.com/SanyamBinayake/SIH-Demo/pkg/errors"
)

const (
	autocompleteLimit = 20
	icdSearchLimit    = 10
)

// ICDSystemURI identifies the ICD-11 MMS linearization in API responses.
const ICDSystemURI = "http://id.who.int/icd/release/11/mms"

// AutocompleteResult is one suggestion from the merged NAMASTE + ICD search.
type AutocompleteResult struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display"`
	Source  string `json:"source"`
}

// ConceptService serves NAMASTE terminology browsing and the merged
// autocomplete over the local terminology and the ICD-11 API.
type ConceptService struct {
	store      *terminology.Store
	searchRepo repositories.ConceptSearchRepository
	lookup     providers.ConceptLookup
}

// NewConceptService creates a new concept service. searchRepo and lookup are
// optional; autocomplete degrades to the in-memory store and local-only
// results when they are absent.
func NewConceptService(store *terminology.Store, searchRepo repositories.ConceptSearchRepository, lookup providers.ConceptLookup) *ConceptService {
	return &ConceptService{
		store:      store,
		searchRepo: searchRepo,
		lookup:     lookup,
	}
}

// List returns up to limit concepts for browsing.
func (s *ConceptService) List(limit int) []*entities.SourceConcept {
	return s.store.List(limit)
}

// Get returns one concept by code.
func (s *ConceptService) Get(code string) (*entities.SourceConcept, error) {
	return s.store.Get(code)
}

// Autocomplete merges local NAMASTE matches with live ICD-11 matches,
// capped at autocompleteLimit. ICD failures degrade to local-only results.
func (s *ConceptService) Autocomplete(ctx context.Context, query string) []AutocompleteResult {
	logger := observability.LoggerFromContext(ctx)

	var results []AutocompleteResult
	for _, concept := range s.searchLocal(ctx, query) {
		results = append(results, AutocompleteResult{
			System:  terminology.SystemURI,
			Code:    concept.Code,
			Display: concept.Term,
			Source:  "NAMASTE",
		})
	}

	if s.lookup != nil {
		external, err := s.lookup.Search(ctx, query, "", icdSearchLimit)
		if err != nil {
			logger.Warn().Err(err).Str("query", query).Msg("ICD autocomplete lookup failed, returning local results only")
		}
		for _, concept := range external {
			results = append(results, AutocompleteResult{
				System:  ICDSystemURI,
				Code:    concept.Code,
				Display: concept.Term,
				Source:  "ICD-11",
			})
		}
	}

	if len(results) > autocompleteLimit {
		results = results[:autocompleteLimit]
	}
	return results
}

// SearchICD searches the ICD-11 API directly.
func (s *ConceptService) SearchICD(ctx context.Context, query string) ([]entities.ExternalConcept, error) {
	if s.lookup == nil {
		return nil, apperrors.NewExternalError("ICD-11 lookup is not configured", nil)
	}
	return s.lookup.Search(ctx, query, "", icdSearchLimit)
}

// searchLocal prefers the Typesense index and falls back to the in-memory
// substring scan when the index is unavailable.
func (s *ConceptService) searchLocal(ctx context.Context, query string) []*entities.SourceConcept {
	if s.searchRepo != nil {
		concepts, err := s.searchRepo.Search(ctx, query, autocompleteLimit)
		if err == nil {
			return concepts
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("concept index search failed, falling back to in-memory scan")
	}
	return s.store.Search(query, autocompleteLimit)
}
