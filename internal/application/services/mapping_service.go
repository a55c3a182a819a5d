package services

import (
	"context"
	"encoding/json"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/providers"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/observability"
	"github.com/SanyamBinayake/SIH-Demo/internal/mapping"
	"github.com/SanyamBinayake/SIH-Demo/internal/terminology"
)

const mappingCacheTTLSeconds = 3600

// MappingService resolves a NAMASTE code to its concept and runs the mapping
// engine, caching results per code.
type MappingService struct {
	store   *terminology.Store
	mapper  *mapping.Mapper
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewMappingService creates a new mapping service.
func NewMappingService(store *terminology.Store, mapper *mapping.Mapper) *MappingService {
	return &MappingService{
		store:  store,
		mapper: mapper,
	}
}

// SetCache sets the cache provider for mapping results.
func (s *MappingService) SetCache(cache providers.CacheProvider) {
	s.cache = cache
}

// SetMetrics sets the metrics sink.
func (s *MappingService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// MapCode maps one NAMASTE code to ICD-11 candidates.
func (s *MappingService) MapCode(ctx context.Context, code string) (*entities.MappingResult, error) {
	concept, err := s.store.Get(code)
	if err != nil {
		return nil, err
	}
	return s.MapConcept(ctx, *concept)
}

// MapConcept runs the mapping engine for an already-resolved concept.
func (s *MappingService) MapConcept(ctx context.Context, concept entities.SourceConcept) (*entities.MappingResult, error) {
	cacheKey := "map:" + concept.Code

	if s.cache != nil && concept.Code != "" {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached entities.MappingResult
			if json.Unmarshal(data, &cached) == nil {
				if s.metrics != nil {
					observability.RecordCacheHit(ctx, s.metrics, cacheKey)
				}
				return &cached, nil
			}
		} else if s.metrics != nil {
			observability.RecordCacheMiss(ctx, s.metrics, cacheKey)
		}
	}

	result, err := s.mapper.Map(ctx, concept)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		observability.RecordCandidatesConsidered(ctx, s.metrics, result.TotalCandidates)
	}

	// Only successful mappings are cached; a transient lookup outage should
	// not pin an empty result for an hour.
	if s.cache != nil && concept.Code != "" && result.Success {
		if data, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, mappingCacheTTLSeconds)
		}
	}

	return result, nil
}
