package repositories

import (
	"context"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
)

// ConceptSearchRepository defines full-text search over the NAMASTE terminology
type ConceptSearchRepository interface {
	Index(ctx context.Context, concept *entities.SourceConcept) error
	IndexBatch(ctx context.Context, concepts []*entities.SourceConcept) error
	Search(ctx context.Context, query string, limit int) ([]*entities.SourceConcept, error)
}
