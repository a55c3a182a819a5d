package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/repositories"
	tsclient "github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/clients/typesense"
	"github.com/SanyamBinayake/SIH-Demo/internal/terminology"
)

// TypesenseAdapter implements NAMASTE concept search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ConceptSearchRepository
var _ repositories.ConceptSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the concepts collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.ConceptsCollection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: tsclient.ConceptsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "code", Type: "string"},
			{Name: "term", Type: "string"},
			{Name: "regional_term", Type: "string", Optional: pointer.True()},
			{Name: "definition", Type: "string", Optional: pointer.True()},
			{Name: "long_definition", Type: "string", Optional: pointer.True()},
		},
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

// Index indexes one concept
func (a *TypesenseAdapter) Index(ctx context.Context, concept *entities.SourceConcept) error {
	_, err := a.client.Client().Collection(tsclient.ConceptsCollection).Documents().Upsert(ctx, conceptDocument(concept))
	if err != nil {
		return fmt.Errorf("failed to index concept %s: %w", concept.Code, err)
	}
	return nil
}

// IndexBatch indexes a batch of concepts
func (a *TypesenseAdapter) IndexBatch(ctx context.Context, concepts []*entities.SourceConcept) error {
	documents := make([]interface{}, 0, len(concepts))
	for _, concept := range concepts {
		documents = append(documents, conceptDocument(concept))
	}
	if len(documents) == 0 {
		return nil
	}

	action := "upsert"
	_, err := a.client.Client().Collection(tsclient.ConceptsCollection).Documents().Import(ctx, documents, &api.ImportDocumentsParams{
		Action: &action,
	})
	if err != nil {
		return fmt.Errorf("failed to import concepts: %w", err)
	}
	return nil
}

// Search searches concepts by term, regional term, and definitions
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.SourceConcept, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("term,regional_term,definition,long_definition,code"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.ConceptsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search concepts: %w", err)
	}

	concepts := []*entities.SourceConcept{}
	if result.Hits == nil {
		return concepts, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		concept := &entities.SourceConcept{System: terminology.SystemURI}
		if v, ok := doc["code"].(string); ok {
			concept.Code = v
		}
		if v, ok := doc["term"].(string); ok {
			concept.Term = v
		}
		if v, ok := doc["regional_term"].(string); ok {
			concept.RegionalTerm = v
		}
		if v, ok := doc["definition"].(string); ok {
			concept.Definition = v
		}
		if v, ok := doc["long_definition"].(string); ok {
			concept.LongDefinition = v
		}
		concepts = append(concepts, concept)
	}
	return concepts, nil
}

func conceptDocument(concept *entities.SourceConcept) map[string]interface{} {
	return map[string]interface{}{
		"id":              concept.Code,
		"code":            concept.Code,
		"term":            concept.Term,
		"regional_term":   concept.RegionalTerm,
		"definition":      concept.Definition,
		"long_definition": concept.LongDefinition,
	}
}
