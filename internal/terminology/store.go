package terminology

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	apperrors "github.com/SanyamBinayake/SIH-Demo/pkg/errors"
)

// SystemURI identifies the NAMASTE code system in API responses.
const SystemURI = "https://demo.sih/fhir/CodeSystem/namaste"

// Store is an in-memory NAMASTE terminology, loaded once from the source CSV
// and read-only afterwards.
type Store struct {
	mu      sync.RWMutex
	byCode  map[string]*entities.SourceConcept
	ordered []*entities.SourceConcept
}

// NewStore creates an empty terminology store.
func NewStore() *Store {
	return &Store{
		byCode: make(map[string]*entities.SourceConcept),
	}
}

// LoadCSV ingests the NAMASTE table. Expected header columns: Code, Term,
// RegionalTerm, Short_definition, Long_definition. Rows without a code are
// skipped. Loading replaces any previous content.
func (s *Store) LoadCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open terminology CSV: %w", err)
	}
	defer f.Close()
	return s.load(f)
}

// LoadReader ingests the same CSV format from an arbitrary reader.
func (s *Store) LoadReader(r io.Reader) (int, error) {
	return s.load(r)
}

func (s *Store) load(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["Code"]; !ok {
		return 0, fmt.Errorf("terminology CSV has no Code column")
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	byCode := make(map[string]*entities.SourceConcept)
	var ordered []*entities.SourceConcept
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV record: %w", err)
		}

		code := field(record, "Code")
		if code == "" {
			continue
		}
		concept := &entities.SourceConcept{
			Code:           code,
			Term:           field(record, "Term"),
			RegionalTerm:   field(record, "RegionalTerm"),
			Definition:     field(record, "Short_definition"),
			LongDefinition: field(record, "Long_definition"),
			System:         SystemURI,
		}
		if _, exists := byCode[code]; exists {
			continue
		}
		byCode[code] = concept
		ordered = append(ordered, concept)
	}

	s.mu.Lock()
	s.byCode = byCode
	s.ordered = ordered
	s.mu.Unlock()

	return len(ordered), nil
}

// Get returns the concept for a code.
func (s *Store) Get(code string) (*entities.SourceConcept, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	concept, ok := s.byCode[strings.TrimSpace(code)]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("NAMASTE code %q not found", code))
	}
	return concept, nil
}

// List returns up to limit concepts in source order.
func (s *Store) List(limit int) []*entities.SourceConcept {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.ordered) {
		limit = len(s.ordered)
	}
	out := make([]*entities.SourceConcept, limit)
	copy(out, s.ordered[:limit])
	return out
}

// Search returns concepts whose code, term, regional term, or definitions
// contain the query, case-insensitively, capped at limit.
func (s *Store) Search(query string, limit int) []*entities.SourceConcept {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.SourceConcept
	for _, concept := range s.ordered {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(concept.Code), query) ||
			strings.Contains(strings.ToLower(concept.Term), query) ||
			strings.Contains(strings.ToLower(concept.RegionalTerm), query) ||
			strings.Contains(strings.ToLower(concept.Definition), query) ||
			strings.Contains(strings.ToLower(concept.LongDefinition), query) {
			out = append(out, concept)
		}
	}
	return out
}

// Count returns the number of loaded concepts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}
