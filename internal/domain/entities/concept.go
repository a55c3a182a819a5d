package entities

// SourceConcept is a NAMASTE terminology entry that needs an ICD-11 equivalent.
// It is loaded once from the terminology table and never mutated by the engine.
type SourceConcept struct {
	Code           string `json:"code"`
	Term           string `json:"term"`
	RegionalTerm   string `json:"regional_term,omitempty"`
	Definition     string `json:"definition"`
	LongDefinition string `json:"long_definition,omitempty"`
	System         string `json:"system"`
}

// ExternalConcept is one entry returned by the ICD-11 lookup service.
type ExternalConcept struct {
	Code       string `json:"code"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// StrategyKind identifies the mapping strategy that produced a candidate.
type StrategyKind string

const (
	StrategyDirectTerm           StrategyKind = "direct_term"
	StrategyDefinitionExtraction StrategyKind = "definition_extraction"
	StrategyTM2Chapter           StrategyKind = "tm2_chapter"
	StrategySymptomKeyword       StrategyKind = "symptom_keyword"
)

// AllStrategies lists every strategy kind in execution order.
func AllStrategies() []StrategyKind {
	return []StrategyKind{
		StrategyDirectTerm,
		StrategyDefinitionExtraction,
		StrategyTM2Chapter,
		StrategySymptomKeyword,
	}
}

// Candidate is one tentative ICD-11 match produced by a single strategy.
type Candidate struct {
	Code       string       `json:"code"`
	Term       string       `json:"term"`
	Definition string       `json:"definition"`
	Confidence float64      `json:"confidence"`
	Method     StrategyKind `json:"method"`
	SearchTerm string       `json:"search_term"`
}

// MappingResult is the ranked outcome of mapping one source concept.
// Candidates are sorted by confidence descending, hold no duplicate codes,
// and are capped at five entries. Success is derived from the candidate list.
type MappingResult struct {
	Source          SourceConcept `json:"source"`
	Candidates      []Candidate   `json:"candidates"`
	TotalCandidates int           `json:"total_candidates_considered"`
	Success         bool          `json:"success"`
}
