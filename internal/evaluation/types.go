package evaluation

import "time"

// Category groups golden cases by the kind of source concept.
type Category string

const (
	CategoryCondition Category = "condition" // e.g., "jvara" (fever-like disorders)
	CategorySymptom   Category = "symptom"   // e.g., "shotha" (swelling)
	CategorySyndrome  Category = "syndrome"  // multi-system patterns
)

// ValidCategories returns all valid category values.
func ValidCategories() []Category {
	return []Category{CategoryCondition, CategorySymptom, CategorySyndrome}
}

// IsValid checks if the category value is one of the defined constants.
func (c Category) IsValid() bool {
	switch c {
	case CategoryCondition, CategorySymptom, CategorySyndrome:
		return true
	}
	return false
}

// GoldenCase is a labeled NAMASTE code with the ICD-11 codes an expert
// reviewer accepted as correct mappings.
type GoldenCase struct {
	ID            string   `json:"id"`
	Code          string   `json:"code"`
	Category      Category `json:"category"`
	ExpectedCodes []string `json:"expected_codes"`
	Difficulty    string   `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single golden case.
type EvalResult struct {
	CaseID         string
	Code           string
	Category       Category
	RecallAt5      float64
	MRRAt5         float64
	CandidateCount int
	RetrievedCodes []string
	Latency        time.Duration
}

// EvalSummary holds aggregate metrics across all golden cases.
type EvalSummary struct {
	TotalCases    int
	AvgRecallAt5  float64
	AvgMRRAt5     float64
	AvgLatency    time.Duration
	CasesWithHits int // cases where mapping produced at least 1 candidate
	ByCategory    map[Category]*CategorySummary
}

// CategorySummary holds metrics grouped by case category.
type CategorySummary struct {
	Count        int
	AvgRecallAt5 float64
	AvgMRRAt5    float64
}
