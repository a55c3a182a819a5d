package evaluation

import (
	"context"
	"time"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
)

const evalK = 5

// MappingProvider maps one NAMASTE code to ranked ICD-11 candidates.
type MappingProvider interface {
	MapCode(ctx context.Context, code string) (*entities.MappingResult, error)
}

// Runner runs evaluation across a set of golden cases.
type Runner struct {
	mapper MappingProvider
}

func NewRunner(mapper MappingProvider) *Runner {
	return &Runner{mapper: mapper}
}

func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalCases: len(cases),
		ByCategory: make(map[Category]*CategorySummary),
	}

	for _, gc := range cases {
		start := time.Now()
		mapped, err := r.mapper.MapCode(ctx, gc.Code)
		duration := time.Since(start)

		if err != nil {
			continue
		}

		retrieved := make([]string, len(mapped.Candidates))
		for i, candidate := range mapped.Candidates {
			retrieved[i] = candidate.Code
		}

		result := EvalResult{
			CaseID:         gc.ID,
			Code:           gc.Code,
			Category:       gc.Category,
			RecallAt5:      RecallAtK(gc.ExpectedCodes, retrieved, evalK),
			MRRAt5:         MRRAtK(gc.ExpectedCodes, retrieved, evalK),
			CandidateCount: len(mapped.Candidates),
			RetrievedCodes: retrieved,
			Latency:        duration,
		}

		r.updateSummary(summary, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	s.AvgRecallAt5 += res.RecallAt5
	s.AvgMRRAt5 += res.MRRAt5
	s.AvgLatency += res.Latency
	if res.CandidateCount > 0 {
		s.CasesWithHits++
	}

	if _, ok := s.ByCategory[res.Category]; !ok {
		s.ByCategory[res.Category] = &CategorySummary{}
	}
	cs := s.ByCategory[res.Category]
	cs.Count++
	cs.AvgRecallAt5 += res.RecallAt5
	cs.AvgMRRAt5 += res.MRRAt5
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalCases > 0 {
		n := float64(s.TotalCases)
		s.AvgRecallAt5 /= n
		s.AvgMRRAt5 /= n
		s.AvgLatency /= time.Duration(s.TotalCases)
	}

	for _, cs := range s.ByCategory {
		if cs.Count > 0 {
			n := float64(cs.Count)
			cs.AvgRecallAt5 /= n
			cs.AvgMRRAt5 /= n
		}
	}
}
