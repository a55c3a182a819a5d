package evaluation

import "github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"

// GuardrailConfig bounds what the evaluation report treats as a usable
// mapping suggestion.
type GuardrailConfig struct {
	MinConfidence float64
	MaxCandidates int
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MaxCandidates <= 0 {
		config.MaxCandidates = 5
	}
	return &Guardrails{config: config}
}

// ShouldAccept reports whether a candidate clears the confidence floor.
func (g *Guardrails) ShouldAccept(confidence float64) bool {
	return confidence >= g.config.MinConfidence
}

// FilterCandidates drops candidates below the confidence floor and caps
// the list, preserving the incoming rank order.
func (g *Guardrails) FilterCandidates(candidates []entities.Candidate) []entities.Candidate {
	filtered := make([]entities.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if !g.ShouldAccept(candidate.Confidence) {
			continue
		}
		filtered = append(filtered, candidate)
		if len(filtered) >= g.config.MaxCandidates {
			break
		}
	}
	return filtered
}
