package evaluation

// RecallAtK is the fraction of expected codes present among the top-K
// retrieved candidate codes. An empty expected set scores 0.
func RecallAtK(expected, retrieved []string, k int) float64 {
	if len(expected) == 0 {
		return 0.0
	}

	expectedSet := make(map[string]struct{}, len(expected))
	for _, code := range expected {
		expectedSet[code] = struct{}{}
	}

	topK := retrieved
	if k < len(topK) {
		topK = topK[:k]
	}

	found := 0
	for _, code := range topK {
		if _, ok := expectedSet[code]; ok {
			found++
		}
	}

	return float64(found) / float64(len(expected))
}

// MRRAtK is the reciprocal rank of the first expected code among the top-K
// retrieved candidate codes, or 0 when none appears there.
func MRRAtK(expected, retrieved []string, k int) float64 {
	if len(expected) == 0 || len(retrieved) == 0 {
		return 0.0
	}

	expectedSet := make(map[string]struct{}, len(expected))
	for _, code := range expected {
		expectedSet[code] = struct{}{}
	}

	topK := retrieved
	if k < len(topK) {
		topK = topK[:k]
	}

	for i, code := range topK {
		if _, ok := expectedSet[code]; ok {
			return 1.0 / float64(i+1)
		}
	}

	return 0.0
}
