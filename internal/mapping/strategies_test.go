package mapping

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
)

func newTestBase(lookup *stubLookup) strategyBase {
	return strategyBase{
		lookup: lookup,
		scorer: NewScorer(NewTokenizer()),
		logger: zerolog.Nop(),
	}
}

func TestDirectTermStrategy_QueryBudget(t *testing.T) {
	lookup := &stubLookup{}
	strategy := &directTermStrategy{
		strategyBase: newTestBase(lookup),
		variants:     NewVariantGenerator(NewTokenizer()),
	}

	// gastritis expands into far more than five variants
	strategy.Candidates(context.Background(), entities.SourceConcept{Term: "gastritis"})

	if lookup.calls > directTermMaxQueries {
		t.Errorf("expected at most %d lookup calls, got %d", directTermMaxQueries, lookup.calls)
	}
	if lookup.calls == 0 {
		t.Error("expected at least one lookup call")
	}
}

func TestDirectTermStrategy_ScoresAgainstTerm(t *testing.T) {
	lookup := &stubLookup{results: []entities.ExternalConcept{
		{Code: "DB30", Term: "Gastritis", Definition: "Inflammation of the stomach lining"},
	}}
	strategy := &directTermStrategy{
		strategyBase: newTestBase(lookup),
		variants:     NewVariantGenerator(NewTokenizer()),
	}

	candidates := strategy.Candidates(context.Background(), entities.SourceConcept{Term: "Gastritis"})
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	if candidates[0].Confidence < 0.99 {
		t.Errorf("expected near-perfect score for exact term match, got %f", candidates[0].Confidence)
	}
	if candidates[0].Method != entities.StrategyDirectTerm {
		t.Errorf("unexpected method %s", candidates[0].Method)
	}
	if candidates[0].SearchTerm == "" {
		t.Error("expected the originating query to be recorded")
	}
}

func TestDefinitionExtractionStrategy_FragmentBudget(t *testing.T) {
	lookup := &stubLookup{}
	strategy := &definitionExtractionStrategy{
		strategyBase: newTestBase(lookup),
		normalizer:   NewNormalizer(NewTokenizer()),
	}

	definition := "fever, abdominal pain, vomiting, nausea, headache, fatigue, " +
		"weakness, indigestion, constipation, jaundice, itching and rash"
	strategy.Candidates(context.Background(), entities.SourceConcept{Definition: definition})

	if lookup.calls > definitionMaxFragments {
		t.Errorf("expected at most %d lookup calls, got %d", definitionMaxFragments, lookup.calls)
	}
}

func TestDefinitionExtractionStrategy_BlendedScore(t *testing.T) {
	lookup := &stubLookup{results: []entities.ExternalConcept{
		{Code: "ME84", Term: "Abdominal pain", Definition: "pain localized to the abdomen"},
	}}
	strategy := &definitionExtractionStrategy{
		strategyBase: newTestBase(lookup),
		normalizer:   NewNormalizer(NewTokenizer()),
	}

	candidates := strategy.Candidates(context.Background(), entities.SourceConcept{
		Definition: "pain localized to the abdomen",
	})
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	for _, c := range candidates {
		if c.Confidence < 0 || c.Confidence > 1 {
			t.Errorf("confidence %f out of range", c.Confidence)
		}
	}
	// Identical definitions dominate the blend regardless of fragment choice.
	if candidates[0].Confidence <= definitionWeightDef-0.1 {
		t.Errorf("expected definition similarity to dominate, got %f", candidates[0].Confidence)
	}
}

func TestTM2ChapterStrategy_FiltersAndBoosts(t *testing.T) {
	lookup := &stubLookup{results: []entities.ExternalConcept{
		{Code: "SM25", Term: "Fever pattern", Definition: "elevated body temperature with thirst"},
	}}
	strategy := &tm2ChapterStrategy{
		strategyBase: newTestBase(lookup),
		normalizer:   NewNormalizer(NewTokenizer()),
	}

	candidates := strategy.Candidates(context.Background(), entities.SourceConcept{
		Term:       "Jvara",
		Definition: "elevated body temperature with thirst",
	})

	for _, chapter := range lookup.chapters {
		if chapter != TM2Chapter {
			t.Errorf("expected every call to filter on chapter %s, got %q", TM2Chapter, chapter)
		}
	}
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	// Identical definitions score 1.0; the boost must stay clamped.
	if candidates[0].Confidence > 1.0 {
		t.Errorf("boosted confidence %f escaped the [0,1] bound", candidates[0].Confidence)
	}
	if candidates[0].Confidence < 0.99 {
		t.Errorf("expected boosted near-perfect score, got %f", candidates[0].Confidence)
	}
}

func TestSymptomKeywordStrategy_OnlyQueriesPresentSymptoms(t *testing.T) {
	lookup := &stubLookup{}
	strategy := &symptomKeywordStrategy{strategyBase: newTestBase(lookup)}

	strategy.Candidates(context.Background(), entities.SourceConcept{
		Definition: "a structural anomaly of the aortic arch",
	})
	if lookup.calls != 0 {
		t.Errorf("expected no lookups without symptom keywords, got %d", lookup.calls)
	}

	strategy.Candidates(context.Background(), entities.SourceConcept{
		Definition: "recurrent fever with severe headache",
	})
	if lookup.calls == 0 {
		t.Fatal("expected lookups for symptom keywords")
	}
	for _, q := range lookup.queries {
		if q != "fever" && q != "headache" {
			t.Errorf("unexpected symptom query %q", q)
		}
	}
}

func TestSymptomKeywordStrategy_DiscountsScores(t *testing.T) {
	lookup := &stubLookup{results: []entities.ExternalConcept{
		{Code: "MG26", Term: "Fever", Definition: "recurrent fever with severe headache"},
	}}
	strategy := &symptomKeywordStrategy{strategyBase: newTestBase(lookup)}

	candidates := strategy.Candidates(context.Background(), entities.SourceConcept{
		Definition: "recurrent fever with severe headache",
	})
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	// Identical definitions score 1.0 before the discount.
	got := candidates[0].Confidence
	if got < symptomDiscount-0.01 || got > symptomDiscount+0.01 {
		t.Errorf("expected discounted score near %f, got %f", symptomDiscount, got)
	}
}

func TestSymptomKeywordStrategy_MatchesWholeWordsOnly(t *testing.T) {
	lookup := &stubLookup{}
	strategy := &symptomKeywordStrategy{strategyBase: newTestBase(lookup)}

	// "crashing" contains "rash" and "spain" contains "pain"; neither is a
	// symptom word of the definition.
	strategy.Candidates(context.Background(), entities.SourceConcept{
		Definition: "a crashing sound reported during travel in Spain",
	})
	if lookup.calls != 0 {
		t.Errorf("expected no lookups for embedded substrings, got %d (queries %v)", lookup.calls, lookup.queries)
	}
}

func TestStrategyBase_NilLookupContributesNothing(t *testing.T) {
	base := strategyBase{
		scorer: NewScorer(NewTokenizer()),
		logger: zerolog.Nop(),
	}

	results := base.search(context.Background(), entities.StrategyDirectTerm, "fever", "", 5)
	if results != nil {
		t.Errorf("expected nil results without a lookup, got %v", results)
	}
}

func TestStrategyBase_AbsorbsLookupErrors(t *testing.T) {
	lookup := &stubLookup{err: context.DeadlineExceeded}
	base := newTestBase(lookup)

	results := base.search(context.Background(), entities.StrategyDirectTerm, "fever", "", 5)
	if results != nil {
		t.Errorf("expected nil results on lookup failure, got %v", results)
	}
}
