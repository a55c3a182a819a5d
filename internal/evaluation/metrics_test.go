package evaluation

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestRecallAtK_AllExpectedRetrieved(t *testing.T) {
	expected := []string{"MG26", "SM25"}
	retrieved := []string{"MG26", "SM25", "1A00", "1A01", "1A02"}
	got := RecallAtK(expected, retrieved, 5)
	if !almostEqual(got, 1.0) {
		t.Errorf("expected 1.0, got %f", got)
	}
}

func TestRecallAtK_SomeExpectedMissing(t *testing.T) {
	expected := []string{"MG26", "SM25", "MD12", "ME10"}
	retrieved := []string{"MG26", "SM25", "1A00", "1A01", "1A02"}
	got := RecallAtK(expected, retrieved, 5)
	// 2 of 4 expected codes found
	if !almostEqual(got, 0.5) {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestRecallAtK_EmptyRetrieved(t *testing.T) {
	got := RecallAtK([]string{"MG26"}, nil, 5)
	if !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
}

func TestRecallAtK_EmptyExpected(t *testing.T) {
	// Recall is undefined without expected codes; defined as 0 here.
	got := RecallAtK(nil, []string{"MG26", "SM25"}, 5)
	if !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
}

func TestRecallAtK_HitBeyondKIgnored(t *testing.T) {
	expected := []string{"MG26", "SM25", "MD12"}
	// MD12 sits past the cutoff at k=3.
	retrieved := []string{"MG26", "SM25", "1A00", "MD12"}
	got := RecallAtK(expected, retrieved, 3)
	if !almostEqual(got, 2.0/3.0) {
		t.Errorf("expected %f, got %f", 2.0/3.0, got)
	}
}

func TestRecallAtK_RetrievedShorterThanK(t *testing.T) {
	got := RecallAtK([]string{"MG26", "SM25"}, []string{"MG26"}, 5)
	if !almostEqual(got, 0.5) {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestMRRAtK_TopCandidateExpected(t *testing.T) {
	got := MRRAtK([]string{"MG26", "SM25"}, []string{"MG26", "1A00", "1A01"}, 5)
	if !almostEqual(got, 1.0) {
		t.Errorf("expected 1.0, got %f", got)
	}
}

func TestMRRAtK_ThirdCandidateExpected(t *testing.T) {
	got := MRRAtK([]string{"ME10"}, []string{"1A00", "1A01", "ME10", "1A02"}, 5)
	if !almostEqual(got, 1.0/3.0) {
		t.Errorf("expected %f, got %f", 1.0/3.0, got)
	}
}

func TestMRRAtK_HitBeyondKScoresZero(t *testing.T) {
	expected := []string{"ME10"}
	retrieved := []string{"1A00", "1A01", "1A02", "1A03", "1A04", "ME10"}
	got := MRRAtK(expected, retrieved, 5)
	if !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
}

func TestMRRAtK_EmptyInputs(t *testing.T) {
	if got := MRRAtK(nil, []string{"MG26"}, 5); !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0 for empty expected, got %f", got)
	}
	if got := MRRAtK([]string{"MG26"}, nil, 5); !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0 for empty retrieved, got %f", got)
	}
}

func TestMRRAtK_FirstExpectedHitCounts(t *testing.T) {
	expected := []string{"MG26", "SM25", "ME10"}
	retrieved := []string{"1A00", "SM25", "MG26", "ME10"}
	got := MRRAtK(expected, retrieved, 5)
	// SM25 at rank 2 is the first hit.
	if !almostEqual(got, 0.5) {
		t.Errorf("expected 0.5, got %f", got)
	}
}
