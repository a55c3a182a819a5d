package mapping

import "testing"

const scoreTolerance = 1e-9

func TestScore_IdenticalStrings(t *testing.T) {
	s := NewScorer(NewTokenizer())
	got := s.Score("abdominal pain", "abdominal pain")
	if got < 1.0-scoreTolerance {
		t.Errorf("expected 1.0 for identical strings, got %f", got)
	}
}

func TestScore_EmptyInput(t *testing.T) {
	s := NewScorer(NewTokenizer())
	if got := s.Score("", "fever"); got != 0 {
		t.Errorf("expected 0 for empty left input, got %f", got)
	}
	if got := s.Score("fever", "   "); got != 0 {
		t.Errorf("expected 0 for blank right input, got %f", got)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	s := NewScorer(NewTokenizer())
	a := s.Score("Fever", "fever")
	if a < 1.0-scoreTolerance {
		t.Errorf("expected case-insensitive match to score 1.0, got %f", a)
	}
}

func TestScore_BoundedRange(t *testing.T) {
	s := NewScorer(NewTokenizer())
	pairs := [][2]string{
		{"fever", "elevated body temperature"},
		{"gastritis", "inflammation of the stomach lining"},
		{"xyz", "completely unrelated phrase"},
		{"joint pain", "joint pains"},
	}
	for _, p := range pairs {
		got := s.Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %f out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScore_CloserStringsScoreHigher(t *testing.T) {
	s := NewScorer(NewTokenizer())
	near := s.Score("fever", "fevers")
	far := s.Score("fever", "abdominal migraine")
	if near <= far {
		t.Errorf("expected near match %f to beat far match %f", near, far)
	}
}

func TestSequenceRatio_EmptyStrings(t *testing.T) {
	if got := sequenceRatio("", ""); got != 0 {
		t.Errorf("expected 0 for two empty strings, got %f", got)
	}
}

func TestClamp01(t *testing.T) {
	if got := clamp01(1.3); got != 1.0 {
		t.Errorf("expected clamp to 1.0, got %f", got)
	}
	if got := clamp01(-0.2); got != 0.0 {
		t.Errorf("expected clamp to 0.0, got %f", got)
	}
	if got := clamp01(0.5); got != 0.5 {
		t.Errorf("expected passthrough, got %f", got)
	}
}
