package mapping

import "testing"

func TestTokenize_FiltersStopWordsAndShortTokens(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Tokenize("A condition with fever and pain in the gut")

	for _, token := range tokens {
		if len(token) < minTokenLen {
			t.Errorf("token %q is shorter than %d", token, minTokenLen)
		}
		if isStopWord(token) {
			t.Errorf("stop word %q survived tokenization", token)
		}
	}

	want := map[string]bool{"fever": false, "pain": false, "gut": false}
	for _, token := range tokens {
		if _, ok := want[token]; ok {
			want[token] = true
		}
	}
	for token, found := range want {
		if !found {
			t.Errorf("expected token %q in %v", token, tokens)
		}
	}
}

func TestTokenize_Lowercases(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Tokenize("FEVER Headache")
	for _, token := range tokens {
		if token != "fever" && token != "headache" {
			t.Errorf("unexpected token %q", token)
		}
	}
	if len(tokens) != 2 {
		t.Errorf("expected 2 tokens, got %d", len(tokens))
	}
}

func TestStem_PorterReducesInflection(t *testing.T) {
	tok := NewTokenizer()
	if got := tok.Stem("burning"); got != "burn" {
		t.Errorf("expected burn, got %q", got)
	}
	if got := tok.Stem("Fevers"); got != "fever" {
		t.Errorf("expected fever, got %q", got)
	}
}

func TestFallbackTokenizer_IdentityStem(t *testing.T) {
	tok := NewFallbackTokenizer()
	if got := tok.Stem("Burning"); got != "burning" {
		t.Errorf("expected identity lowercase stem, got %q", got)
	}
	if tok.Name() == NewTokenizer().Name() {
		t.Error("fallback tokenizer should report a distinct name")
	}
}

func TestFallbackTokenizer_SameFilteringRules(t *testing.T) {
	linguistic := NewTokenizer().Tokenize("the patient has a severe headache")
	fallback := NewFallbackTokenizer().Tokenize("the patient has a severe headache")

	if len(linguistic) != len(fallback) {
		t.Fatalf("filtering differs: %v vs %v", linguistic, fallback)
	}
	for i := range linguistic {
		if linguistic[i] != fallback[i] {
			t.Errorf("token %d differs: %q vs %q", i, linguistic[i], fallback[i])
		}
	}
}
