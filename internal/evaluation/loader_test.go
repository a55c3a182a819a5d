package evaluation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGoldenCases_ValidFile(t *testing.T) {
	content := `[
		{"id": "c1", "code": "NAM-001", "category": "condition", "expected_codes": ["1C62", "MG26"], "difficulty": "easy"},
		{"id": "c2", "code": "NAM-042", "category": "symptom", "expected_codes": ["MD81"], "difficulty": "medium"}
	]`
	path := writeTempFile(t, content)

	cases, err := LoadGoldenCases(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].ID != "c1" {
		t.Errorf("expected id c1, got %s", cases[0].ID)
	}
	if cases[0].Category != CategoryCondition {
		t.Errorf("expected category condition, got %s", cases[0].Category)
	}
	if len(cases[0].ExpectedCodes) != 2 {
		t.Errorf("expected 2 expected codes, got %d", len(cases[0].ExpectedCodes))
	}
	if cases[1].Code != "NAM-042" {
		t.Errorf("expected code NAM-042, got %s", cases[1].Code)
	}
}

func TestLoadGoldenCases_InvalidFile(t *testing.T) {
	_, err := LoadGoldenCases("/nonexistent/path.json")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadGoldenCases_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, `not valid json`)
	_, err := LoadGoldenCases(path)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadGoldenCases_EmptyArray(t *testing.T) {
	path := writeTempFile(t, `[]`)
	cases, err := LoadGoldenCases(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 0 {
		t.Errorf("expected 0 cases, got %d", len(cases))
	}
}

func TestGoldenCase_CategoryValidation(t *testing.T) {
	tests := []struct {
		category Category
		valid    bool
	}{
		{CategoryCondition, true},
		{CategorySymptom, true},
		{CategorySyndrome, true},
		{Category("unknown"), false},
		{Category(""), false},
	}
	for _, tt := range tests {
		got := tt.category.IsValid()
		if got != tt.valid {
			t.Errorf("Category(%q).IsValid() = %v, want %v", tt.category, got, tt.valid)
		}
	}
}

func TestValidateGoldenCases_MissingID(t *testing.T) {
	cases := []GoldenCase{
		{ID: "", Code: "NAM-001", Category: CategoryCondition, ExpectedCodes: []string{"1C62"}, Difficulty: "easy"},
	}
	err := ValidateGoldenCases(cases)
	if err == nil {
		t.Error("expected validation error for missing ID")
	}
}

func TestValidateGoldenCases_MissingCode(t *testing.T) {
	cases := []GoldenCase{
		{ID: "c1", Code: "", Category: CategoryCondition, ExpectedCodes: []string{"1C62"}, Difficulty: "easy"},
	}
	err := ValidateGoldenCases(cases)
	if err == nil {
		t.Error("expected validation error for missing code")
	}
}

func TestValidateGoldenCases_InvalidCategory(t *testing.T) {
	cases := []GoldenCase{
		{ID: "c1", Code: "NAM-001", Category: Category("bad"), ExpectedCodes: []string{"1C62"}, Difficulty: "easy"},
	}
	err := ValidateGoldenCases(cases)
	if err == nil {
		t.Error("expected validation error for invalid category")
	}
}

func TestValidateGoldenCases_MissingExpectedCodes(t *testing.T) {
	cases := []GoldenCase{
		{ID: "c1", Code: "NAM-001", Category: CategoryCondition, Difficulty: "easy"},
	}
	err := ValidateGoldenCases(cases)
	if err == nil {
		t.Error("expected validation error for missing expected codes")
	}
}

func TestValidateGoldenCases_InvalidDifficulty(t *testing.T) {
	cases := []GoldenCase{
		{ID: "c1", Code: "NAM-001", Category: CategoryCondition, ExpectedCodes: []string{"1C62"}, Difficulty: "impossible"},
	}
	err := ValidateGoldenCases(cases)
	if err == nil {
		t.Error("expected validation error for invalid difficulty")
	}
}

func TestValidateGoldenCases_DuplicateIDs(t *testing.T) {
	cases := []GoldenCase{
		{ID: "c1", Code: "NAM-001", Category: CategoryCondition, ExpectedCodes: []string{"1C62"}, Difficulty: "easy"},
		{ID: "c1", Code: "NAM-002", Category: CategoryCondition, ExpectedCodes: []string{"MG26"}, Difficulty: "easy"},
	}
	err := ValidateGoldenCases(cases)
	if err == nil {
		t.Error("expected validation error for duplicate IDs")
	}
}

func TestValidateGoldenCases_Valid(t *testing.T) {
	cases := []GoldenCase{
		{ID: "c1", Code: "NAM-001", Category: CategoryCondition, ExpectedCodes: []string{"1C62"}, Difficulty: "easy"},
		{ID: "c2", Code: "NAM-042", Category: CategorySymptom, ExpectedCodes: []string{"MD81"}, Difficulty: "medium"},
	}
	err := ValidateGoldenCases(cases)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
