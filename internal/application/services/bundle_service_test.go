package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	apperrors "github.com/SanyamBinayake/SIH-Demo/pkg/errors"
)

type memoryBundleRepo struct {
	mu      sync.Mutex
	bundles map[string]*entities.FHIRBundle
}

func newMemoryBundleRepo() *memoryBundleRepo {
	return &memoryBundleRepo{bundles: make(map[string]*entities.FHIRBundle)}
}

func (r *memoryBundleRepo) Create(ctx context.Context, bundle *entities.FHIRBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bundles[bundle.ID] = bundle
	return nil
}

func (r *memoryBundleRepo) GetByID(ctx context.Context, id string) (*entities.FHIRBundle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bundle, ok := r.bundles[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("bundle not found")
	}
	return bundle, nil
}

func (r *memoryBundleRepo) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.FHIRBundle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.FHIRBundle
	for _, b := range r.bundles {
		if b.PatientID == patientID {
			out = append(out, b)
		}
	}
	return out, nil
}

const conditionBundle = `{
	"resourceType": "Bundle",
	"type": "collection",
	"entry": [
		{
			"resource": {
				"resourceType": "Patient",
				"id": "p1"
			}
		},
		{
			"resource": {
				"resourceType": "Condition",
				"subject": {"reference": "Patient/p1"},
				"code": {
					"coding": [
						{"system": "http://id.who.int/icd/release/11/mms", "code": "MG26"},
						{"system": "https://demo.sih/fhir/CodeSystem/namaste", "code": "NAM-001"}
					]
				}
			}
		}
	]
}`

func TestStore_ExtractsPatientAndNamasteCode(t *testing.T) {
	repo := newMemoryBundleRepo()
	svc := NewBundleService(repo)

	bundle, err := svc.Store(context.Background(), json.RawMessage(conditionBundle))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.ID == "" {
		t.Error("expected a generated bundle ID")
	}
	if bundle.PatientID != "Patient/p1" {
		t.Errorf("expected patient reference Patient/p1, got %q", bundle.PatientID)
	}
	if bundle.NamasteCode != "NAM-001" {
		t.Errorf("expected NAMASTE code NAM-001, got %q", bundle.NamasteCode)
	}

	stored, err := svc.Get(context.Background(), bundle.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.PatientID != bundle.PatientID {
		t.Error("stored bundle differs from returned bundle")
	}
}

func TestStore_RejectsInvalidJSON(t *testing.T) {
	svc := NewBundleService(newMemoryBundleRepo())
	_, err := svc.Store(context.Background(), json.RawMessage(`{broken`))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestStore_RejectsNonBundleResource(t *testing.T) {
	svc := NewBundleService(newMemoryBundleRepo())
	_, err := svc.Store(context.Background(), json.RawMessage(`{"resourceType": "Patient"}`))
	if err == nil {
		t.Fatal("expected error for non-Bundle resource")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestStore_BundleWithoutCondition(t *testing.T) {
	svc := NewBundleService(newMemoryBundleRepo())
	bundle, err := svc.Store(context.Background(), json.RawMessage(`{"resourceType": "Bundle", "entry": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.PatientID != "" || bundle.NamasteCode != "" {
		t.Errorf("expected empty extraction fields, got %q / %q", bundle.PatientID, bundle.NamasteCode)
	}
}

func TestGet_UnknownBundle(t *testing.T) {
	svc := NewBundleService(newMemoryBundleRepo())
	_, err := svc.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for unknown bundle")
	}
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}
