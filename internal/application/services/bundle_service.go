package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/repositories"
	apperrors "github.com/SanyamBinayake/SIH-Demo/pkg/errors"
)

// BundleService validates and stores submitted FHIR bundles.
type BundleService struct {
	repo repositories.BundleRepository
}

// NewBundleService creates a new bundle service.
func NewBundleService(repo repositories.BundleRepository) *BundleService {
	return &BundleService{repo: repo}
}

// fhirBundle mirrors the parts of a FHIR bundle the service indexes on.
type fhirBundle struct {
	ResourceType string `json:"resourceType"`
	Entry        []struct {
		Resource struct {
			ResourceType string `json:"resourceType"`
			Subject      struct {
				Reference string `json:"reference"`
			} `json:"subject"`
			Code struct {
				Coding []struct {
					System string `json:"system"`
					Code   string `json:"code"`
				} `json:"coding"`
			} `json:"code"`
		} `json:"resource"`
	} `json:"entry"`
}

// Store validates the payload, extracts the patient reference and NAMASTE
// code from the first Condition resource, and persists the bundle.
func (s *BundleService) Store(ctx context.Context, payload json.RawMessage) (*entities.FHIRBundle, error) {
	var parsed fhirBundle
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, apperrors.NewValidationError("bundle is not valid JSON")
	}
	if !strings.EqualFold(parsed.ResourceType, "Bundle") {
		return nil, apperrors.NewValidationError("payload resourceType must be Bundle")
	}

	bundle := &entities.FHIRBundle{
		ID:        uuid.NewString(),
		Bundle:    payload,
		CreatedAt: time.Now().UTC(),
	}

	for _, entry := range parsed.Entry {
		if !strings.EqualFold(entry.Resource.ResourceType, "Condition") {
			continue
		}
		bundle.PatientID = entry.Resource.Subject.Reference
		for _, coding := range entry.Resource.Code.Coding {
			if strings.Contains(coding.System, "namaste") {
				bundle.NamasteCode = coding.Code
				break
			}
		}
		break
	}

	if err := s.repo.Create(ctx, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Get fetches one stored bundle.
func (s *BundleService) Get(ctx context.Context, id string) (*entities.FHIRBundle, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByPatient lists stored bundles for a patient.
func (s *BundleService) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.FHIRBundle, error) {
	return s.repo.ListByPatient(ctx, patientID, limit)
}
