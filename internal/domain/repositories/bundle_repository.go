package repositories

import (
	"context"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
)

// BundleRepository defines persistence for submitted FHIR bundles
type BundleRepository interface {
	Create(ctx context.Context, bundle *entities.FHIRBundle) error
	GetByID(ctx context.Context, id string) (*entities.FHIRBundle, error)
	ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.FHIRBundle, error)
}
