package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/repositories"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/clients/postgres"
	apperrors "github.com/SanyamBinayake/SIH-Demo/pkg/errors"
)

// BundleAdapter implements FHIR bundle persistence in Postgres.
type BundleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBundleAdapter creates a new bundle adapter.
func NewBundleAdapter(client *postgres.Client) repositories.BundleRepository {
	return &BundleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a bundle record.
func (a *BundleAdapter) Create(ctx context.Context, bundle *entities.FHIRBundle) error {
	if bundle == nil {
		return apperrors.NewInternalError("bundle is nil", fmt.Errorf("bundle is nil"))
	}

	record := goqu.Record{
		"id":           bundle.ID,
		"patient_id":   sql.NullString{String: bundle.PatientID, Valid: bundle.PatientID != ""},
		"namaste_code": sql.NullString{String: bundle.NamasteCode, Valid: bundle.NamasteCode != ""},
		"bundle":       []byte(bundle.Bundle),
		"created_at":   bundle.CreatedAt,
	}

	query, args, err := a.db.Insert("fhir_bundles").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bundle insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to store bundle", err)
	}

	return nil
}

// GetByID fetches one bundle by id.
func (a *BundleAdapter) GetByID(ctx context.Context, id string) (*entities.FHIRBundle, error) {
	query, args, err := a.db.From("fhir_bundles").
		Select("id", "patient_id", "namaste_code", "bundle", "created_at").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bundle select query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	bundle, err := scanBundle(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("bundle %q not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch bundle", err)
	}
	return bundle, nil
}

// ListByPatient returns the most recent bundles for a patient.
func (a *BundleAdapter) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.FHIRBundle, error) {
	if limit <= 0 {
		limit = 20
	}
	query, args, err := a.db.From("fhir_bundles").
		Select("id", "patient_id", "namaste_code", "bundle", "created_at").
		Where(goqu.C("patient_id").Eq(patientID)).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bundle list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bundles", err)
	}
	defer rows.Close()

	var bundles []*entities.FHIRBundle
	for rows.Next() {
		bundle, err := scanBundle(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan bundle row", err)
		}
		bundles = append(bundles, bundle)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bundle rows", err)
	}
	return bundles, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBundle(row rowScanner) (*entities.FHIRBundle, error) {
	var bundle entities.FHIRBundle
	var patientID, namasteCode sql.NullString
	var payload []byte
	if err := row.Scan(&bundle.ID, &patientID, &namasteCode, &payload, &bundle.CreatedAt); err != nil {
		return nil, err
	}
	bundle.PatientID = patientID.String
	bundle.NamasteCode = namasteCode.String
	bundle.Bundle = payload
	return &bundle, nil
}
