package entities

import (
	"encoding/json"
	"time"
)

// FHIRBundle is a submitted FHIR bundle stored for audit.
type FHIRBundle struct {
	ID          string          `json:"id" db:"id"`
	PatientID   string          `json:"patient_id" db:"patient_id"`
	NamasteCode string          `json:"namaste_code" db:"namaste_code"`
	Bundle      json.RawMessage `json:"bundle" db:"bundle"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
