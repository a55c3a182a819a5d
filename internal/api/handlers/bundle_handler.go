package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/SanyamBinayake/SIH-Demo/internal/application/services"
)

const maxBundleBytes = 1 << 20

// BundleHandler accepts and serves stored FHIR bundles.
type BundleHandler struct {
	service *services.BundleService
}

// NewBundleHandler creates a new bundle handler
func NewBundleHandler(service *services.BundleService) *BundleHandler {
	return &BundleHandler{service: service}
}

// SubmitBundle handles POST /fhir/Bundle
func (h *BundleHandler) SubmitBundle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBundleBytes+1))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(payload) == 0 {
		respondWithError(w, http.StatusBadRequest, "request body is empty")
		return
	}
	if len(payload) > maxBundleBytes {
		respondWithError(w, http.StatusRequestEntityTooLarge, "bundle is too large")
		return
	}

	bundle, err := h.service.Store(r.Context(), json.RawMessage(payload))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"status": "stored",
		"id":     bundle.ID,
	})
}

// GetBundle handles GET /fhir/Bundle/{id}
func (h *BundleHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bundle)
}
