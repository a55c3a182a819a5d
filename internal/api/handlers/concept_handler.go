package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/SanyamBinayake/SIH-Demo/internal/application/services"
	apperrors "github.com/SanyamBinayake/SIH-Demo/pkg/errors"
)

const defaultListLimit = 20

// ConceptHandler serves NAMASTE terminology browsing and autocomplete.
type ConceptHandler struct {
	service *services.ConceptService
}

// NewConceptHandler creates a new concept handler
func NewConceptHandler(service *services.ConceptService) *ConceptHandler {
	return &ConceptHandler{service: service}
}

// ListConcepts handles GET /api/concepts
func (h *ConceptHandler) ListConcepts(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	concepts := h.service.List(limit)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(concepts),
		"results": concepts,
	})
}

// GetConcept handles GET /api/concepts/{code}
func (h *ConceptHandler) GetConcept(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	concept, err := h.service.Get(code)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, concept)
}

// Autocomplete handles GET /api/concepts/autocomplete
func (h *ConceptHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"total":   0,
			"results": []services.AutocompleteResult{},
		})
		return
	}

	results := h.service.Autocomplete(r.Context(), query)
	if results == nil {
		results = []services.AutocompleteResult{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(results),
		"results": results,
	})
}

// SearchICD handles GET /api/icd/search
func (h *ConceptHandler) SearchICD(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results, err := h.service.SearchICD(r.Context(), query)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError translates the error taxonomy to HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case apperrors.IsType(err, apperrors.ErrorTypeValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case apperrors.IsType(err, apperrors.ErrorTypeExternal):
		respondWithError(w, http.StatusServiceUnavailable, "downstream service unavailable")
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
