package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SanyamBinayake/SIH-Demo/internal/application/services"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/internal/terminology"
)

// MappingHandler serves concept mapping and the FHIR terminology surface.
type MappingHandler struct {
	mappingService *services.MappingService
	conceptService *services.ConceptService
}

// NewMappingHandler creates a new mapping handler
func NewMappingHandler(mappingService *services.MappingService, conceptService *services.ConceptService) *MappingHandler {
	return &MappingHandler{
		mappingService: mappingService,
		conceptService: conceptService,
	}
}

// MapConcept handles GET /api/map/{code}
func (h *MappingHandler) MapConcept(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	result, err := h.mappingService.MapCode(r.Context(), code)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

type translateRequest struct {
	Code string `json:"code"`
}

// Translate handles POST /fhir/ConceptMap/$translate, returning a FHIR
// Parameters resource with one match part per candidate.
func (h *MappingHandler) Translate(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" && r.Body != nil {
		var payload translateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
			code = strings.TrimSpace(payload.Code)
		}
	}
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := h.mappingService.MapCode(r.Context(), code)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, translateParameters(result))
}

// CodeSystem handles GET /fhir/CodeSystem/namaste
func (h *MappingHandler) CodeSystem(w http.ResponseWriter, r *http.Request) {
	concepts := h.conceptService.List(0)

	entries := make([]map[string]interface{}, 0, len(concepts))
	for _, concept := range concepts {
		entries = append(entries, map[string]interface{}{
			"code":       concept.Code,
			"display":    concept.Term,
			"definition": concept.Definition,
		})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"resourceType": "CodeSystem",
		"url":          terminology.SystemURI,
		"name":         "NAMASTE",
		"status":       "active",
		"content":      "complete",
		"count":        len(entries),
		"concept":      entries,
	})
}

func translateParameters(result *entities.MappingResult) map[string]interface{} {
	parameters := []map[string]interface{}{
		{"name": "result", "valueBoolean": result.Success},
	}
	for _, candidate := range result.Candidates {
		parameters = append(parameters, map[string]interface{}{
			"name": "match",
			"part": []map[string]interface{}{
				{"name": "equivalence", "valueCode": "relatedto"},
				{
					"name": "concept",
					"valueCoding": map[string]interface{}{
						"system":  services.ICDSystemURI,
						"code":    candidate.Code,
						"display": candidate.Term,
					},
				},
				{"name": "confidence", "valueDecimal": candidate.Confidence},
				{"name": "method", "valueString": string(candidate.Method)},
			},
		})
	}

	return map[string]interface{}{
		"resourceType": "Parameters",
		"parameter":    parameters,
	}
}
