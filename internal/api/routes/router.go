package routes

import (
	"net/http"

	"github.com/SanyamBinayake/SIH-Demo/internal/api/handlers"
	"github.com/SanyamBinayake/SIH-Demo/internal/api/middleware"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	conceptHandler *handlers.ConceptHandler
	mappingHandler *handlers.MappingHandler
	bundleHandler  *handlers.BundleHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(
	conceptHandler *handlers.ConceptHandler,
	mappingHandler *handlers.MappingHandler,
	bundleHandler *handlers.BundleHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		conceptHandler: conceptHandler,
		mappingHandler: mappingHandler,
		bundleHandler:  bundleHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Terminology endpoints

	r.mux.HandleFunc("GET /api/concepts", r.conceptHandler.ListConcepts)
	r.mux.HandleFunc("GET /api/concepts/autocomplete", r.conceptHandler.Autocomplete)
	r.mux.HandleFunc("GET /api/concepts/{code}", r.conceptHandler.GetConcept)

	// ICD-11 proxy search

	r.mux.HandleFunc("GET /api/icd/search", r.conceptHandler.SearchICD)

	// Concept mapping endpoints

	r.mux.HandleFunc("GET /api/map/{code}", r.mappingHandler.MapConcept)

	// FHIR terminology surface

	r.mux.HandleFunc("POST /fhir/ConceptMap/$translate", r.mappingHandler.Translate)
	r.mux.HandleFunc("GET /fhir/CodeSystem/namaste", r.mappingHandler.CodeSystem)

	// FHIR bundle ingestion
	if r.bundleHandler != nil {
		r.mux.HandleFunc("POST /fhir/Bundle", r.bundleHandler.SubmitBundle)
		r.mux.HandleFunc("GET /fhir/Bundle/{id}", r.bundleHandler.GetBundle)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
