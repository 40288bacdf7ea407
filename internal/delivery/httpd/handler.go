package httpd

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/simcheck/detection-service/internal/service"
	"github.com/simcheck/detection-service/internal/worker"
)

type Handler struct {
	detectionService service.DetectionService
	analysisWorker   worker.AnalysisWorker
	logger           zerolog.Logger
}

func NewHandler(
	detectionService service.DetectionService,
	analysisWorker worker.AnalysisWorker,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		detectionService: detectionService,
		analysisWorker:   analysisWorker,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	// Health check
	router.Get("/health", h.HealthCheck)
	router.Get("/status", h.GetServiceStatus)
	router.Get("/stats", h.GetWorkerStats)

	// Versioned API
	router.Route("/api/v1", func(api chi.Router) {
		// Document endpoints
		api.Route("/documents", func(r chi.Router) {
			r.Post("/", h.AddDocument)
			r.Get("/", h.ListDocuments)
			r.Get("/{document_id}", h.GetDocument)
			r.Delete("/{document_id}", h.DeleteDocument)
		})

		// Comparison endpoints
		api.Route("/compare", func(r chi.Router) {
			r.Post("/", h.ComparePair)
			r.Post("/all", h.CompareAll)
			r.Post("/async", h.CompareAllAsync)
		})
	})
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusOK, response)
}
