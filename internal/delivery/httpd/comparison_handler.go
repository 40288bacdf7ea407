package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simcheck/detection-service/internal/models"
	"github.com/simcheck/detection-service/internal/repository"
	"github.com/simcheck/detection-service/internal/service"
)

func (h *Handler) ComparePair(w http.ResponseWriter, r *http.Request) {
	var req models.ComparePairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.DocumentAID == "" || req.DocumentBID == "" {
		writeError(w, http.StatusBadRequest, "Both document_a_id and document_b_id are required")
		return
	}

	ctx := r.Context()
	result, err := h.detectionService.CompareDocuments(ctx, req.DocumentAID, req.DocumentBID, req.Threshold)
	if err != nil {
		h.handleDetectionError(w, err)
		return
	}

	writeSuccess(w, result)
}

func (h *Handler) CompareAll(w http.ResponseWriter, r *http.Request) {
	var req models.CompareAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	response, err := h.detectionService.CompareAllDocuments(ctx, req.DocumentIDs, req.Threshold)
	if err != nil {
		h.handleDetectionError(w, err)
		return
	}

	writeSuccess(w, response)
}

func (h *Handler) CompareAllAsync(w http.ResponseWriter, r *http.Request) {
	var req models.CompareAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	response, err := h.detectionService.RequestAnalysis(ctx, req.DocumentIDs, req.Threshold)
	if err != nil {
		h.handleDetectionError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, response)
}

func (h *Handler) handleDetectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, "Document not found")
	case errors.Is(err, service.ErrEmptyDocumentName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidSource):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSameDocument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTooManyDocuments):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrContentTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Detection error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
