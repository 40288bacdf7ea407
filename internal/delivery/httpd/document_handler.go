package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/simcheck/detection-service/internal/models"
	"github.com/simcheck/detection-service/internal/repository"
	"github.com/simcheck/detection-service/pkg/utils"
)

func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var req models.AddDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	doc, err := h.detectionService.AddDocument(ctx, req.Name, req.Content, req.Source)
	if err != nil {
		h.handleDetectionError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.AddDocumentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		Source:    string(doc.Source),
		Length:    len(doc.Content),
		CreatedAt: doc.CreatedAt,
	})
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "document_id")
	if !utils.ValidateUUID(documentID) {
		writeError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	ctx := r.Context()
	doc, err := h.detectionService.GetDocument(ctx, documentID)
	if err != nil {
		h.handleDetectionError(w, err)
		return
	}

	writeSuccess(w, doc)
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := getIntQueryParam(r, "limit", 50)
	offset := getIntQueryParam(r, "offset", 0)

	ctx := r.Context()
	docs, err := h.detectionService.ListDocuments(ctx, limit, offset)
	if err != nil {
		h.handleDetectionError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "document_id")
	if !utils.ValidateUUID(documentID) {
		writeError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	ctx := r.Context()
	if err := h.detectionService.DeleteDocument(ctx, documentID); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.handleDetectionError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
