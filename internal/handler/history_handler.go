package handler

import (
	"net/http"

	"handi-menu/internal/model"
	"handi-menu/internal/service"

	"github.com/rs/zerolog"
)

// HistoryHandler handles archived order HTTP requests.
type HistoryHandler struct {
	service service.HistoryService
	logger  zerolog.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(service service.HistoryService, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "history").Logger(),
	}
}

// List handles GET /api/history requests.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, true)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	records, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Append handles POST /api/history requests. A repeated append answers 200
// with the stored record instead of 201.
func (h *HistoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	var record model.HistoryRecord
	if err := decodeJSON(w, r, &record); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	stored, created, err := h.service.Append(r.Context(), &record)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, stored)
}
