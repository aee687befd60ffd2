package handler

import (
	"net/http"

	"handi-menu/internal/model"
	"handi-menu/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// MenuHandler handles catalogue HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// List handles GET /api/menu requests.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/menu requests.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item model.MenuItem
	if err := decodeJSON(w, r, &item); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	created, err := h.service.Create(r.Context(), &item)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/menu/{id} requests.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update model.MenuItemUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), id, &update)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/menu/{id} requests.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
