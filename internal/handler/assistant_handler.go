package handler

import (
	"context"
	"net/http"
	"strings"

	"handi-menu/internal/model"

	"github.com/rs/zerolog"
)

// Assistant generates suggestions and copy. Implementations never fail; they
// fall back to fixed text.
type Assistant interface {
	Recommend(ctx context.Context, items []string) []string
	Describe(ctx context.Context, name, category string) string
	Assist(ctx context.Context, preferences, budget, occasion string) string
}

// RecommendationRequest is the body of POST /api/recommendations.
type RecommendationRequest struct {
	Items []string `json:"items"`
}

// RecommendationResponse carries suggested pairings.
type RecommendationResponse struct {
	Suggestions []string `json:"suggestions"`
}

// DescribeRequest is the body of POST /api/menu/describe.
type DescribeRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DescribeResponse carries generated marketing copy.
type DescribeResponse struct {
	Description string `json:"description"`
}

// AssistRequest is the body of POST /api/assistant.
type AssistRequest struct {
	Preferences string `json:"preferences"`
	Budget      string `json:"budget"`
	Occasion    string `json:"occasion"`
}

// AssistResponse carries the assistant's reply.
type AssistResponse struct {
	Message string `json:"message"`
}

// AssistantHandler serves the recommendation endpoints.
type AssistantHandler struct {
	assistant Assistant
	logger    zerolog.Logger
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(assistant Assistant, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		logger:    logger.With().Str("handler", "assistant").Logger(),
	}
}

// Recommend handles POST /api/recommendations requests.
func (h *AssistantHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if len(req.Items) == 0 {
		writeError(w, r, model.NewValidationError(model.ErrCodeMissingField, "items is required"), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		Suggestions: h.assistant.Recommend(r.Context(), req.Items),
	})
}

// Describe handles POST /api/menu/describe requests.
func (h *AssistantHandler) Describe(w http.ResponseWriter, r *http.Request) {
	var req DescribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, model.NewValidationError(model.ErrCodeMissingField, "name is required"), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, DescribeResponse{
		Description: h.assistant.Describe(r.Context(), req.Name, req.Category),
	})
}

// Assist handles POST /api/assistant requests.
func (h *AssistantHandler) Assist(w http.ResponseWriter, r *http.Request) {
	var req AssistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, AssistResponse{
		Message: h.assistant.Assist(r.Context(), req.Preferences, req.Budget, req.Occasion),
	})
}
