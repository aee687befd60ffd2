package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"handi-menu/internal/middleware"
	"handi-menu/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// SuccessResponse acknowledges a mutation that returns no entity.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps err onto a JSON error body. Domain errors keep their code
// and status; anything else is logged and reported as a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	requestID := middleware.GetRequestID(r.Context())

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		logger.Warn().
			Str("request_id", requestID).
			Str("code", domainErr.Code).
			Int("status", domainErr.Status).
			Str("path", r.URL.Path).
			Msg(domainErr.Message)
		writeJSON(w, domainErr.Status, model.ErrorResponse{
			Error:         domainErr.Code,
			Message:       domainErr.Message,
			CorrelationID: requestID,
		})
		return
	}

	logger.Error().
		Err(err).
		Str("request_id", requestID).
		Str("path", r.URL.Path).
		Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:         model.ErrCodeInternalError,
		Message:       "internal server error",
		CorrelationID: requestID,
	})
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

// parseFilter reads the listing filters from the query string. The date
// filter (YYYY-MM-DD) is only honoured when allowDate is set.
func parseFilter(r *http.Request, allowDate bool) (model.OrderFilter, error) {
	q := r.URL.Query()
	filter := model.OrderFilter{
		Ref:     q.Get("ref"),
		Name:    q.Get("name"),
		Contact: q.Get("contact"),
		Table:   q.Get("table"),
	}

	if raw := q.Get("date"); allowDate && raw != "" {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, model.NewValidationError(model.ErrCodeInvalidFilter, "date must be formatted as YYYY-MM-DD")
		}
		filter.Date = &day
	}

	return filter, nil
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, model.ErrorResponse{
		Error:         model.ErrCodeNotFound,
		Message:       "resource not found",
		CorrelationID: middleware.GetRequestID(r.Context()),
	})
}

// MethodNotAllowed answers routes matched with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse{
		Error:         model.ErrCodeMethodNotAllowed,
		Message:       "method not allowed",
		CorrelationID: middleware.GetRequestID(r.Context()),
	})
}
