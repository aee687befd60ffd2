package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"handi-menu/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatsHandler_Get(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockStatsService)
		handler := NewStatsHandler(mockService, logger)

		stats := model.ComputeStats(nil)
		mockService.On("Get", mock.Anything).Return(&stats, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalRevenue":0`)
		assert.Contains(t, w.Body.String(), `"totalSales":0`)
		assert.Contains(t, w.Body.String(), `{"name":"Biryani","total":0}`)
	})

	t.Run("Service error", func(t *testing.T) {
		mockService := new(MockStatsService)
		handler := NewStatsHandler(mockService, logger)
		mockService.On("Get", mock.Anything).Return(nil, errors.New("database error"))

		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
