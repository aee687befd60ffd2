package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssistantHandler_Recommend(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		assistant := new(MockAssistant)
		handler := NewAssistantHandler(assistant, logger)
		assistant.On("Recommend", mock.Anything, []string{"Chicken Handi Biryani"}).
			Return([]string{"Masala Chiya", "Kheer", "Sweet Lassi"})

		req := httptest.NewRequest(http.MethodPost, "/api/recommendations",
			jsonBody(t, RecommendationRequest{Items: []string{"Chicken Handi Biryani"}}))
		w := httptest.NewRecorder()

		handler.Recommend(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp RecommendationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Suggestions, 3)
	})

	t.Run("Empty items", func(t *testing.T) {
		assistant := new(MockAssistant)
		handler := NewAssistantHandler(assistant, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/recommendations", jsonBody(t, RecommendationRequest{}))
		w := httptest.NewRecorder()

		handler.Recommend(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assistant.AssertNotCalled(t, "Recommend")
	})
}

func TestAssistantHandler_Describe(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		assistant := new(MockAssistant)
		handler := NewAssistantHandler(assistant, logger)
		assistant.On("Describe", mock.Anything, "Kheer", "Khana").Return("Creamy rice pudding.")

		req := httptest.NewRequest(http.MethodPost, "/api/menu/describe",
			jsonBody(t, DescribeRequest{Name: "Kheer", Category: "Khana"}))
		w := httptest.NewRecorder()

		handler.Describe(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"description":"Creamy rice pudding."}`, w.Body.String())
	})

	t.Run("Missing name", func(t *testing.T) {
		assistant := new(MockAssistant)
		handler := NewAssistantHandler(assistant, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/menu/describe", jsonBody(t, DescribeRequest{Category: "Khana"}))
		w := httptest.NewRecorder()

		handler.Describe(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssistantHandler_Assist(t *testing.T) {
	assistant := new(MockAssistant)
	handler := NewAssistantHandler(assistant, zerolog.Nop())
	assistant.On("Assist", mock.Anything, "spicy", "Rs. 500", "birthday").
		Return("Our chef recommends trying our signature Chicken Handi Biryani!")

	req := httptest.NewRequest(http.MethodPost, "/api/assistant",
		jsonBody(t, AssistRequest{Preferences: "spicy", Budget: "Rs. 500", Occasion: "birthday"}))
	w := httptest.NewRecorder()

	handler.Assist(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Our chef recommends trying our signature Chicken Handi Biryani!"}`, w.Body.String())
	assistant.AssertExpectations(t)
}
