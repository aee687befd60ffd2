package client

import (
	"context"
	"net/http"

	"handi-menu/internal/recommend"
)

// Recommend asks for dishes that go with items. Any failure yields the fixed
// fallback list, so checkout never depends on it.
func (c *Client) Recommend(ctx context.Context, items []string) []string {
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	body := struct {
		Items []string `json:"items"`
	}{Items: items}

	if _, err := c.do(ctx, http.MethodPost, "/api/recommendations", body, &resp); err != nil || len(resp.Suggestions) == 0 {
		c.logger.Warn().Err(err).Msg("recommendations unavailable, using fallback")
		return append([]string(nil), recommend.FallbackRecommendations...)
	}
	return resp.Suggestions
}

// Describe asks for a one-sentence description of a dish.
func (c *Client) Describe(ctx context.Context, name, category string) string {
	var resp struct {
		Description string `json:"description"`
	}
	body := struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}{Name: name, Category: category}

	if _, err := c.do(ctx, http.MethodPost, "/api/menu/describe", body, &resp); err != nil || resp.Description == "" {
		c.logger.Warn().Err(err).Msg("description unavailable, using fallback")
		return recommend.FallbackDescription
	}
	return resp.Description
}

// Assist asks the dining assistant for a recommendation.
func (c *Client) Assist(ctx context.Context, preferences, budget, occasion string) string {
	var resp struct {
		Message string `json:"message"`
	}
	body := struct {
		Preferences string `json:"preferences"`
		Budget      string `json:"budget"`
		Occasion    string `json:"occasion"`
	}{Preferences: preferences, Budget: budget, Occasion: occasion}

	if _, err := c.do(ctx, http.MethodPost, "/api/assistant", body, &resp); err != nil || resp.Message == "" {
		c.logger.Warn().Err(err).Msg("assistant unavailable, using fallback")
		return recommend.FallbackAssist
	}
	return resp.Message
}
