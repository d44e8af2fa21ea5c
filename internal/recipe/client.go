// Package recipe searches the Edamam recipe API, optionally through a redis cache.
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pantry-hub/internal/model"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when no API credentials are set.
var ErrNotConfigured = errors.New("recipe API credentials are not configured")

// Client calls the Edamam recipe search v2 endpoint.
type Client struct {
	baseURL    string
	appID      string
	appKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a recipe API client.
func NewClient(baseURL, appID, appKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		appID:      appID,
		appKey:     appKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "recipe-client").Logger(),
	}
}

type searchResponse struct {
	Hits []struct {
		Recipe struct {
			Label           string   `json:"label"`
			Image           string   `json:"image"`
			IngredientLines []string `json:"ingredientLines"`
			URL             string   `json:"url"`
			Yield           float64  `json:"yield"`
		} `json:"recipe"`
	} `json:"hits"`
}

// Search runs a public recipe search for query.
func (c *Client) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	if c.appID == "" || c.appKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("type", "public")
	params.Set("q", query)
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	endpoint := c.baseURL + "/api/recipes/v2?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call recipe API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("query", query).
			Str("body", string(body)).
			Msg("recipe API returned an error")
		return nil, fmt.Errorf("recipe API error %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to parse recipe API response: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(sr.Hits))
	for _, h := range sr.Hits {
		recipes = append(recipes, model.Recipe{
			Label:       h.Recipe.Label,
			Image:       h.Recipe.Image,
			Ingredients: h.Recipe.IngredientLines,
			URL:         h.Recipe.URL,
			Yield:       h.Recipe.Yield,
		})
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(recipes)).
		Dur("elapsed", time.Since(start)).
		Msg("recipe search completed")

	return recipes, nil
}
