// Package mealdb is a client for the public TheMealDB recipe API.
package mealdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
	"github.com/pageza/mealfinder/backend/internal/types"
)

// DefaultBaseURL is the free-tier API root.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

const maxResponseBytes = 4 << 20

// Client talks to the filter and lookup endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FilterByIngredient returns the recipes tagged with ingredient. It returns
// nil and no error when the API reports no match.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]types.RecipeSummary, error) {
	body, err := c.get(ctx, "filter.php", url.Values{"i": {ingredient}})
	if err != nil {
		return nil, fmt.Errorf("filter by ingredient %q: %w", ingredient, err)
	}
	summaries, err := decodeSummaries(body)
	if err != nil {
		return nil, fmt.Errorf("filter by ingredient %q: %w", ingredient, err)
	}
	return summaries, nil
}

// LookupByID returns the full record of a recipe. An unknown id is a data error.
func (c *Client) LookupByID(ctx context.Context, id string) (*types.RecipeDetail, error) {
	body, err := c.get(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, fmt.Errorf("lookup recipe %s: %w", id, err)
	}
	detail, err := decodeDetail(body)
	if err != nil {
		return nil, fmt.Errorf("lookup recipe %s: %w", id, err)
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", apperrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.Transportf("failed to read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Transportf("API request failed with status %d", resp.StatusCode)
	}

	return body, nil
}
