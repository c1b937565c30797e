package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vc-intel/backend/internal/storage/models"
	"github.com/vc-intel/backend/pkg/logger"
)

const defaultBaseURL = "https://api.tavily.com/search"

// Client calls the Tavily search API. A shared rate limiter enforces
// the inter-query delay, so callers can loop over queries without
// sleeping themselves.
type Client struct {
	apiKey         string
	baseURL        string
	maxResults     int
	recencyDays    int
	includeDomains []string
	httpClient     *http.Client
	limiter        *rate.Limiter
}

type Options struct {
	APIKey         string
	BaseURL        string
	MaxResults     int
	RecencyDays    int
	IncludeDomains []string
	Timeout        time.Duration
	Delay          time.Duration
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = 5
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}

	return &Client{
		apiKey:         opts.APIKey,
		baseURL:        opts.BaseURL,
		maxResults:     opts.MaxResults,
		recencyDays:    opts.RecencyDays,
		includeDomains: opts.IncludeDomains,
		httpClient:     &http.Client{Timeout: opts.Timeout},
		limiter:        limiter,
	}
}

type searchRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	Days           int      `json:"days,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

type searchResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		Score         float64 `json:"score"`
		PublishedDate string  `json:"published_date"`
	} `json:"results"`
}

// Search issues one query and converts the hits to raw results. It
// waits on the rate limiter first, so consecutive calls are throttled.
func (c *Client) Search(ctx context.Context, query string, category models.QueryCategory) ([]models.RawResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle interrupted: %w", err)
	}

	body, err := json.Marshal(searchRequest{
		APIKey:         c.apiKey,
		Query:          query,
		SearchDepth:    "advanced",
		MaxResults:     c.maxResults,
		Days:           c.recencyDays,
		IncludeDomains: c.includeDomains,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make([]models.RawResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		title := r.Title
		if title == "" {
			title = "No title"
		}
		content := r.Content
		if content == "" {
			content = "No content"
		}

		results = append(results, models.RawResult{
			Title:         title,
			Content:       content,
			URL:           r.URL,
			Source:        r.URL,
			PublishedDate: r.PublishedDate,
			Query:         query,
			QueryCategory: category,
			RawScore:      r.Score,
		})
	}

	logger.Debug("Search completed",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)

	return results, nil
}
