package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vc-intel/backend/internal/storage/models"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	var gotReq searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"title":          "Peak XV thesis update",
					"url":            "https://blume.vc/thesis",
					"content":        "The firm's latest thinking.",
					"score":          0.91,
					"published_date": "2026-08-20",
				},
				{
					"title":   "",
					"url":     "https://example.com/untitled",
					"content": "",
					"score":   0.4,
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Options{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		MaxResults:     5,
		RecencyDays:    7,
		IncludeDomains: []string{"blume.vc"},
	})

	results, err := client.Search(context.Background(), "Peak XV investment thesis", models.QueryVCThesis)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if gotReq.APIKey != "test-key" {
		t.Errorf("request api_key = %q", gotReq.APIKey)
	}
	if gotReq.Query != "Peak XV investment thesis" {
		t.Errorf("request query = %q", gotReq.Query)
	}
	if gotReq.Days != 7 {
		t.Errorf("request days = %d, want 7", gotReq.Days)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	first := results[0]
	if first.Title != "Peak XV thesis update" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.PublishedDate != "2026-08-20" {
		t.Errorf("PublishedDate = %q", first.PublishedDate)
	}
	if first.QueryCategory != models.QueryVCThesis {
		t.Errorf("QueryCategory = %q", first.QueryCategory)
	}
	if first.RawScore != 0.91 {
		t.Errorf("RawScore = %v", first.RawScore)
	}

	// Empty fields get explicit placeholders; the normalizer rejects
	// them downstream.
	second := results[1]
	if second.Title != "No title" {
		t.Errorf("placeholder Title = %q", second.Title)
	}
	if second.Content != "No content" {
		t.Errorf("placeholder Content = %q", second.Content)
	}
}

func TestSearchServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: server.URL})

	if _, err := client.Search(context.Background(), "anything", models.QueryVCThesis); err == nil {
		t.Fatal("Search = nil error, want failure on 502")
	}
}

func TestSearchEmptyResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: server.URL})

	results, err := client.Search(context.Background(), "anything", models.QuerySectorAnalysis)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}
