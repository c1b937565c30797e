package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vc-intel/backend/internal/storage/models"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Blume Ventures Blog</title>
    <item>
      <title>Our fintech investment thesis</title>
      <link>https://blume.vc/fintech-thesis</link>
      <description>&lt;p&gt;Why we keep backing &lt;b&gt;fintech&lt;/b&gt; founders.&lt;/p&gt;</description>
      <pubDate>Mon, 24 Aug 2026 10:00:00 +0530</pubDate>
    </item>
    <item>
      <title>Office holiday party recap</title>
      <link>https://blume.vc/party</link>
      <description>Photos from the team get-together.</description>
    </item>
    <item>
      <title>SaaS pricing notes</title>
      <link>https://blume.vc/saas-pricing</link>
      <description>How Indian saas vendors should think about pricing.</description>
    </item>
  </channel>
</rss>`

func TestFetchAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML)
	}))
	defer server.Close()

	f := NewFetcher(map[string]string{"Blume Ventures": server.URL}, 5, 0)

	results := f.FetchAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (party recap filtered out)", len(results))
	}

	first := results[0]
	if first.Title != "Our fintech investment thesis" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Content != "Why we keep backing fintech founders." {
		t.Errorf("Content = %q, want HTML stripped", first.Content)
	}
	if first.Source != "Blume Ventures" {
		t.Errorf("Source = %q", first.Source)
	}
	if first.QueryCategory != models.QueryRSSFeed {
		t.Errorf("QueryCategory = %q", first.QueryCategory)
	}
	if first.PublishedDate == "" {
		t.Error("PublishedDate empty, want feed pubDate")
	}
}

func TestFetchAllMaxPerFeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedXML)
	}))
	defer server.Close()

	f := NewFetcher(map[string]string{"Blume Ventures": server.URL}, 1, 0)

	results := f.FetchAll(context.Background())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 with maxPerFeed=1", len(results))
	}
}

func TestFetchAllToleratesDeadFeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedXML)
	}))
	defer server.Close()

	f := NewFetcher(map[string]string{
		"Blume Ventures": server.URL,
		"Dead Feed":      "http://127.0.0.1:1/feed",
	}, 5, 0)

	results := f.FetchAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 from the live feed", len(results))
	}
}

func TestIsRelevant(t *testing.T) {
	t.Parallel()

	if !isRelevant("New venture capital report") {
		t.Error("venture capital text marked irrelevant")
	}
	if isRelevant("Office holiday party recap") {
		t.Error("party recap marked relevant")
	}
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	in := `<div><p>Hello <b>world</b></p><script>alert(1)</script></div>`
	if got := stripHTML(in); got != "Hello world" {
		t.Errorf("stripHTML = %q, want %q", got, "Hello world")
	}
	if got := stripHTML(""); got != "" {
		t.Errorf("stripHTML(empty) = %q", got)
	}
}
