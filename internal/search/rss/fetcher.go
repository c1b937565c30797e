package rss

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/vc-intel/backend/internal/storage/models"
	"github.com/vc-intel/backend/pkg/logger"
)

// relevanceKeywords gates feed entries before they enter the pipeline;
// VC blogs publish plenty of content with no investment angle.
var relevanceKeywords = []string{
	"consumer", "d2c", "saas", "fintech", "ai", "artificial intelligence",
	"investment thesis", "funding", "venture capital", "startup",
	"portfolio", "market analysis", "trends",
}

// Fetcher pulls configured VC blog feeds and converts relevant entries
// to raw results. Feed names are used as the source label.
type Fetcher struct {
	feeds      map[string]string
	parser     *gofeed.Parser
	maxPerFeed int
	timeout    time.Duration
}

func NewFetcher(feeds map[string]string, maxPerFeed int, timeout time.Duration) *Fetcher {
	if maxPerFeed == 0 {
		maxPerFeed = 5
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Fetcher{
		feeds:      feeds,
		parser:     gofeed.NewParser(),
		maxPerFeed: maxPerFeed,
		timeout:    timeout,
	}
}

// FetchAll reads every configured feed. A failing feed is logged and
// skipped; the remaining feeds still contribute.
func (f *Fetcher) FetchAll(ctx context.Context) []models.RawResult {
	var results []models.RawResult

	for name, url := range f.feeds {
		entries, err := f.fetchFeed(ctx, name, url)
		if err != nil {
			logger.Warn("RSS feed fetch failed",
				zap.String("feed", name),
				zap.String("url", url),
				zap.Error(err),
			)
			continue
		}
		results = append(results, entries...)
	}

	logger.Info("RSS feeds fetched",
		zap.Int("feeds", len(f.feeds)),
		zap.Int("results", len(results)),
	)

	return results
}

func (f *Fetcher) fetchFeed(ctx context.Context, name, url string) ([]models.RawResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(url, fetchCtx)
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if len(items) > f.maxPerFeed {
		items = items[:f.maxPerFeed]
	}

	var results []models.RawResult
	for _, item := range items {
		summary := stripHTML(item.Description)
		if summary == "" {
			summary = stripHTML(item.Content)
		}

		if !isRelevant(item.Title + " " + summary) {
			continue
		}

		results = append(results, models.RawResult{
			Title:         item.Title,
			Content:       summary,
			URL:           item.Link,
			Source:        name,
			PublishedDate: item.Published,
			Query:         "RSS Feed",
			QueryCategory: models.QueryRSSFeed,
			RawScore:      0.8,
		})
	}

	return results, nil
}

func isRelevant(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range relevanceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// stripHTML flattens a feed entry's HTML body to plain text.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("script, style").Remove()
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}
