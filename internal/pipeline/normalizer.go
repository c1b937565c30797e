package pipeline

import (
	"net/url"
	"strings"
	"time"

	"github.com/vc-intel/backend/internal/storage/models"
	"github.com/vc-intel/backend/pkg/utils"
)

// minContentLen is the noise floor: search snippets shorter than this
// carry too little signal to score.
const minContentLen = 100

// dateFormats covers the publish-date spellings seen across the search
// API and RSS feeds.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"02 Jan 2006",
}

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts a raw hit into a canonical draft. The second
// return is false when the record is rejected as noise (thin content or
// missing title); rejection is a filtering outcome, not an error.
func (n *Normalizer) Normalize(raw models.RawResult) (models.ArticleDraft, bool) {
	title := strings.TrimSpace(raw.Title)
	content := strings.TrimSpace(raw.Content)

	if title == "" || title == "No title" || len(content) < minContentLen {
		return models.ArticleDraft{}, false
	}

	return models.ArticleDraft{
		ID:            utils.ArticleID(raw.URL),
		Title:         title,
		Content:       content,
		URL:           raw.URL,
		Domain:        extractDomain(raw.URL),
		PublishedAt:   parseDate(raw.PublishedDate),
		SearchQuery:   raw.Query,
		QueryCategory: raw.QueryCategory,
	}, true
}

// extractDomain returns the URL's host, falling back to the literal
// string when parsing fails or yields no host.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.ToLower(u.Host)
}

// parseDate tries each known format and returns nil when none match.
// A missing date stays nil; defaulting it to "now" would silently mark
// every undated article as fresh.
func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return &t
		}
	}
	return nil
}
