package analyzer

import (
	"testing"
	"time"

	"github.com/vc-intel/backend/internal/storage/models"
)

func TestSourceQuality(t *testing.T) {
	t.Parallel()

	classifier := NewQualityClassifier(DefaultRuleset())

	tests := []struct {
		domain string
		want   models.SourceQuality
	}{
		{"blume.vc", models.QualityPremium},
		{"a16z.com", models.QualityPremium},
		{"www.accel.com", models.QualityPremium},
		{"techcrunch.com", models.QualityHigh},
		{"inc42.com", models.QualityHigh},
		{"Livemint.com", models.QualityHigh},
		{"medium.com", models.QualityThoughtLeadership},
		{"newsletter.substack.com", models.QualityThoughtLeadership},
		{"example.com", models.QualityStandard},
		{"", models.QualityStandard},
	}

	for _, tt := range tests {
		if got := classifier.SourceQuality(tt.domain); got != tt.want {
			t.Errorf("SourceQuality(%q) = %q, want %q", tt.domain, got, tt.want)
		}
	}
}

func TestContentFreshness(t *testing.T) {
	t.Parallel()

	classifier := NewQualityClassifier(DefaultRuleset())
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	daysAgo := func(d int) *time.Time {
		t := now.AddDate(0, 0, -d)
		return &t
	}

	tests := []struct {
		name        string
		publishedAt *time.Time
		content     string
		want        models.Freshness
	}{
		{"published today", daysAgo(0), "", models.FreshnessFresh},
		{"seven days old", daysAgo(7), "", models.FreshnessFresh},
		{"eight days old", daysAgo(8), "", models.FreshnessRecent},
		{"thirty days old", daysAgo(30), "", models.FreshnessRecent},
		{"sixty days old", daysAgo(60), "", models.FreshnessModerate},
		{"ninety days old", daysAgo(90), "", models.FreshnessModerate},
		{"six months old", daysAgo(180), "", models.FreshnessStale},
		{"no date, current year in text", nil, "The outlook for 2026 remains strong.", models.FreshnessRecent},
		{"no date, prior year in text", nil, "Looking back at 2025 fundraises.", models.FreshnessRecent},
		{"no date, old year in text", nil, "Back in 2019 the market was different.", models.FreshnessUnknown},
		{"no date, no year", nil, "Timeless advice for founders.", models.FreshnessUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := classifier.ContentFreshness(tt.publishedAt, tt.content, now)
			if got != tt.want {
				t.Errorf("ContentFreshness = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsPaywalled(t *testing.T) {
	t.Parallel()

	classifier := NewQualityClassifier(DefaultRuleset())

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"subscribe prompt", "Subscribe to read the full story.", true},
		{"premium banner", "This is a Premium article.", true},
		{"registration wall", "Register to read the rest of this piece.", true},
		{"open article", "The fund closed its third vehicle at $450M.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		if got := classifier.IsPaywalled(tt.content); got != tt.want {
			t.Errorf("%s: IsPaywalled = %v, want %v", tt.name, got, tt.want)
		}
	}
}
