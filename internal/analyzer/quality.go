package analyzer

import (
	"strconv"
	"strings"
	"time"

	"github.com/vc-intel/backend/internal/storage/models"
)

// QualityClassifier buckets a source domain into a reputation tier and
// a publish date into a freshness band. The evaluation time is always
// passed in rather than read from the wall clock.
type QualityClassifier struct {
	rules *Ruleset
}

func NewQualityClassifier(rules *Ruleset) *QualityClassifier {
	return &QualityClassifier{rules: rules}
}

// SourceQuality matches the domain against the tier lists in priority
// order: premium, high quality, thought leadership, then standard.
func (c *QualityClassifier) SourceQuality(domain string) models.SourceQuality {
	d := strings.ToLower(domain)

	if matchesAny(d, c.rules.PremiumDomains) {
		return models.QualityPremium
	}
	if matchesAny(d, c.rules.HighQualityDomains) {
		return models.QualityHigh
	}
	if matchesAny(d, c.rules.ThoughtLeadershipDomains) {
		return models.QualityThoughtLeadership
	}
	return models.QualityStandard
}

// ContentFreshness buckets the article's age at evaluation time. A nil
// publish date falls back to scanning the content for the current or
// prior calendar year; that heuristic only ever yields recent or
// unknown, never fresh.
func (c *QualityClassifier) ContentFreshness(publishedAt *time.Time, content string, now time.Time) models.Freshness {
	if publishedAt == nil {
		currentYear := strconv.Itoa(now.Year())
		priorYear := strconv.Itoa(now.Year() - 1)
		if strings.Contains(content, currentYear) || strings.Contains(content, priorYear) {
			return models.FreshnessRecent
		}
		return models.FreshnessUnknown
	}

	ageDays := int(now.Sub(*publishedAt).Hours() / 24)
	switch {
	case ageDays <= 7:
		return models.FreshnessFresh
	case ageDays <= 30:
		return models.FreshnessRecent
	case ageDays <= 90:
		return models.FreshnessModerate
	default:
		return models.FreshnessStale
	}
}

func (c *QualityClassifier) IsPaywalled(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range c.rules.PaywallPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func matchesAny(domain string, list []string) bool {
	for _, entry := range list {
		if strings.Contains(domain, entry) {
			return true
		}
	}
	return false
}
