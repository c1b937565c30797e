package analyzer

import (
	"strings"

	"github.com/vc-intel/backend/internal/storage/models"
)

// Tagger runs the classification passes that are independent of
// relevance scoring: sector tags, firm detection, sentiment and topics.
type Tagger struct {
	rules *Ruleset
}

func NewTagger(rules *Ruleset) *Tagger {
	return &Tagger{rules: rules}
}

// Sectors returns every sector whose keyword list hits the text. An
// article may carry zero, one or many sector tags.
func (t *Tagger) Sectors(draft models.ArticleDraft) []string {
	text := strings.ToLower(draft.Title + " " + draft.Content)

	var matched []string
	for _, sector := range t.rules.Sectors {
		for _, kw := range sector.Keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, sector.Name)
				break
			}
		}
	}
	return matched
}

// VCFirm resolves the first alias mentioned in the title, content or
// source to its canonical firm name, or "Unknown".
func (t *Tagger) VCFirm(draft models.ArticleDraft) string {
	text := strings.ToLower(draft.Title + " " + draft.Content + " " + draft.Domain)

	for _, alias := range t.rules.VCAliases {
		if strings.Contains(text, alias.Alias) {
			return alias.Firm
		}
	}
	return "Unknown"
}

func (t *Tagger) Sentiment(draft models.ArticleDraft) string {
	text := strings.ToLower(draft.Title + " " + draft.Content)

	positive := countHits(text, t.rules.PositiveWords)
	negative := countHits(text, t.rules.NegativeWords)

	switch {
	case positive > negative:
		return "Positive"
	case negative > positive:
		return "Negative"
	default:
		return "Neutral"
	}
}

// KeyTopics returns up to three theme tags in declaration order.
func (t *Tagger) KeyTopics(draft models.ArticleDraft) []string {
	text := strings.ToLower(draft.Title + " " + draft.Content)

	var topics []string
	for _, topic := range t.rules.Topics {
		for _, kw := range topic.Keywords {
			if strings.Contains(text, kw) {
				topics = append(topics, topic.Name)
				break
			}
		}
		if len(topics) == 3 {
			break
		}
	}
	return topics
}

func countHits(text string, words []string) int {
	hits := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			hits++
		}
	}
	return hits
}
