package pipeline

import (
	"strings"

	"github.com/vc-intel/backend/internal/storage/models"
)

// titleSimilarityThreshold is the Jaccard cutoff above which two titles
// count as the same story.
const titleSimilarityThreshold = 0.8

type Deduplicator struct{}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate removes exact-URL duplicates and near-duplicate titles,
// preserving first-seen order. Quadratic in the number of surviving
// titles, which batches in the low hundreds keep cheap.
func (d *Deduplicator) Deduplicate(drafts []models.ArticleDraft) []models.ArticleDraft {
	seenURLs := make(map[string]struct{}, len(drafts))
	var seenTitles []map[string]struct{}
	var unique []models.ArticleDraft

	for _, draft := range drafts {
		if _, ok := seenURLs[draft.URL]; ok {
			continue
		}

		tokens := tokenSet(draft.Title)
		if isNearDuplicate(tokens, seenTitles) {
			continue
		}

		seenURLs[draft.URL] = struct{}{}
		seenTitles = append(seenTitles, tokens)
		unique = append(unique, draft)
	}

	return unique
}

func isNearDuplicate(tokens map[string]struct{}, seen []map[string]struct{}) bool {
	for _, prev := range seen {
		if Jaccard(tokens, prev) > titleSimilarityThreshold {
			return true
		}
	}
	return false
}

func tokenSet(title string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(title)) {
		set[word] = struct{}{}
	}
	return set
}

// Jaccard is |A∩B| / |A∪B|, defined as 0 when either set is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
