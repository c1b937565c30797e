package analyzer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vc-intel/backend/internal/storage/models"
	"github.com/vc-intel/backend/pkg/logger"
)

// Strategy names recorded on each score so callers and tests can tell
// which branch produced the base score.
const (
	StrategyLLM     = "llm"
	StrategyKeyword = "keyword"
)

// LLMVerdict is the scorer-facing shape of a model response: a base
// score, a category from the closed set, and the free-text fields.
type LLMVerdict struct {
	Score     int
	Category  models.Category
	Reasoning string
	Insights  string
}

// VerdictProvider is the LLM collaborator. It receives the full input
// so the prompt can embed the source tier and freshness. Any error,
// including a malformed response, routes the article to keyword scoring.
type VerdictProvider interface {
	ScoreArticle(ctx context.Context, in ScoreInput) (*LLMVerdict, error)
}

type ScoreInput struct {
	Draft     models.ArticleDraft
	Quality   models.SourceQuality
	Freshness models.Freshness
	Paywalled bool
}

type ScoreResult struct {
	Score    int
	Category models.Category
	Summary  string
	Insights string
	Priority models.Priority
	Strategy string
}

// Scorer computes the 0-100 relevance score. A nil provider makes it
// fully deterministic (keyword strategy only).
type Scorer struct {
	rules *Ruleset
	llm   VerdictProvider
}

func NewScorer(rules *Ruleset, llm VerdictProvider) *Scorer {
	return &Scorer{rules: rules, llm: llm}
}

// Score produces the article's final relevance score: a base score from
// the LLM or the keyword fallback, then the post-scoring modifiers,
// then a clamp to [0,100]. LLM failure never propagates.
func (s *Scorer) Score(ctx context.Context, in ScoreInput) ScoreResult {
	result := s.baseScore(ctx, in)

	result.Score += s.modifiers(in)
	result.Score = clamp(result.Score, 0, 100)
	result.Priority = PriorityFor(result.Score)

	return result
}

func (s *Scorer) baseScore(ctx context.Context, in ScoreInput) ScoreResult {
	if s.llm != nil {
		verdict, err := s.llm.ScoreArticle(ctx, in)
		if err == nil && s.validCategory(verdict.Category) {
			return ScoreResult{
				Score:    clamp(verdict.Score, 0, 100),
				Category: verdict.Category,
				Summary:  verdict.Reasoning,
				Insights: verdict.Insights,
				Strategy: StrategyLLM,
			}
		}
		logger.Debug("LLM scoring unavailable, using keyword fallback",
			zap.String("article_id", in.Draft.ID),
			zap.Error(err),
		)
	}

	return s.keywordScore(in.Draft)
}

// keywordScore is Strategy B: sum the weights of every strategic
// keyword present in the lowercased title+content. The category is the
// highest-scoring bucket; ties resolve to the earlier declaration.
func (s *Scorer) keywordScore(draft models.ArticleDraft) ScoreResult {
	text := strings.ToLower(draft.Title + " " + draft.Content)

	total := 0
	bestScore := 0
	bestCategory := models.CategoryGeneral
	var matched []string

	for _, bucket := range s.rules.Buckets {
		bucketScore := 0
		for _, kw := range bucket.Keywords {
			if strings.Contains(text, kw.Term) {
				bucketScore += kw.Weight
				matched = append(matched, kw.Term)
			}
		}
		total += bucketScore
		if bucketScore > bestScore {
			bestScore = bucketScore
			bestCategory = bucket.Category
		}
	}

	return ScoreResult{
		Score:    total,
		Category: bestCategory,
		Summary:  truncate(draft.Content, 200),
		Insights: keywordInsights(matched),
		Strategy: StrategyKeyword,
	}
}

func (s *Scorer) modifiers(in ScoreInput) int {
	m := s.rules.Modifiers
	delta := 0

	switch in.Quality {
	case models.QualityPremium:
		delta += m.PremiumSource
	case models.QualityThoughtLeadership:
		delta += m.ThoughtLeadership
	}

	switch in.Freshness {
	case models.FreshnessFresh:
		delta += m.FreshContent
	case models.FreshnessStale:
		delta += m.StaleContent
	}

	if in.Paywalled {
		delta += m.Paywalled
	}

	if in.Draft.QueryCategory == models.QueryVCThesis {
		delta += m.ThesisQueryBonus
	}

	return delta
}

func (s *Scorer) validCategory(c models.Category) bool {
	for _, bucket := range s.rules.Buckets {
		if bucket.Category == c {
			return true
		}
	}
	return false
}

// PriorityFor is a monotone step function of the final score.
func PriorityFor(score int) models.Priority {
	switch {
	case score >= 70:
		return models.PriorityHigh
	case score >= 55:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func keywordInsights(matched []string) string {
	if len(matched) == 0 {
		return "No strategic signals detected"
	}
	return "Strategic signals: " + strings.Join(matched, ", ")
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
