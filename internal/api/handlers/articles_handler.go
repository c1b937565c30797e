package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vc-intel/backend/internal/metrics"
	"github.com/vc-intel/backend/internal/storage/models"
	"github.com/vc-intel/backend/internal/storage/sqlite"
	"github.com/vc-intel/backend/pkg/logger"
)

type ArticlesHandler struct {
	store *sqlite.Client
}

func NewArticlesHandler(store *sqlite.Client) *ArticlesHandler {
	return &ArticlesHandler{store: store}
}

type articleResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	URL              string   `json:"url"`
	Domain           string   `json:"domain"`
	PublishedAt      *string  `json:"published_at"`
	SearchQuery      string   `json:"search_query"`
	Category         string   `json:"category"`
	SourceQuality    string   `json:"source_quality"`
	ContentFreshness string   `json:"content_freshness"`
	IsPaywalled      bool     `json:"is_paywalled"`
	RelevanceScore   int      `json:"relevance_score"`
	Priority         string   `json:"priority"`
	StrategicSummary string   `json:"strategic_summary"`
	KeyInsights      string   `json:"key_insights"`
	Sectors          []string `json:"sectors"`
	VCFirm           string   `json:"vc_firm"`
	Sentiment        string   `json:"sentiment"`
	KeyTopics        []string `json:"key_topics"`
	ScoredBy         string   `json:"scored_by"`
	UserRating       int      `json:"user_rating"`
}

func toArticleResponse(a models.Article) articleResponse {
	var publishedAt *string
	if a.PublishedAt != nil {
		s := a.PublishedAt.UTC().Format("2006-01-02T15:04:05Z")
		publishedAt = &s
	}

	return articleResponse{
		ID:               a.ID,
		Title:            a.Title,
		URL:              a.URL,
		Domain:           a.Domain,
		PublishedAt:      publishedAt,
		SearchQuery:      a.SearchQuery,
		Category:         string(a.SearchCategory),
		SourceQuality:    string(a.SourceQuality),
		ContentFreshness: string(a.ContentFreshness),
		IsPaywalled:      a.IsPaywalled,
		RelevanceScore:   a.RelevanceScore,
		Priority:         string(a.Priority),
		StrategicSummary: a.StrategicSummary,
		KeyInsights:      a.KeyInsights,
		Sectors:          a.Sectors,
		VCFirm:           a.VCFirm,
		Sentiment:        a.Sentiment,
		KeyTopics:        a.KeyTopics,
		ScoredBy:         a.ScoredBy,
		UserRating:       a.UserRating,
	}
}

// ListArticles serves filtered reads over the stored articles. All
// filters are optional query parameters.
func (h *ArticlesHandler) ListArticles(c *fiber.Ctx) error {
	filter := sqlite.Filter{
		Category:      models.Category(c.Query("category")),
		SourceQuality: models.SourceQuality(c.Query("source_quality")),
		Freshness:     models.Freshness(c.Query("freshness")),
		Priority:      models.Priority(c.Query("priority")),
		Sector:        c.Query("sector"),
	}

	if v := c.Query("min_score"); v != "" {
		minScore, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "min_score must be an integer",
			})
		}
		filter.MinScore = minScore
	}

	if v := c.Query("paywalled"); v != "" {
		paywalled, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "paywalled must be true or false",
			})
		}
		filter.Paywalled = &paywalled
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		filter.Limit = limit
	}

	articles, err := h.store.QueryArticles(c.Context(), filter)
	if err != nil {
		logger.Error("Failed to query articles", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to query articles",
		})
	}

	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}

	return c.JSON(fiber.Map{
		"count":    len(out),
		"articles": out,
	})
}

func (h *ArticlesHandler) GetArticle(c *fiber.Ctx) error {
	id := c.Params("id")

	article, err := h.store.GetArticle(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Article not found",
		})
	}

	return c.JSON(toArticleResponse(*article))
}

// SubmitFeedback records a user rating for an article. Ratings never
// change relevance scores; they are kept for later tuning.
func (h *ArticlesHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req struct {
		ArticleID string `json:"article_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.ArticleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "article_id is required",
		})
	}

	if err := h.store.RecordFeedback(c.Context(), req.ArticleID, req.Rating, req.Comment); err != nil {
		logger.Error("Failed to record feedback",
			zap.String("article_id", req.ArticleID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	metrics.FeedbackTotal.Inc()

	return c.JSON(fiber.Map{
		"status": "recorded",
	})
}
