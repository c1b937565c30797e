package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vc_intel_pipeline_duration_seconds",
			Help:    "Full discovery run duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vc_intel_search_queries_total",
			Help: "Search queries issued, by outcome",
		},
		[]string{"status"},
	)

	RawResultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vc_intel_raw_results_total",
			Help: "Raw search and feed hits collected",
		},
	)

	DuplicatesRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vc_intel_duplicates_removed_total",
			Help: "Records dropped by URL or title dedup",
		},
	)

	ArticlesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vc_intel_articles_rejected_total",
			Help: "Records excluded from storage, by reason",
		},
		[]string{"reason"},
	)

	ArticlesStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vc_intel_articles_stored_total",
			Help: "Newly inserted articles",
		},
	)

	ScoringFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vc_intel_scoring_fallback_total",
			Help: "Articles scored by the keyword fallback instead of the LLM",
		},
	)

	RelevanceScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vc_intel_relevance_score",
			Help:    "Final relevance scores of accepted articles",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	FeedbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vc_intel_feedback_total",
			Help: "User feedback events recorded",
		},
	)
)

func Init() {
	prometheus.MustRegister(PipelineDuration)
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(RawResultsTotal)
	prometheus.MustRegister(DuplicatesRemoved)
	prometheus.MustRegister(ArticlesRejected)
	prometheus.MustRegister(ArticlesStored)
	prometheus.MustRegister(ScoringFallbackTotal)
	prometheus.MustRegister(RelevanceScore)
	prometheus.MustRegister(FeedbackTotal)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
