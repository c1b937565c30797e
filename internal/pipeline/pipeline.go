package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vc-intel/backend/internal/analyzer"
	"github.com/vc-intel/backend/internal/metrics"
	"github.com/vc-intel/backend/internal/storage/models"
	"github.com/vc-intel/backend/pkg/logger"
)

// Searcher is the search API collaborator. Per-query failures are
// ordinary; the run proceeds with the remaining queries.
type Searcher interface {
	Search(ctx context.Context, query string, category models.QueryCategory) ([]models.RawResult, error)
}

// FeedSource contributes RSS hits; failing feeds are handled inside.
type FeedSource interface {
	FetchAll(ctx context.Context) []models.RawResult
}

type Store interface {
	StoreArticles(ctx context.Context, articles []models.Article) (int, error)
	RecordRun(run *models.RunRecord) error
}

// Pipeline runs the discovery flow: search and feeds, normalize, dedup,
// classify, score, tag, then insert-or-skip into storage. Queries run
// one at a time; the search client's throttle paces them.
type Pipeline struct {
	rules      *analyzer.Ruleset
	normalizer *Normalizer
	dedup      *Deduplicator
	classifier *analyzer.QualityClassifier
	scorer     *analyzer.Scorer
	tagger     *analyzer.Tagger
	searcher   Searcher
	feeds      FeedSource
	store      Store
	minScore   int
	clock      func() time.Time
}

type Options struct {
	Rules    *analyzer.Ruleset
	Searcher Searcher
	Feeds    FeedSource
	Store    Store
	LLM      analyzer.VerdictProvider
	MinScore int
	Clock    func() time.Time
}

func New(opts Options) *Pipeline {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Pipeline{
		rules:      opts.Rules,
		normalizer: NewNormalizer(),
		dedup:      NewDeduplicator(),
		classifier: analyzer.NewQualityClassifier(opts.Rules),
		scorer:     analyzer.NewScorer(opts.Rules, opts.LLM),
		tagger:     analyzer.NewTagger(opts.Rules),
		searcher:   opts.Searcher,
		feeds:      opts.Feeds,
		store:      opts.Store,
		minScore:   opts.MinScore,
		clock:      opts.Clock,
	}
}

// Run executes one full discovery pass. Partial failures degrade
// coverage; the only error returned is a storage-level failure of the
// whole batch.
func (p *Pipeline) Run(ctx context.Context) (*models.RunRecord, error) {
	start := p.clock()
	run := &models.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: start,
	}

	logger.Info("Discovery run started", zap.String("run_id", run.ID))

	raw := p.collect(ctx, run)
	run.RawCount = len(raw)
	metrics.RawResultsTotal.Add(float64(len(raw)))

	drafts := make([]models.ArticleDraft, 0, len(raw))
	for _, r := range raw {
		draft, ok := p.normalizer.Normalize(r)
		if !ok {
			metrics.ArticlesRejected.WithLabelValues("noise").Inc()
			continue
		}
		drafts = append(drafts, draft)
	}

	unique := p.dedup.Deduplicate(drafts)
	run.UniqueCount = len(unique)
	metrics.DuplicatesRemoved.Add(float64(len(drafts) - len(unique)))

	accepted := p.scoreAll(ctx, unique, start)
	for _, a := range accepted {
		if a.Priority == models.PriorityHigh {
			run.HighPriority++
		}
	}

	stored, err := p.store.StoreArticles(ctx, accepted)
	if err != nil {
		return run, err
	}
	run.StoredCount = stored
	metrics.ArticlesStored.Add(float64(stored))

	run.DurationMS = int(time.Since(start).Milliseconds())
	metrics.PipelineDuration.Observe(time.Since(start).Seconds())

	if err := p.store.RecordRun(run); err != nil {
		logger.Warn("Failed to record run metrics", zap.Error(err))
	}

	logger.Info("Discovery run finished",
		zap.String("run_id", run.ID),
		zap.Int("raw", run.RawCount),
		zap.Int("unique", run.UniqueCount),
		zap.Int("stored", run.StoredCount),
		zap.Int("high_priority", run.HighPriority),
		zap.Int("duration_ms", run.DurationMS),
	)

	return run, nil
}

// collect gathers raw hits from the search API and, when configured,
// the RSS feeds. Failed queries are counted and skipped.
func (p *Pipeline) collect(ctx context.Context, run *models.RunRecord) []models.RawResult {
	var raw []models.RawResult

	for _, q := range GenerateQueries(p.rules, p.clock().Year()) {
		run.QueriesIssued++

		results, err := p.searcher.Search(ctx, q.Text, q.Category)
		if err != nil {
			run.QueriesFailed++
			metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
			logger.Warn("Search query failed",
				zap.String("query", q.Text),
				zap.Error(err),
			)
			continue
		}

		metrics.SearchQueriesTotal.WithLabelValues("ok").Inc()
		raw = append(raw, results...)
	}

	if p.feeds != nil {
		raw = append(raw, p.feeds.FetchAll(ctx)...)
	}

	return raw
}

func (p *Pipeline) scoreAll(ctx context.Context, drafts []models.ArticleDraft, now time.Time) []models.Article {
	var accepted []models.Article

	for _, draft := range drafts {
		article := p.scoreOne(ctx, draft, now)
		if article == nil {
			metrics.ArticlesRejected.WithLabelValues("below_threshold").Inc()
			continue
		}
		metrics.RelevanceScore.Observe(float64(article.RelevanceScore))
		accepted = append(accepted, *article)
	}

	return accepted
}

// scoreOne classifies, scores and tags one draft, returning nil when
// the final score misses the acceptance threshold.
func (p *Pipeline) scoreOne(ctx context.Context, draft models.ArticleDraft, now time.Time) *models.Article {
	input := analyzer.ScoreInput{
		Draft:     draft,
		Quality:   p.classifier.SourceQuality(draft.Domain),
		Freshness: p.classifier.ContentFreshness(draft.PublishedAt, draft.Content, now),
		Paywalled: p.classifier.IsPaywalled(draft.Content),
	}

	result := p.scorer.Score(ctx, input)
	if result.Strategy == analyzer.StrategyKeyword {
		metrics.ScoringFallbackTotal.Inc()
	}

	if result.Score < p.minScore {
		return nil
	}

	return &models.Article{
		ID:               draft.ID,
		Title:            draft.Title,
		Content:          draft.Content,
		URL:              draft.URL,
		Domain:           draft.Domain,
		PublishedAt:      draft.PublishedAt,
		SearchQuery:      draft.SearchQuery,
		SearchCategory:   result.Category,
		QueryCategory:    draft.QueryCategory,
		SourceQuality:    input.Quality,
		ContentFreshness: input.Freshness,
		IsPaywalled:      input.Paywalled,
		RelevanceScore:   result.Score,
		Priority:         result.Priority,
		StrategicSummary: result.Summary,
		KeyInsights:      result.Insights,
		Sectors:          p.tagger.Sectors(draft),
		VCFirm:           p.tagger.VCFirm(draft),
		Sentiment:        p.tagger.Sentiment(draft),
		KeyTopics:        p.tagger.KeyTopics(draft),
		ScoredBy:         result.Strategy,
		CreatedAt:        now,
	}
}
