package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vc-intel/backend/internal/analyzer"
	"github.com/vc-intel/backend/internal/storage/models"
)

type mockSearcher struct {
	searchFn func(ctx context.Context, query string, category models.QueryCategory) ([]models.RawResult, error)
}

func (m *mockSearcher) Search(ctx context.Context, query string, category models.QueryCategory) ([]models.RawResult, error) {
	return m.searchFn(ctx, query, category)
}

type mockStore struct {
	storeFn     func(ctx context.Context, articles []models.Article) (int, error)
	recordRunFn func(run *models.RunRecord) error
}

func (m *mockStore) StoreArticles(ctx context.Context, articles []models.Article) (int, error) {
	return m.storeFn(ctx, articles)
}

func (m *mockStore) RecordRun(run *models.RunRecord) error {
	if m.recordRunFn != nil {
		return m.recordRunFn(run)
	}
	return nil
}

var pipelineContent = strings.Repeat("Peak XV investment thesis and portfolio strategy for Indian startups, funding and growth. ", 3)

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	published := now.AddDate(0, 0, -2).Format("2006-01-02")

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, query string, category models.QueryCategory) ([]models.RawResult, error) {
			if category != models.QueryVCThesis {
				return nil, nil
			}
			// Same payload for every thesis query: one real hit, its URL
			// duplicate, and one noise record.
			return []models.RawResult{
				{
					Title:         "Peak XV thesis update",
					Content:       pipelineContent,
					URL:           "https://blume.vc/thesis-update",
					PublishedDate: published,
					Query:         query,
					QueryCategory: category,
				},
				{
					Title:         "Peak XV thesis update",
					Content:       pipelineContent,
					URL:           "https://blume.vc/thesis-update",
					PublishedDate: published,
					Query:         query,
					QueryCategory: category,
				},
				{
					Title:         "No title",
					Content:       pipelineContent,
					URL:           "https://spam.example/1",
					Query:         query,
					QueryCategory: category,
				},
			}, nil
		},
	}

	var stored []models.Article
	store := &mockStore{
		storeFn: func(ctx context.Context, articles []models.Article) (int, error) {
			stored = articles
			return len(articles), nil
		},
	}

	p := New(Options{
		Rules:    analyzer.DefaultRuleset(),
		Searcher: searcher,
		Store:    store,
		MinScore: 55,
		Clock:    func() time.Time { return now },
	})

	run, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if run.UniqueCount != 1 {
		t.Errorf("UniqueCount = %d, want 1 after dedup", run.UniqueCount)
	}
	if run.StoredCount != 1 {
		t.Errorf("StoredCount = %d, want 1", run.StoredCount)
	}
	if len(stored) != 1 {
		t.Fatalf("store received %d articles, want 1", len(stored))
	}

	article := stored[0]
	if article.SourceQuality != models.QualityPremium {
		t.Errorf("SourceQuality = %q, want premium for blume.vc", article.SourceQuality)
	}
	if article.ContentFreshness != models.FreshnessFresh {
		t.Errorf("ContentFreshness = %q, want fresh at two days old", article.ContentFreshness)
	}
	if article.ScoredBy != analyzer.StrategyKeyword {
		t.Errorf("ScoredBy = %q, want keyword (no LLM configured)", article.ScoredBy)
	}
	if article.RelevanceScore < 55 {
		t.Errorf("RelevanceScore = %d, below the acceptance threshold", article.RelevanceScore)
	}
	if run.HighPriority != 1 {
		t.Errorf("HighPriority = %d, want 1", run.HighPriority)
	}
}

func TestPipelineRunToleratesQueryFailures(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, query string, category models.QueryCategory) ([]models.RawResult, error) {
			return nil, errors.New("search API down")
		},
	}
	store := &mockStore{
		storeFn: func(ctx context.Context, articles []models.Article) (int, error) {
			return 0, nil
		},
	}

	p := New(Options{
		Rules:    analyzer.DefaultRuleset(),
		Searcher: searcher,
		Store:    store,
		MinScore: 55,
	})

	run, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if run.QueriesIssued == 0 {
		t.Error("QueriesIssued = 0, want all queries attempted")
	}
	if run.QueriesFailed != run.QueriesIssued {
		t.Errorf("QueriesFailed = %d, want %d", run.QueriesFailed, run.QueriesIssued)
	}
	if run.RawCount != 0 || run.StoredCount != 0 {
		t.Errorf("counts = raw %d stored %d, want zeros", run.RawCount, run.StoredCount)
	}
}

func TestPipelineRunPropagatesStoreFailure(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, query string, category models.QueryCategory) ([]models.RawResult, error) {
			return nil, nil
		},
	}
	store := &mockStore{
		storeFn: func(ctx context.Context, articles []models.Article) (int, error) {
			return 0, errors.New("database locked")
		},
	}

	p := New(Options{
		Rules:    analyzer.DefaultRuleset(),
		Searcher: searcher,
		Store:    store,
		MinScore: 55,
	})

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Run = nil error, want storage failure")
	}
}
