package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/vc-intel/backend/internal/storage/models"
	"github.com/vc-intel/backend/pkg/logger"
)

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT UNIQUE NOT NULL,
		content TEXT,
		domain TEXT,
		published_at INTEGER,
		search_query TEXT,
		search_category TEXT,
		query_category TEXT,
		source_quality TEXT NOT NULL,
		content_freshness TEXT NOT NULL,
		is_paywalled INTEGER NOT NULL DEFAULT 0,
		relevance_score INTEGER NOT NULL,
		priority TEXT NOT NULL,
		strategic_summary TEXT,
		key_insights TEXT,
		sectors TEXT,
		vc_firm TEXT,
		sentiment TEXT,
		key_topics TEXT,
		scored_by TEXT,
		user_rating INTEGER DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_articles_score ON articles(relevance_score);
	CREATE INDEX IF NOT EXISTS idx_articles_priority ON articles(priority);
	CREATE INDEX IF NOT EXISTS idx_articles_quality ON articles(source_quality);
	CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(search_category);
	CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);

	CREATE TABLE IF NOT EXISTS feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		article_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (article_id) REFERENCES articles(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_feedback_article ON feedback(article_id);

	CREATE TABLE IF NOT EXISTS run_metrics (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER,
		raw_count INTEGER,
		unique_count INTEGER,
		stored_count INTEGER,
		high_priority INTEGER,
		queries_issued INTEGER,
		queries_failed INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON run_metrics(started_at);
	`

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

// InsertIfAbsent writes an article unless its id (or URL) is already
// present. Returns true when a new row was inserted; an existing row is
// a skip, not an error.
func (c *Client) InsertIfAbsent(ctx context.Context, a *models.Article) (bool, error) {
	sectorsJSON, err := json.Marshal(a.Sectors)
	if err != nil {
		return false, fmt.Errorf("failed to encode sectors: %w", err)
	}
	topicsJSON, err := json.Marshal(a.KeyTopics)
	if err != nil {
		return false, fmt.Errorf("failed to encode topics: %w", err)
	}

	var publishedAt sql.NullInt64
	if a.PublishedAt != nil {
		publishedAt = sql.NullInt64{Int64: a.PublishedAt.Unix(), Valid: true}
	}

	query := `
		INSERT INTO articles (
			id, title, url, content, domain, published_at,
			search_query, search_category, query_category,
			source_quality, content_freshness, is_paywalled,
			relevance_score, priority, strategic_summary, key_insights,
			sectors, vc_firm, sentiment, key_topics, scored_by,
			user_rating, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`

	res, err := c.db.ExecContext(ctx, query,
		a.ID, a.Title, a.URL, a.Content, a.Domain, publishedAt,
		a.SearchQuery, string(a.SearchCategory), string(a.QueryCategory),
		string(a.SourceQuality), string(a.ContentFreshness), boolToInt(a.IsPaywalled),
		a.RelevanceScore, string(a.Priority), a.StrategicSummary, a.KeyInsights,
		string(sectorsJSON), a.VCFirm, a.Sentiment, string(topicsJSON), a.ScoredBy,
		a.UserRating, a.CreatedAt.Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return affected > 0, nil
}

// StoreArticles batch-inserts with insert-or-skip semantics and returns
// the count of new rows. A failing row is logged and skipped; it never
// fails the batch.
func (c *Client) StoreArticles(ctx context.Context, articles []models.Article) (int, error) {
	stored := 0

	for i := range articles {
		inserted, err := c.InsertIfAbsent(ctx, &articles[i])
		if err != nil {
			logger.Warn("Failed to store article",
				zap.String("article_id", articles[i].ID),
				zap.String("url", articles[i].URL),
				zap.Error(err),
			)
			continue
		}
		if inserted {
			stored++
		}
	}

	logger.Info("Articles stored",
		zap.Int("batch", len(articles)),
		zap.Int("inserted", stored),
	)

	return stored, nil
}

// Filter narrows article reads. Zero values mean "no constraint".
type Filter struct {
	MinScore      int
	Category      models.Category
	SourceQuality models.SourceQuality
	Freshness     models.Freshness
	Priority      models.Priority
	Sector        string
	Paywalled     *bool
	Limit         int
}

// QueryArticles serves filtered reads with the deterministic ordering:
// relevance score descending, then recency descending.
func (c *Client) QueryArticles(ctx context.Context, f Filter) ([]models.Article, error) {
	builder := sq.Select(
		"id", "title", "url", "content", "domain", "published_at",
		"search_query", "search_category", "query_category",
		"source_quality", "content_freshness", "is_paywalled",
		"relevance_score", "priority", "strategic_summary", "key_insights",
		"sectors", "vc_firm", "sentiment", "key_topics", "scored_by",
		"user_rating", "created_at",
	).From("articles")

	if f.MinScore > 0 {
		builder = builder.Where(sq.GtOrEq{"relevance_score": f.MinScore})
	}
	if f.Category != "" {
		builder = builder.Where(sq.Eq{"search_category": string(f.Category)})
	}
	if f.SourceQuality != "" {
		builder = builder.Where(sq.Eq{"source_quality": string(f.SourceQuality)})
	}
	if f.Freshness != "" {
		builder = builder.Where(sq.Eq{"content_freshness": string(f.Freshness)})
	}
	if f.Priority != "" {
		builder = builder.Where(sq.Eq{"priority": string(f.Priority)})
	}
	if f.Sector != "" {
		builder = builder.Where(sq.Like{"sectors": "%" + f.Sector + "%"})
	}
	if f.Paywalled != nil {
		builder = builder.Where(sq.Eq{"is_paywalled": boolToInt(*f.Paywalled)})
	}

	builder = builder.OrderBy("relevance_score DESC", "published_at DESC")

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	builder = builder.Limit(uint64(limit))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		articles = append(articles, *article)
	}

	return articles, rows.Err()
}

func (c *Client) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	query := `
		SELECT id, title, url, content, domain, published_at,
			search_query, search_category, query_category,
			source_quality, content_freshness, is_paywalled,
			relevance_score, priority, strategic_summary, key_insights,
			sectors, vc_firm, sentiment, key_topics, scored_by,
			user_rating, created_at
		FROM articles WHERE id = ?
	`

	row := c.db.QueryRowContext(ctx, query, id)
	article, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return article, nil
}

// RecordFeedback stores a 1-5 rating against an article and updates the
// article's user_rating. Scoring fields are never touched.
func (c *Client) RecordFeedback(ctx context.Context, articleID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO feedback (article_id, rating, comment, created_at) VALUES (?, ?, ?, ?)`,
		articleID, rating, comment, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE articles SET user_rating = ? WHERE id = ?`,
		rating, articleID,
	)
	if err != nil {
		return fmt.Errorf("failed to update article rating: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("article %s not found", articleID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feedback: %w", err)
	}

	logger.Info("Feedback recorded",
		zap.String("article_id", articleID),
		zap.Int("rating", rating),
	)

	return nil
}

func (c *Client) RecordRun(run *models.RunRecord) error {
	_, err := c.db.Exec(`
		INSERT INTO run_metrics (
			id, started_at, duration_ms, raw_count, unique_count,
			stored_count, high_priority, queries_issued, queries_failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.Unix(), run.DurationMS, run.RawCount,
		run.UniqueCount, run.StoredCount, run.HighPriority,
		run.QueriesIssued, run.QueriesFailed,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var a models.Article
	var publishedAt sql.NullInt64
	var paywalled int
	var sectorsJSON, topicsJSON string
	var createdAt int64

	err := row.Scan(
		&a.ID, &a.Title, &a.URL, &a.Content, &a.Domain, &publishedAt,
		&a.SearchQuery, &a.SearchCategory, &a.QueryCategory,
		&a.SourceQuality, &a.ContentFreshness, &paywalled,
		&a.RelevanceScore, &a.Priority, &a.StrategicSummary, &a.KeyInsights,
		&sectorsJSON, &a.VCFirm, &a.Sentiment, &topicsJSON, &a.ScoredBy,
		&a.UserRating, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		t := time.Unix(publishedAt.Int64, 0)
		a.PublishedAt = &t
	}
	a.IsPaywalled = paywalled != 0
	a.CreatedAt = time.Unix(createdAt, 0)

	json.Unmarshal([]byte(sectorsJSON), &a.Sectors)
	json.Unmarshal([]byte(topicsJSON), &a.KeyTopics)

	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
