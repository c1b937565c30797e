package models

import "time"

type SourceQuality string

const (
	QualityPremium           SourceQuality = "premium"
	QualityHigh              SourceQuality = "high_quality"
	QualityThoughtLeadership SourceQuality = "thought_leadership"
	QualityStandard          SourceQuality = "standard"
)

type Freshness string

const (
	FreshnessFresh    Freshness = "fresh"
	FreshnessRecent   Freshness = "recent"
	FreshnessModerate Freshness = "moderate"
	FreshnessStale    Freshness = "stale"
	FreshnessUnknown  Freshness = "unknown"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Category string

const (
	CategoryInvestmentThesis      Category = "investment_thesis"
	CategoryScalingStrategy       Category = "scaling_strategy"
	CategoryMarketAnalysis        Category = "market_analysis"
	CategoryThoughtLeadership     Category = "thought_leadership"
	CategoryOperationalExcellence Category = "operational_excellence"
	CategoryContrarianInsights    Category = "contrarian_insights"
	CategoryGeneral               Category = "general"
)

// QueryCategory tags a search query with the template family that
// produced it. The scorer grants a bonus for vc_thesis queries.
type QueryCategory string

const (
	QueryVCThesis          QueryCategory = "vc_thesis"
	QuerySectorAnalysis    QueryCategory = "sector_analysis"
	QueryThoughtLeadership QueryCategory = "thought_leadership"
	QueryGlobalIndia       QueryCategory = "global_india"
	QueryRSSFeed           QueryCategory = "rss_feed"
)

// RawResult is one search or feed hit as returned by a collaborator,
// before any normalization.
type RawResult struct {
	Title         string
	Content       string
	URL           string
	Source        string
	PublishedDate string
	Query         string
	QueryCategory QueryCategory
	RawScore      float64
}

// ArticleDraft is the canonical record mid-pipeline: normalized but not
// yet classified or scored.
type ArticleDraft struct {
	ID            string
	Title         string
	Content       string
	URL           string
	Domain        string
	PublishedAt   *time.Time
	SearchQuery   string
	QueryCategory QueryCategory
}

// Article is the fully scored record written to storage. Scoring fields
// are immutable after insert; only UserRating changes later, through
// feedback.
type Article struct {
	ID               string
	Title            string
	Content          string
	URL              string
	Domain           string
	PublishedAt      *time.Time
	SearchQuery      string
	SearchCategory   Category
	QueryCategory    QueryCategory
	SourceQuality    SourceQuality
	ContentFreshness Freshness
	IsPaywalled      bool
	RelevanceScore   int
	Priority         Priority
	StrategicSummary string
	KeyInsights      string
	Sectors          []string
	VCFirm           string
	Sentiment        string
	KeyTopics        []string
	ScoredBy         string
	UserRating       int
	CreatedAt        time.Time
}

type Feedback struct {
	ID        int
	ArticleID string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// RunRecord captures per-run pipeline totals for later inspection.
type RunRecord struct {
	ID            string
	StartedAt     time.Time
	DurationMS    int
	RawCount      int
	UniqueCount   int
	StoredCount   int
	HighPriority  int
	QueriesIssued int
	QueriesFailed int
}
