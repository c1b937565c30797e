package analyzer

import "github.com/vc-intel/backend/internal/storage/models"

// Ruleset holds every static table the pipeline scores against: domain
// tiers, keyword buckets, sector maps, firm aliases and the modifier
// weights. It is built once at startup and passed by reference into the
// classifier, scorer and tagger, so tests can inject alternates.
type Ruleset struct {
	PremiumDomains           []string
	HighQualityDomains       []string
	ThoughtLeadershipDomains []string

	PaywallPhrases []string

	// Buckets are evaluated in declaration order; ties on bucket score
	// resolve to the earlier bucket.
	Buckets []KeywordBucket

	// TierOneVCs seeds the thesis query templates.
	TierOneVCs []string

	Sectors   []SectorRule
	VCAliases []VCAlias

	PositiveWords []string
	NegativeWords []string
	Topics        []TopicRule

	Modifiers Modifiers
}

type KeywordBucket struct {
	Category models.Category
	Keywords []WeightedKeyword
}

type WeightedKeyword struct {
	Term   string
	Weight int
}

type SectorRule struct {
	Name     string
	Keywords []string
}

// VCAlias maps a mention substring to a canonical firm name. Aliases
// are checked in order; the first match wins.
type VCAlias struct {
	Alias string
	Firm  string
}

type TopicRule struct {
	Name     string
	Keywords []string
}

type Modifiers struct {
	PremiumSource     int
	ThoughtLeadership int
	FreshContent      int
	StaleContent      int
	Paywalled         int
	ThesisQueryBonus  int
}

func DefaultRuleset() *Ruleset {
	return &Ruleset{
		PremiumDomains: []string{
			"blume.vc", "accel.com", "peakxv.com", "sequoiacap.com",
			"matrixpartners.in", "elevationcapital.com",
			"lightspeedindiapartners.com", "a16z.com", "firstround.com",
			"bvp.com", "nfx.com",
		},
		HighQualityDomains: []string{
			"techcrunch.com", "inc42.com", "entrackr.com", "yourstory.com",
			"economictimes.indiatimes.com", "business-standard.com",
			"livemint.com", "moneycontrol.com", "bloomberg.com",
			"forbes.com", "mckinsey.com", "bain.com", "bcg.com",
		},
		ThoughtLeadershipDomains: []string{
			"medium.com", "substack.com", "linkedin.com", "mirror.xyz",
		},

		PaywallPhrases: []string{
			"subscribe", "premium", "register to read", "free trial",
			"sign in to continue", "members only",
		},

		Buckets: []KeywordBucket{
			{
				Category: models.CategoryInvestmentThesis,
				Keywords: []WeightedKeyword{
					{Term: "thesis", Weight: 15},
					{Term: "investment philosophy", Weight: 12},
					{Term: "portfolio strategy", Weight: 12},
					{Term: "investment criteria", Weight: 10},
					{Term: "fund strategy", Weight: 10},
					{Term: "capital deployment", Weight: 8},
				},
			},
			{
				Category: models.CategoryScalingStrategy,
				Keywords: []WeightedKeyword{
					{Term: "scaling", Weight: 12},
					{Term: "growth strategy", Weight: 10},
					{Term: "go-to-market", Weight: 10},
					{Term: "product-market fit", Weight: 10},
					{Term: "strategy", Weight: 10},
					{Term: "expansion", Weight: 8},
					{Term: "growth", Weight: 8},
				},
			},
			{
				Category: models.CategoryMarketAnalysis,
				Keywords: []WeightedKeyword{
					{Term: "market analysis", Weight: 12},
					{Term: "market opportunity", Weight: 10},
					{Term: "funding trends", Weight: 10},
					{Term: "sector outlook", Weight: 10},
					{Term: "valuation", Weight: 8},
				},
			},
			{
				Category: models.CategoryThoughtLeadership,
				Keywords: []WeightedKeyword{
					{Term: "framework", Weight: 12},
					{Term: "predictions", Weight: 10},
					{Term: "outlook", Weight: 8},
					{Term: "perspective", Weight: 8},
					{Term: "insights", Weight: 8},
				},
			},
			{
				Category: models.CategoryOperationalExcellence,
				Keywords: []WeightedKeyword{
					{Term: "unit economics", Weight: 12},
					{Term: "profitability", Weight: 10},
					{Term: "operational efficiency", Weight: 10},
					{Term: "cost discipline", Weight: 8},
				},
			},
			{
				Category: models.CategoryContrarianInsights,
				Keywords: []WeightedKeyword{
					{Term: "contrarian", Weight: 15},
					{Term: "against consensus", Weight: 10},
					{Term: "unpopular opinion", Weight: 10},
					{Term: "myth", Weight: 8},
				},
			},
			{
				Category: models.CategoryGeneral,
				Keywords: []WeightedKeyword{
					{Term: "venture capital", Weight: 5},
					{Term: "funding", Weight: 4},
					{Term: "startup", Weight: 3},
					{Term: "founder", Weight: 3},
				},
			},
		},

		TierOneVCs: []string{
			"Peak XV Partners", "Accel India", "Matrix Partners India",
			"Elevation Capital", "Lightspeed India", "Blume Ventures",
		},

		Sectors: []SectorRule{
			{Name: "Consumer", Keywords: []string{"consumer", "retail", "marketplace", "e-commerce"}},
			{Name: "D2C", Keywords: []string{"d2c", "direct-to-consumer", "digital native brands"}},
			{Name: "SaaS", Keywords: []string{"saas", "software-as-a-service", "enterprise software", "b2b software"}},
			{Name: "Fintech", Keywords: []string{"fintech", "financial technology", "payments", "neobank", "digital banking"}},
			{Name: "AI SaaS", Keywords: []string{"ai saas", "artificial intelligence software", "ai platform", "ml platform"}},
			{Name: "Agentic AI", Keywords: []string{"agentic ai", "ai agents", "autonomous ai", "ai automation", "intelligent agents"}},
		},

		VCAliases: []VCAlias{
			{Alias: "peak xv", Firm: "Peak XV Partners"},
			{Alias: "sequoia", Firm: "Peak XV Partners"},
			{Alias: "accel", Firm: "Accel India"},
			{Alias: "matrix", Firm: "Matrix Partners India"},
			{Alias: "elevation", Firm: "Elevation Capital"},
			{Alias: "lightspeed", Firm: "Lightspeed India"},
			{Alias: "blume", Firm: "Blume Ventures"},
			{Alias: "kalaari", Firm: "Kalaari Capital"},
			{Alias: "nexus", Firm: "Nexus Venture Partners"},
		},

		PositiveWords: []string{"growth", "opportunity", "bullish", "optimistic", "positive", "strong", "robust"},
		NegativeWords: []string{"decline", "bearish", "pessimistic", "weak", "challenging", "difficult", "winter"},

		Topics: []TopicRule{
			{Name: "AI Revolution", Keywords: []string{"artificial intelligence", "machine learning", "generative ai", "ai agents"}},
			{Name: "Funding Environment", Keywords: []string{"funding winter", "valuation", "ipo", "public markets"}},
			{Name: "Regulatory Changes", Keywords: []string{"regulation", "policy", "rbi", "sebi", "compliance"}},
			{Name: "Market Expansion", Keywords: []string{"global expansion", "international", "us market", "cross border"}},
			{Name: "Technology Trends", Keywords: []string{"blockchain", "web3", "cloud", "automation"}},
			{Name: "Consumer Behavior", Keywords: []string{"consumer behavior", "digital adoption", "tier 2", "rural"}},
		},

		Modifiers: Modifiers{
			PremiumSource:     15,
			ThoughtLeadership: 8,
			FreshContent:      10,
			StaleContent:      -20,
			Paywalled:         -10,
			ThesisQueryBonus:  10,
		},
	}
}
