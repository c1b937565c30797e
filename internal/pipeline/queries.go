package pipeline

import (
	"fmt"

	"github.com/vc-intel/backend/internal/analyzer"
	"github.com/vc-intel/backend/internal/storage/models"
)

// SearchQuery is one generated query plus the template family it came
// from; the family feeds the scorer's thesis-query bonus.
type SearchQuery struct {
	Text     string
	Category models.QueryCategory
}

// GenerateQueries expands the query templates over the tier-1 VC list
// and priority sectors. The year widens searches toward current
// content.
func GenerateQueries(rules *analyzer.Ruleset, year int) []SearchQuery {
	var queries []SearchQuery

	for _, vc := range rules.TierOneVCs {
		queries = append(queries,
			SearchQuery{fmt.Sprintf("%s investment thesis India %d", vc, year), models.QueryVCThesis},
			SearchQuery{fmt.Sprintf("%s portfolio strategy India market", vc), models.QueryVCThesis},
			SearchQuery{fmt.Sprintf("%s India fund investment focus areas", vc), models.QueryVCThesis},
		)
	}

	for _, sector := range rules.Sectors {
		queries = append(queries,
			SearchQuery{fmt.Sprintf("India %s startup funding trends %d", sector.Name, year), models.QuerySectorAnalysis},
			SearchQuery{fmt.Sprintf("%s venture capital investment India thesis", sector.Name), models.QuerySectorAnalysis},
			SearchQuery{fmt.Sprintf("Indian %s market analysis investment opportunities", sector.Name), models.QuerySectorAnalysis},
		)
	}

	queries = append(queries,
		SearchQuery{fmt.Sprintf("India startup ecosystem investment outlook %d", year+1), models.QueryThoughtLeadership},
		SearchQuery{"Indian venture capital market trends analysis", models.QueryThoughtLeadership},
		SearchQuery{"India unicorn valuation funding landscape", models.QueryThoughtLeadership},
		SearchQuery{"Indian startup regulatory changes impact investment", models.QueryThoughtLeadership},
	)

	queries = append(queries,
		SearchQuery{"India startup ecosystem global perspective", models.QueryGlobalIndia},
		SearchQuery{"Indian tech companies international expansion", models.QueryGlobalIndia},
		SearchQuery{"Global VCs investing India market", models.QueryGlobalIndia},
	)

	return queries
}
