package pipeline

import (
	"strings"
	"testing"

	"github.com/vc-intel/backend/internal/analyzer"
	"github.com/vc-intel/backend/internal/storage/models"
)

func TestGenerateQueries(t *testing.T) {
	t.Parallel()

	rules := analyzer.DefaultRuleset()
	queries := GenerateQueries(rules, 2026)

	// 3 per tier-1 VC, 3 per sector, 4 thought leadership, 3 global.
	want := 3*len(rules.TierOneVCs) + 3*len(rules.Sectors) + 4 + 3
	if len(queries) != want {
		t.Fatalf("got %d queries, want %d", len(queries), want)
	}

	counts := map[models.QueryCategory]int{}
	for _, q := range queries {
		if q.Text == "" {
			t.Error("empty query text")
		}
		counts[q.Category]++
	}

	if counts[models.QueryVCThesis] != 3*len(rules.TierOneVCs) {
		t.Errorf("vc_thesis count = %d, want %d", counts[models.QueryVCThesis], 3*len(rules.TierOneVCs))
	}
	if counts[models.QuerySectorAnalysis] != 3*len(rules.Sectors) {
		t.Errorf("sector_analysis count = %d, want %d", counts[models.QuerySectorAnalysis], 3*len(rules.Sectors))
	}

	if !strings.Contains(queries[0].Text, "2026") {
		t.Errorf("first thesis query %q missing year", queries[0].Text)
	}
}
