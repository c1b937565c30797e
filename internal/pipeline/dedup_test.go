package pipeline

import (
	"fmt"
	"testing"

	"github.com/vc-intel/backend/internal/storage/models"
)

func TestDeduplicateExactURL(t *testing.T) {
	t.Parallel()

	d := NewDeduplicator()
	drafts := []models.ArticleDraft{
		{URL: "https://a.com/1", Title: "Peak XV raises new fund"},
		{URL: "https://a.com/1", Title: "Completely different headline here"},
		{URL: "https://a.com/2", Title: "Blume publishes annual letter"},
	}

	unique := d.Deduplicate(drafts)
	if len(unique) != 2 {
		t.Fatalf("got %d drafts, want 2", len(unique))
	}
	if unique[0].Title != "Peak XV raises new fund" {
		t.Errorf("first-seen draft not preserved, got %q", unique[0].Title)
	}
}

func TestDeduplicateNearDuplicateTitles(t *testing.T) {
	t.Parallel()

	d := NewDeduplicator()
	drafts := []models.ArticleDraft{
		{URL: "https://a.com/1", Title: "alpha beta gamma delta epsilon zeta eta theta iota kappa"},
		{URL: "https://b.com/1", Title: "alpha beta gamma delta epsilon zeta eta theta iota lambda"},
		{URL: "https://c.com/1", Title: "entirely unrelated story about semiconductors"},
	}

	unique := d.Deduplicate(drafts)
	if len(unique) != 2 {
		t.Fatalf("got %d drafts, want 2 (9-of-11 token overlap is a duplicate)", len(unique))
	}
	if unique[0].URL != "https://a.com/1" || unique[1].URL != "https://c.com/1" {
		t.Errorf("wrong survivors: %q, %q", unique[0].URL, unique[1].URL)
	}
}

func TestDeduplicateMinorTitleVariant(t *testing.T) {
	t.Parallel()

	d := NewDeduplicator()
	// One inserted word: 5 shared tokens of 6, Jaccard 0.833.
	drafts := []models.ArticleDraft{
		{URL: "https://a.com/1", Title: "Sequoia publishes 2024 India thesis"},
		{URL: "https://b.com/1", Title: "Sequoia publishes its 2024 India thesis"},
	}

	unique := d.Deduplicate(drafts)
	if len(unique) != 1 {
		t.Fatalf("got %d drafts, want 1", len(unique))
	}
	if unique[0].URL != "https://a.com/1" {
		t.Errorf("survivor = %q, want first-seen", unique[0].URL)
	}
}

func TestDeduplicateBatchInvariants(t *testing.T) {
	t.Parallel()

	d := NewDeduplicator()

	var drafts []models.ArticleDraft
	for i := 0; i < 10; i++ {
		title := []string{
			"blume annual letter on consumer startups",
			"accel publishes new saas playbook edition",
			"peak xv thesis for agentic commerce",
			"fintech funding recovers across private markets",
			"operational excellence lessons from profitable startups",
		}[i%5]
		drafts = append(drafts, models.ArticleDraft{
			URL:   fmt.Sprintf("https://site-%d.com/p", i),
			Title: title,
		})
	}

	unique := d.Deduplicate(drafts)
	if len(unique) != 5 {
		t.Fatalf("got %d survivors, want 5", len(unique))
	}

	// Survivors must be pairwise distinct: no duplicate URLs, no title
	// pair over the similarity cutoff.
	urls := map[string]bool{}
	for _, u := range unique {
		if urls[u.URL] {
			t.Fatalf("duplicate URL survived: %s", u.URL)
		}
		urls[u.URL] = true
	}
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			sim := Jaccard(tokenSet(unique[i].Title), tokenSet(unique[j].Title))
			if sim > 0.8 {
				t.Errorf("titles %q and %q survived with similarity %v", unique[i].Title, unique[j].Title, sim)
			}
		}
	}
}

func TestDeduplicateKeepsBelowThreshold(t *testing.T) {
	t.Parallel()

	d := NewDeduplicator()
	// 3 shared tokens of 7: Jaccard 0.43, well under the cutoff.
	drafts := []models.ArticleDraft{
		{URL: "https://a.com/1", Title: "india fintech funding hits record"},
		{URL: "https://b.com/1", Title: "india fintech funding slows sharply"},
	}

	unique := d.Deduplicate(drafts)
	if len(unique) != 2 {
		t.Fatalf("got %d drafts, want 2", len(unique))
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	t.Parallel()

	d := NewDeduplicator()
	drafts := []models.ArticleDraft{
		{URL: "https://a.com/1", Title: "one story"},
		{URL: "https://b.com/1", Title: "another story entirely different words"},
	}

	once := d.Deduplicate(drafts)
	twice := d.Deduplicate(once)
	if len(twice) != len(once) {
		t.Errorf("second pass changed length: %d -> %d", len(once), len(twice))
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	a := tokenSet("alpha beta gamma")
	b := tokenSet("beta gamma delta")
	empty := tokenSet("")

	if got := Jaccard(a, a); got != 1.0 {
		t.Errorf("Jaccard(a, a) = %v, want 1.0", got)
	}
	if got, want := Jaccard(a, b), 2.0/4.0; got != want {
		t.Errorf("Jaccard(a, b) = %v, want %v", got, want)
	}
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Error("Jaccard is not symmetric")
	}
	if got := Jaccard(a, empty); got != 0 {
		t.Errorf("Jaccard(a, empty) = %v, want 0", got)
	}
	if got := Jaccard(empty, empty); got != 0 {
		t.Errorf("Jaccard(empty, empty) = %v, want 0", got)
	}
}
