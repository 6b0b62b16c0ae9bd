package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ResearchDigest/internal/domain"
)

type fakeScraper struct {
	text  string
	err   error
	calls int
}

func (f *fakeScraper) Extract(_ context.Context, _ string, _ time.Duration) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestEnrichReplacesExcerptTruncated(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{text: strings.Repeat("body ", 1000)}
	e := NewEnricher(scraper, 300, time.Second, nil)

	item := &domain.Item{URL: "https://example.com/a", Excerpt: "short"}
	e.Enrich(context.Background(), item)

	if !item.Enriched {
		t.Fatal("item not marked enriched")
	}
	if len(item.Excerpt) != 300 {
		t.Fatalf("expected excerpt capped at 300, got %d", len(item.Excerpt))
	}
}

func TestEnrichKeepsExcerptOnFailure(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{err: errors.New("timeout")}
	e := NewEnricher(scraper, 300, time.Second, nil)

	item := &domain.Item{URL: "https://example.com/a", Excerpt: "original"}
	e.Enrich(context.Background(), item)

	if item.Excerpt != "original" {
		t.Fatalf("excerpt changed on failure: %q", item.Excerpt)
	}
	if !item.Enriched {
		t.Fatal("failed attempt should still be recorded")
	}
}

func TestEnrichKeepsExcerptOnTrivialExtraction(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{text: "   "}
	e := NewEnricher(scraper, 300, time.Second, nil)

	item := &domain.Item{URL: "https://example.com/a", Excerpt: "original"}
	e.Enrich(context.Background(), item)

	if item.Excerpt != "original" {
		t.Fatalf("trivial extraction must not replace the excerpt, got %q", item.Excerpt)
	}
	if !item.Enriched {
		t.Fatal("attempt should still be recorded")
	}
}

func TestEnrichIsMemoizedPerItem(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{text: strings.Repeat("body ", 100)}
	e := NewEnricher(scraper, 300, time.Second, nil)

	item := &domain.Item{URL: "https://example.com/a", Excerpt: "short"}
	e.Enrich(context.Background(), item)
	e.Enrich(context.Background(), item)

	if scraper.calls != 1 {
		t.Fatalf("expected 1 scrape for 2 enrich calls, got %d", scraper.calls)
	}
}
