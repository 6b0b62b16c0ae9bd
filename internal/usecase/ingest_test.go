package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ResearchDigest/internal/domain"
)

type fakeReader struct {
	entries map[string][]domain.RawEntry
	errs    map[string]error
}

func (f *fakeReader) Read(_ context.Context, feedURL string) ([]domain.RawEntry, error) {
	if err := f.errs[feedURL]; err != nil {
		return nil, err
	}
	return f.entries[feedURL], nil
}

func timePtr(t time.Time) *time.Time { return &t }

func TestFetchDeduplicatesByURL(t *testing.T) {
	t.Parallel()

	now := time.Now()
	reader := &fakeReader{entries: map[string][]domain.RawEntry{
		"https://a.example/rss": {{
			Title: "From A", Link: "https://example.com/story", Summary: "rich summary",
			Source: "Feed A", PublishedAt: timePtr(now.Add(-time.Hour)),
		}},
		"https://b.example/rss": {{
			Title: "From B", Link: "https://example.com/story", Summary: "other summary",
			Source: "Feed B", PublishedAt: timePtr(now.Add(-2 * time.Hour)),
		}},
	}}

	ing := NewIngestor(reader, nil)
	items := ing.Fetch(context.Background(), []string{"https://a.example/rss", "https://b.example/rss"}, 24)

	if len(items) != 1 {
		t.Fatalf("expected 1 deduplicated item, got %d", len(items))
	}
	if items[0].Title != "From A" {
		t.Fatalf("expected first occurrence kept, got %q", items[0].Title)
	}
}

func TestFetchExcludesOldEntries(t *testing.T) {
	t.Parallel()

	now := time.Now()
	reader := &fakeReader{entries: map[string][]domain.RawEntry{
		"feed": {
			{Title: "Recent", Link: "https://example.com/new", PublishedAt: timePtr(now.Add(-2 * time.Hour))},
			{Title: "Old", Link: "https://example.com/old", PublishedAt: timePtr(now.Add(-48 * time.Hour))},
		},
	}}

	ing := NewIngestor(reader, nil)
	items := ing.Fetch(context.Background(), []string{"feed"}, 24)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Recent" {
		t.Fatalf("expected the recent entry, got %q", items[0].Title)
	}
}

func TestFetchIncludesUndatedEntries(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{entries: map[string][]domain.RawEntry{
		"feed": {{Title: "Undated", Link: "https://example.com/u", Summary: "no date"}},
	}}

	ing := NewIngestor(reader, nil)
	items := ing.Fetch(context.Background(), []string{"feed"}, 24)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Published != domain.UnknownPublished {
		t.Fatalf("expected %q published marker, got %q", domain.UnknownPublished, items[0].Published)
	}
}

func TestFetchTruncatesExcerpt(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{entries: map[string][]domain.RawEntry{
		"feed": {{Title: "Long", Link: "https://example.com/l", Summary: strings.Repeat("x", 1000)}},
	}}

	ing := NewIngestor(reader, nil)
	items := ing.Fetch(context.Background(), []string{"feed"}, 24)

	if got := len(items[0].Excerpt); got > 500 {
		t.Fatalf("excerpt not capped: %d chars", got)
	}
}

func TestFetchDefaultsMissingTitle(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{entries: map[string][]domain.RawEntry{
		"feed": {{Link: "https://example.com/nt", Summary: "s"}},
	}}

	ing := NewIngestor(reader, nil)
	items := ing.Fetch(context.Background(), []string{"feed"}, 24)

	if items[0].Title != "No title" {
		t.Fatalf("expected placeholder title, got %q", items[0].Title)
	}
}

func TestFetchIsolatesFailingSource(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{
		entries: map[string][]domain.RawEntry{
			"good": {{Title: "Works", Link: "https://example.com/ok"}},
		},
		errs: map[string]error{"bad": errors.New("network error")},
	}

	ing := NewIngestor(reader, nil)
	items := ing.Fetch(context.Background(), []string{"bad", "good"}, 24)

	if len(items) != 1 {
		t.Fatalf("expected the healthy feed's item, got %d items", len(items))
	}
}
