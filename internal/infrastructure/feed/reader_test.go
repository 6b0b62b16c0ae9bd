package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Research Feed</title>
    <link>https://example.com</link>
    <item>
      <title>AI Fraud Detection in Banks</title>
      <link>https://example.com/fraud</link>
      <description>Banks deploy new models.</description>
      <pubDate>Sat, 22 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Undated Story</title>
      <link>https://example.com/undated</link>
      <description>No pubDate element.</description>
    </item>
  </channel>
</rss>`

func TestReadMapsEntries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	reader := NewReader(server.Client())
	entries, err := reader.Read(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Title != "AI Fraud Detection in Banks" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Link != "https://example.com/fraud" {
		t.Fatalf("unexpected link: %q", first.Link)
	}
	if first.Source != "Example Research Feed" {
		t.Fatalf("source should come from the feed title, got %q", first.Source)
	}
	if first.PublishedAt == nil {
		t.Fatal("expected a parsed publish time")
	}
	if first.PublishedAt.Format("2006-01-02") != "2026-08-22" {
		t.Fatalf("unexpected publish time: %v", first.PublishedAt)
	}

	if entries[1].PublishedAt != nil {
		t.Fatal("undated entry should carry a nil publish time")
	}
}

func TestReadFailsOnUnreachableFeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	reader := NewReader(server.Client())
	if _, err := reader.Read(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for failing feed")
	}
}
