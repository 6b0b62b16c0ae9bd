package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"ResearchDigest/internal/domain"
	"ResearchDigest/internal/ports"
)

// Reader pulls RSS/Atom entries through gofeed. One Reader serves every
// configured feed URL; the ingestor handles per-source failure isolation.
type Reader struct {
	parser *gofeed.Parser
}

var _ ports.FeedReader = (*Reader)(nil)

// NewReader wires an HTTP client; a nil client gets a 20s timeout default.
func NewReader(client *http.Client) *Reader {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "ResearchDigest/1.0"

	return &Reader{parser: parser}
}

// Read fetches and parses one feed, mapping entries to raw domain form.
// The source name is the feed's own title, falling back to the URL.
func (r *Reader) Read(ctx context.Context, feedURL string) ([]domain.RawEntry, error) {
	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	source := parsed.Title
	if source == "" {
		source = feedURL
	}

	entries := make([]domain.RawEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		entries = append(entries, domain.RawEntry{
			Title:       item.Title,
			Link:        item.Link,
			Summary:     summary,
			Source:      source,
			PublishedAt: item.PublishedParsed,
		})
	}

	return entries, nil
}
