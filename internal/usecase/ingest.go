package usecase

import (
	"context"
	"log/slog"
	"time"

	"ResearchDigest/internal/domain"
	"ResearchDigest/internal/ports"
)

// Excerpt hard cap applied at ingestion regardless of source.
const maxExcerptChars = 500

const placeholderTitle = "No title"

// Ingestor merges raw entries from the configured feeds into a canonical,
// time-filtered, deduplicated item list.
type Ingestor struct {
	reader ports.FeedReader
	logger *slog.Logger
	now    func() time.Time
}

// NewIngestor wires a feed reader.
func NewIngestor(reader ports.FeedReader, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{reader: reader, logger: logger, now: time.Now}
}

// Fetch collects entries from every source. A failing source logs a warning
// and contributes zero items; one bad feed never aborts the run. Entries
// are kept when published within the lookback window or when the publish
// date is unknown (favor false positives over silent loss). The result is
// deduplicated by URL, first occurrence winning.
func (ing *Ingestor) Fetch(ctx context.Context, sources []string, lookbackHours int) []*domain.Item {
	cutoff := ing.now().Add(-time.Duration(lookbackHours) * time.Hour)

	var items []*domain.Item
	seen := map[string]struct{}{}

	for _, source := range sources {
		entries, err := ing.reader.Read(ctx, source)
		if err != nil {
			ing.logger.Warn("could not fetch feed", "feed", source, "error", err)
			continue
		}

		kept := 0
		for _, entry := range entries {
			if entry.PublishedAt != nil && entry.PublishedAt.Before(cutoff) {
				continue
			}

			item := toItem(entry)
			if _, dup := seen[item.URL]; dup {
				continue
			}
			seen[item.URL] = struct{}{}
			items = append(items, item)
			kept++
		}

		ing.logger.Debug("feed processed", "feed", source, "entries", len(entries), "kept", kept)
	}

	return items
}

func toItem(entry domain.RawEntry) *domain.Item {
	title := entry.Title
	if title == "" {
		title = placeholderTitle
	}

	published := domain.UnknownPublished
	if entry.PublishedAt != nil {
		published = entry.PublishedAt.Format("2006-01-02")
	}

	return &domain.Item{
		URL:       entry.Link,
		Title:     title,
		Excerpt:   domain.Truncate(entry.Summary, maxExcerptChars),
		Published: published,
		Source:    entry.Source,
	}
}
