package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ResearchDigest/internal/domain"
	"ResearchDigest/internal/ports"
)

// Replacing the excerpt with less text than a feed summary makes the item
// worse; extractions below this length are discarded regardless of what
// the scraper accepted.
const minEnrichedChars = 100

// Enricher replaces an item's feed excerpt with scraped full body text.
// Enrichment is attempted at most once per item per run, shared across all
// recipient groups consuming the same item.
type Enricher struct {
	scraper  ports.Scraper
	maxChars int
	timeout  time.Duration
	logger   *slog.Logger
}

// NewEnricher wires the scraper with its per-page limits.
func NewEnricher(scraper ports.Scraper, maxChars int, timeout time.Duration, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{scraper: scraper, maxChars: maxChars, timeout: timeout, logger: logger}
}

// Enrich fetches the full text for the item's URL. On any failure the
// existing excerpt stays untouched. The attempt is recorded either way, so
// later groups reusing the item skip the fetch.
func (e *Enricher) Enrich(ctx context.Context, item *domain.Item) {
	if item.Enriched {
		return
	}
	item.Enriched = true

	text, err := e.scraper.Extract(ctx, item.URL, e.timeout)
	if err != nil {
		e.logger.Debug("enrichment skipped", "url", item.URL, "error", err)
		return
	}

	text = strings.TrimSpace(text)
	if len(text) < minEnrichedChars {
		e.logger.Debug("enrichment skipped", "url", item.URL, "reason", "trivial extraction")
		return
	}

	item.Excerpt = domain.Truncate(text, e.maxChars)
}
