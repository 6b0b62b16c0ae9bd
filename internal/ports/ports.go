package ports

import (
	"context"
	"time"

	"ResearchDigest/internal/domain"
)

// FeedReader pulls raw entries from a single feed URL. Retrieval failures
// are returned, caught at the call site, and count as zero entries.
type FeedReader interface {
	Read(ctx context.Context, feedURL string) ([]domain.RawEntry, error)
}

// SeenStore is the persistent record of already-delivered item URLs.
// Storage errors are fatal to the run; there is no fallback, since losing
// dedup state would mean repeat notifications.
type SeenStore interface {
	Init(ctx context.Context) error
	Contains(ctx context.Context, url string) (bool, error)
	Add(ctx context.Context, urls []string) error
	PurgeOlderThan(ctx context.Context, days int) error
}

// CompletionClient is the text-completion oracle behind all three
// classification passes. Callers never assume the response is well-formed.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// Scraper extracts plain body text from an article URL.
type Scraper interface {
	Extract(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// Mailer delivers a rendered digest to a list of recipient addresses.
type Mailer interface {
	Send(ctx context.Context, subject, htmlBody string, recipients []string) error
}

// Scheduler controls when digest runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
