package domain

import "time"

// Sentiment labels a summarized item's overall tone.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// NormalizeSentiment maps arbitrary oracle output onto the three allowed
// labels; anything unrecognized becomes Neutral.
func NormalizeSentiment(raw string) Sentiment {
	switch Sentiment(raw) {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return Sentiment(raw)
	}
	return SentimentNeutral
}

// UnknownPublished marks entries whose publish date could not be determined.
const UnknownPublished = "Unknown"

// Item is a core entity describing one deduplicated feed entry. URL is the
// identity: two items with the same URL are the same item everywhere,
// including the seen cache.
type Item struct {
	URL       string
	Title     string
	Excerpt   string
	Published string // YYYY-MM-DD or UnknownPublished
	Source    string
	Enriched  bool // full-text enrichment attempted this run
}

// RawEntry is what a feed reader hands to the ingestor before filtering,
// truncation, and dedup.
type RawEntry struct {
	Title       string
	Link        string
	Summary     string
	Source      string
	PublishedAt *time.Time // nil when the feed carries no usable date
}

// ItemReview captures per-group classification output for one item. Scores,
// bullets, and sentiment are topic-dependent, so they live here rather than
// on the shared Item.
type ItemReview struct {
	Item      *Item
	Score     int // 1-10, set by the relevance pass
	Bullets   []string
	Sentiment Sentiment
}

// Truncate returns s cut to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// RecipientGroup is a named audience with its own topic set. A group whose
// recipient list resolves empty is skipped, not an error.
type RecipientGroup struct {
	Name       string
	Recipients []string
	Topics     []string
}
