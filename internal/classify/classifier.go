// Package classify runs the three batched oracle passes: relevance scoring,
// summarization, and sentiment. The oracle is treated as unreliable; every
// pass has a deterministic fallback and no batch failure is fatal.
package classify

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"ResearchDigest/internal/domain"
	"ResearchDigest/internal/ports"
)

const (
	// Batches keep oracle calls efficient without risking truncated
	// responses on unbounded prompts.
	defaultBatchSize = 5

	// Items need relevant=true AND score >= threshold; a relevant flag at
	// a lower score still excludes.
	relevanceThreshold = 7

	// Digest size cap per group per run, applied after sorting.
	defaultMaxItems = 12

	fallbackBulletChars = 200
)

// Classifier drives the completion oracle over item batches.
type Classifier struct {
	client    ports.CompletionClient
	logger    *slog.Logger
	batchSize int
	maxItems  int
	delay     time.Duration
}

// NewClassifier wires the oracle client. The delay is the mandatory pause
// between batches (rate-limit compliance); it elapses on failed batches too.
func NewClassifier(client ports.CompletionClient, delay time.Duration, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client:    client,
		logger:    logger,
		batchSize: defaultBatchSize,
		maxItems:  defaultMaxItems,
		delay:     delay,
	}
}

// ScoreRelevance filters items against the group's topics. It returns one
// review per admitted item, sorted by score descending (stable on ties) and
// capped at the digest maximum. A batch whose response errors or does not
// parse admits zero items from that batch.
func (c *Classifier) ScoreRelevance(ctx context.Context, items []*domain.Item, topics []string) []domain.ItemReview {
	if len(items) == 0 {
		return nil
	}

	var relevant []domain.ItemReview
	for start := 0; start < len(items); start += c.batchSize {
		batch := items[start:min(start+c.batchSize, len(items))]

		raw, err := c.client.Complete(ctx, relevancePrompt(batch, topics), 0, 300)
		if err != nil {
			c.logger.Warn("relevance batch failed", "batch", start/c.batchSize+1, "error", err)
			c.pause()
			continue
		}

		verdicts, err := parseVerdicts(raw)
		if err != nil {
			c.logger.Warn("relevance batch unparseable", "batch", start/c.batchSize+1, "error", err)
			c.pause()
			continue
		}

		for _, v := range verdicts {
			idx := v.ID - 1
			if idx < 0 || idx >= len(batch) {
				continue
			}
			if v.Relevant && v.Score >= relevanceThreshold {
				relevant = append(relevant, domain.ItemReview{Item: batch[idx], Score: int(v.Score)})
			}
		}

		c.pause()
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Score > relevant[j].Score
	})
	if len(relevant) > c.maxItems {
		relevant = relevant[:c.maxItems]
	}
	return relevant
}

// Summarize annotates every review with bullet points framed against the
// group's topics. A position missing from the parsed output, or a failed
// batch, falls back to a single synthetic bullet from the item's excerpt;
// no review is ever left without bullets.
func (c *Classifier) Summarize(ctx context.Context, reviews []domain.ItemReview, topics []string) {
	for start := 0; start < len(reviews); start += c.batchSize {
		batch := reviews[start:min(start+c.batchSize, len(reviews))]

		raw, err := c.client.Complete(ctx, summaryPrompt(batch, topics), 0.3, 1500)
		if err != nil {
			c.logger.Warn("summary batch failed", "batch", start/c.batchSize+1, "error", err)
			for j := range batch {
				batch[j].Bullets = fallbackBullets(batch[j].Item)
			}
			c.pause()
			continue
		}

		sections := splitSections(raw)
		for j := range batch {
			bullets := parseBullets(sections[j+1])
			if len(bullets) == 0 {
				bullets = fallbackBullets(batch[j].Item)
			}
			batch[j].Bullets = bullets
		}

		c.pause()
	}
}

// ClassifySentiment labels every review as Positive, Negative, or Neutral,
// preferring the summary text over the raw excerpt. Malformed output and
// missing positions normalize to Neutral; a failed batch defaults to
// Neutral without overwriting a label set by a prior attempt.
func (c *Classifier) ClassifySentiment(ctx context.Context, reviews []domain.ItemReview) {
	for start := 0; start < len(reviews); start += c.batchSize {
		batch := reviews[start:min(start+c.batchSize, len(reviews))]

		raw, err := c.client.Complete(ctx, sentimentPrompt(batch), 0, 300)
		if err == nil {
			verdicts, perr := parseSentiments(raw)
			if perr == nil {
				labels := make(map[int]domain.Sentiment, len(verdicts))
				for _, v := range verdicts {
					labels[v.ID] = domain.NormalizeSentiment(v.Sentiment)
				}
				for j := range batch {
					label, ok := labels[j+1]
					if !ok {
						label = domain.SentimentNeutral
					}
					batch[j].Sentiment = label
				}
				c.pause()
				continue
			}
			err = perr
		}

		c.logger.Warn("sentiment batch failed", "batch", start/c.batchSize+1, "error", err)
		for j := range batch {
			if batch[j].Sentiment == "" {
				batch[j].Sentiment = domain.SentimentNeutral
			}
		}
		c.pause()
	}
}

func fallbackBullets(item *domain.Item) []string {
	return []string{domain.Truncate(item.Excerpt, fallbackBulletChars)}
}

// pause is the inter-batch rate-limit delay; part of the oracle contract,
// not skippable on failure.
func (c *Classifier) pause() {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
}
