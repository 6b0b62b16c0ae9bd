package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ResearchDigest/internal/classify"
	"ResearchDigest/internal/digest"
	"ResearchDigest/internal/domain"
	"ResearchDigest/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
// Enricher is optional; a nil value disables full-text enrichment.
type PipelineDeps struct {
	Ingestor   *Ingestor
	Seen       ports.SeenStore
	Classifier *classify.Classifier
	Enricher   *Enricher
	Mailer     ports.Mailer
	Logger     *slog.Logger

	Feeds         []string
	LookbackHours int
	RetentionDays int
	Sentiment     bool
	Groups        []domain.RecipientGroup
}

// Pipeline implements one digest run: ingest, dedup against the seen cache,
// fan out classification and delivery per recipient group, commit the fresh
// set. Groups share the expensive work (fetch, scrape, cache) and are fully
// isolated from each other's failures.
type Pipeline struct {
	ingestor   *Ingestor
	seen       ports.SeenStore
	classifier *classify.Classifier
	enricher   *Enricher
	mailer     ports.Mailer
	logger     *slog.Logger

	feeds         []string
	lookbackHours int
	retentionDays int
	sentiment     bool
	groups        []domain.RecipientGroup
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		ingestor:      deps.Ingestor,
		seen:          deps.Seen,
		classifier:    deps.Classifier,
		enricher:      deps.Enricher,
		mailer:        deps.Mailer,
		logger:        logger,
		feeds:         deps.Feeds,
		lookbackHours: deps.LookbackHours,
		retentionDays: deps.RetentionDays,
		sentiment:     deps.Sentiment,
		groups:        deps.Groups,
	}
}

// Run executes one complete digest run. Cache errors are fatal; every other
// failure is logged and recovered per source or per group.
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	if err := p.seen.Init(ctx); err != nil {
		return fmt.Errorf("init seen cache: %w", err)
	}
	if err := p.seen.PurgeOlderThan(ctx, p.retentionDays); err != nil {
		return fmt.Errorf("purge seen cache: %w", err)
	}

	p.logger.Info("fetching articles", "step", "1/4", "feeds", len(p.feeds))
	items := p.ingestor.Fetch(ctx, p.feeds, p.lookbackHours)
	p.logger.Info("articles fetched", "total", len(items))

	fresh, err := p.partitionFresh(ctx, items)
	if err != nil {
		return err
	}
	p.logger.Info("fresh articles selected", "fresh", len(fresh), "already_seen", len(items)-len(fresh))

	for _, group := range p.groups {
		p.runGroup(ctx, group, fresh, now)
	}

	// The whole fresh set is committed, not just delivered items, so items
	// irrelevant to every group are not re-evaluated next run.
	urls := make([]string, len(fresh))
	for i, item := range fresh {
		urls[i] = item.URL
	}
	if err := p.seen.Add(ctx, urls); err != nil {
		return fmt.Errorf("commit seen cache: %w", err)
	}

	p.logger.Info("run complete", "fresh_committed", len(urls))
	return nil
}

func (p *Pipeline) partitionFresh(ctx context.Context, items []*domain.Item) ([]*domain.Item, error) {
	fresh := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		known, err := p.seen.Contains(ctx, item.URL)
		if err != nil {
			return nil, fmt.Errorf("check seen cache: %w", err)
		}
		if !known {
			fresh = append(fresh, item)
		}
	}
	return fresh, nil
}

// runGroup drives one group end to end. Nothing here may fail the run:
// delivery errors are logged and the next group proceeds.
func (p *Pipeline) runGroup(ctx context.Context, group domain.RecipientGroup, fresh []*domain.Item, now time.Time) {
	logger := p.logger.With("group", group.Name)

	if len(group.Recipients) == 0 {
		logger.Warn("no recipients resolved, skipping group")
		return
	}

	logger.Info("filtering relevant articles", "step", "2/4", "candidates", len(fresh))
	reviews := p.classifier.ScoreRelevance(ctx, fresh, group.Topics)
	logger.Info("relevant articles selected", "relevant", len(reviews))

	if p.enricher != nil {
		for _, review := range reviews {
			p.enricher.Enrich(ctx, review.Item)
		}
	}

	logger.Info("summarizing articles", "step", "3/4")
	p.classifier.Summarize(ctx, reviews, group.Topics)
	if p.sentiment {
		p.classifier.ClassifySentiment(ctx, reviews)
	}

	logger.Info("sending digest", "step", "4/4", "recipients", len(group.Recipients))
	body, err := digest.Compile(reviews, group.Topics, now)
	if err != nil {
		logger.Warn("digest rendering failed", "error", err)
		return
	}

	if err := p.mailer.Send(ctx, digest.Subject(now), body, group.Recipients); err != nil {
		logger.Warn("digest delivery failed", "error", err)
		return
	}

	logger.Info("digest delivered", "articles", len(reviews))
}
