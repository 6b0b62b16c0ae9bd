package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"ResearchDigest/internal/classify"
	"ResearchDigest/internal/config"
	"ResearchDigest/internal/infrastructure/feed"
	"ResearchDigest/internal/infrastructure/llm"
	"ResearchDigest/internal/infrastructure/mail"
	"ResearchDigest/internal/infrastructure/scheduler"
	"ResearchDigest/internal/infrastructure/scrape"
	"ResearchDigest/internal/infrastructure/storage"
	"ResearchDigest/internal/logging"
	"ResearchDigest/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sql.DB
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance. lookup resolves recipient
// addresses per group (os.Getenv in production).
func New(cfg config.Config, baseLogger *slog.Logger, lookup func(string) string) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	oracle, err := llm.NewGroqClient(cfg.LLM)
	if err != nil {
		db.Close()
		return nil, err
	}

	ingestor := usecase.NewIngestor(
		feed.NewReader(nil),
		baseLogger.With("component", "ingestor"),
	)

	var enricher *usecase.Enricher
	if cfg.Enrichment.Enabled {
		enricher = usecase.NewEnricher(
			scrape.NewScraper(nil),
			cfg.Enrichment.MaxChars,
			cfg.Enrichment.Timeout(),
			baseLogger.With("component", "enricher"),
		)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Ingestor:      ingestor,
		Seen:          storage.NewPostgresSeenStore(db),
		Classifier:    classify.NewClassifier(oracle, cfg.LLM.BatchDelay(), baseLogger.With("component", "classifier")),
		Enricher:      enricher,
		Mailer:        mail.NewSMTPMailer(cfg.SMTP),
		Logger:        baseLogger.With("component", "pipeline"),
		Feeds:         cfg.Feeds,
		LookbackHours: cfg.LookbackHours,
		RetentionDays: cfg.RetentionDays,
		Sentiment:     cfg.Sentiment.Enabled,
		Groups:        cfg.ResolveGroups(lookup),
	})

	return &Application{cfg: cfg, logger: baseLogger, db: db, pipeline: pipeline}, nil
}

// Run performs a single digest run.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("digest run starting", "run_id", uuid.NewString())
	return a.pipeline.Run(ctx, time.Now())
}

// RunDaily executes the pipeline immediately and then once per 24h until
// the context is cancelled.
func (a *Application) RunDaily(ctx context.Context) error {
	sched := usecase.NewScheduler(scheduler.NewDailyScheduler(24*time.Hour), a.pipeline, a.logger.With("component", "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return sched.Stop(context.Background())
}

// Close releases the database connection.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
