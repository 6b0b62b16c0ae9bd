package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"ResearchDigest/internal/ports"
)

const createSeenTable = `CREATE TABLE IF NOT EXISTS seen_items (
    url     TEXT PRIMARY KEY,
    seen_on DATE NOT NULL DEFAULT CURRENT_DATE
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresSeenStore persists delivered item URLs for cross-run dedup. Every
// error from this store is fatal to the run; silently skipping the cache
// would mean repeat notifications.
type PostgresSeenStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.SeenStore = (*PostgresSeenStore)(nil)

// NewPostgresSeenStore wires a sql.DB implementation.
func NewPostgresSeenStore(db *sql.DB) *PostgresSeenStore {
	return &PostgresSeenStore{db: db, now: time.Now}
}

// Init idempotently ensures the seen_items table exists; safe every run.
func (s *PostgresSeenStore) Init(ctx context.Context) error {
	if s.db == nil {
		return errors.New("seen store: no database connection")
	}

	if _, err := s.db.ExecContext(ctx, createSeenTable); err != nil {
		return fmt.Errorf("create seen_items: %w", err)
	}
	return nil
}

// Contains reports whether the url was recorded by a previous run. An
// absent key is false, never an error.
func (s *PostgresSeenStore) Contains(ctx context.Context, url string) (bool, error) {
	query, args, err := containsQuery(url)
	if err != nil {
		return false, fmt.Errorf("build contains query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query seen url: %w", err)
	}
	return true, nil
}

// Add records every url not already present, stamped with today's date.
// Re-adding an existing url is a no-op.
func (s *PostgresSeenStore) Add(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	query, args, err := addQuery(urls, s.now())
	if err != nil {
		return fmt.Errorf("build add query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert seen urls: %w", err)
	}
	return nil
}

// PurgeOlderThan deletes records stamped before today - days, making
// expired items eligible to reappear in a digest.
func (s *PostgresSeenStore) PurgeOlderThan(ctx context.Context, days int) error {
	query, args, err := purgeQuery(s.now(), days)
	if err != nil {
		return fmt.Errorf("build purge query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("purge seen urls: %w", err)
	}
	return nil
}

func containsQuery(url string) (string, []any, error) {
	return psql.Select("1").
		From("seen_items").
		Where(sq.Eq{"url": url}).
		Limit(1).
		ToSql()
}

func addQuery(urls []string, now time.Time) (string, []any, error) {
	builder := psql.Insert("seen_items").Columns("url", "seen_on")
	day := now.Format("2006-01-02")
	for _, url := range urls {
		builder = builder.Values(url, day)
	}
	return builder.Suffix("ON CONFLICT (url) DO NOTHING").ToSql()
}

func purgeQuery(now time.Time, days int) (string, []any, error) {
	cutoff := now.AddDate(0, 0, -days).Format("2006-01-02")
	return psql.Delete("seen_items").
		Where(sq.Lt{"seen_on": cutoff}).
		ToSql()
}
