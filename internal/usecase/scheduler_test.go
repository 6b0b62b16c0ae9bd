package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"ResearchDigest/internal/domain"
)

// immediateDriver fires the job once, synchronously, on Start.
type immediateDriver struct {
	stopped bool
}

func (d *immediateDriver) Start(_ context.Context, job func(time.Time)) error {
	job(time.Now())
	return nil
}

func (d *immediateDriver) Stop(context.Context) error {
	d.stopped = true
	return nil
}

func TestSchedulerLogsFailedRuns(t *testing.T) {
	t.Parallel()

	fix := &pipelineFixture{
		seen:   newFakeSeen(),
		mailer: &recordingMailer{},
	}
	fix.seen.containsErr = errors.New("seen cache unavailable")
	reader := testReader(domain.RawEntry{Title: "Story", Link: "https://example.com/s", Summary: "s"})
	p := newTestPipeline(fix, reader, scriptedOracle{}, group("alpha", "a@example.com"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := NewScheduler(&immediateDriver{}, p, logger)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	if !strings.Contains(buf.String(), "scheduled digest run failed") {
		t.Fatalf("run failure not logged: %q", buf.String())
	}
}

func TestSchedulerStopTearsDownDriver(t *testing.T) {
	t.Parallel()

	fix := &pipelineFixture{seen: newFakeSeen(), mailer: &recordingMailer{}}
	reader := testReader()
	p := newTestPipeline(fix, reader, scriptedOracle{}, group("alpha", "a@example.com"))

	driver := &immediateDriver{}
	s := NewScheduler(driver, p, nil)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if !driver.stopped {
		t.Fatal("driver not stopped")
	}
}
