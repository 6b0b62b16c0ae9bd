package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestStartRunsJobImmediately(t *testing.T) {
	t.Parallel()

	d := NewDailyScheduler(time.Hour)
	ran := make(chan time.Time, 1)

	if err := d.Start(context.Background(), func(ts time.Time) { ran <- ts }); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer d.Stop(context.Background())

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not fire on start")
	}
}

func TestStopIsIdempotentAndAllowsRestart(t *testing.T) {
	t.Parallel()

	d := NewDailyScheduler(time.Hour)
	ran := make(chan time.Time, 2)
	job := func(ts time.Time) { ran <- ts }

	if err := d.Start(context.Background(), job); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	<-ran

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop error: %v", err)
	}

	if err := d.Start(context.Background(), job); err != nil {
		t.Fatalf("restart error: %v", err)
	}
	defer d.Stop(context.Background())

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not fire after restart")
	}
}

func TestStopIsSafeWhileRunning(t *testing.T) {
	t.Parallel()

	d := NewDailyScheduler(time.Millisecond)
	if err := d.Start(context.Background(), func(time.Time) {}); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	// Stop races the ticking goroutine; both sides must tolerate it.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Stop(context.Background())
		}()
	}
	wg.Wait()
}
