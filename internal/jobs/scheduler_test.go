package jobs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type sweeperFunc func(time.Time) int

func (f sweeperFunc) SweepIdle(now time.Time) int { return f(now) }

type fakePurger struct {
	cutoff time.Time
	calls  int
	err    error
}

func (p *fakePurger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	p.calls++
	p.cutoff = cutoff
	return 3, p.err
}

func TestScheduler_RunSweep(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var got time.Time
	s := NewScheduler(nil, sweeperFunc(func(t time.Time) int { got = t; return 2 }), nil, 30)
	s.now = func() time.Time { return now }

	s.runSweep()
	if !got.Equal(now) {
		t.Fatalf("sweep called with %v, want %v", got, now)
	}
}

func TestScheduler_RunPurgeUsesRetention(t *testing.T) {
	now := time.Date(2024, 5, 31, 3, 30, 0, 0, time.UTC)
	p := &fakePurger{}
	s := NewScheduler(time.UTC, sweeperFunc(func(time.Time) int { return 0 }), p, 30)
	s.now = func() time.Time { return now }

	s.runPurge(context.Background())
	if p.calls != 1 {
		t.Fatalf("purge calls = %d", p.calls)
	}
	want := time.Date(2024, 5, 1, 3, 30, 0, 0, time.UTC)
	if !p.cutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", p.cutoff, want)
	}

	p.err = errors.New("db down")
	s.runPurge(context.Background()) // ошибка только логируется
	if p.calls != 2 {
		t.Fatalf("purge calls = %d", p.calls)
	}
}

func TestScheduler_StartRegistersJobs(t *testing.T) {
	sweep := sweeperFunc(func(time.Time) int { return 0 })

	s := NewScheduler(time.UTC, sweep, nil, 30)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if n := len(s.cron.Entries()); n != 1 {
		t.Fatalf("without a purger want 1 job, got %d", n)
	}
	s.Stop()

	s = NewScheduler(time.UTC, sweep, &fakePurger{}, 30)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if n := len(s.cron.Entries()); n != 2 {
		t.Fatalf("with a purger want 2 jobs, got %d", n)
	}
	s.Stop()
}
