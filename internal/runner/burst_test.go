package runner_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/torosent/loadclient/internal/metrics"
	"github.com/torosent/loadclient/internal/runner"
)

// TestBurstSenderSchedulesRateTimesDuration checks every unit completes before Send returns.
func TestBurstSenderSchedulesRateTimesDuration(t *testing.T) {
	req := &fakeRequester{latency: 10 * time.Millisecond}
	sender := runner.NewBurstSender(runner.Options{
		Rate:      20,
		Duration:  time.Second,
		Requester: req,
	})
	series := metrics.NewSeries()

	if sender.Total() != 20 {
		t.Fatalf("Total() = %d, want 20", sender.Total())
	}

	res := sender.Send(context.Background(), series)

	if got := atomic.LoadInt64(&req.completed); got != 20 {
		t.Fatalf("expected 20 completed units when Send returns, got %d", got)
	}
	if res.Attempts != 20 || series.Len() != 20 || res.Samples != 20 {
		t.Fatalf("expected 20 attempts and samples, got attempts=%d samples=%d series=%d", res.Attempts, res.Samples, series.Len())
	}
	if res.Mode != runner.ModeBurst {
		t.Fatalf("expected burst mode, got %q", res.Mode)
	}
}

// TestBurstSenderRunsConcurrently ensures units are not serialized.
func TestBurstSenderRunsConcurrently(t *testing.T) {
	req := &fakeRequester{latency: 100 * time.Millisecond}
	sender := runner.NewBurstSender(runner.Options{
		Rate:      50,
		Duration:  time.Second,
		Requester: req,
	})

	start := time.Now()
	sender.Send(context.Background(), metrics.NewSeries())
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Fatalf("burst looks sequential: %s for 50 x 100ms", elapsed)
	}
	if atomic.LoadInt64(&req.maxFlight) < 2 {
		t.Fatalf("expected concurrent execution, max in flight %d", req.maxFlight)
	}
}

func TestBurstSenderRecordsFailuresWhenConfigured(t *testing.T) {
	req := &fakeRequester{fail: true}
	sender := runner.NewBurstSender(runner.Options{
		Rate:            15,
		Duration:        time.Second,
		Requester:       req,
		RecordOnFailure: true,
	})
	series := metrics.NewSeries()

	res := sender.Send(context.Background(), series)

	if res.Failures != 15 {
		t.Fatalf("expected 15 failures, got %d", res.Failures)
	}
	if series.Len() != 15 {
		t.Fatalf("expected failed attempts to be sampled, got %d samples", series.Len())
	}
}

func TestBurstSenderDropsFailuresWhenDisabled(t *testing.T) {
	req := &fakeRequester{fail: true}
	sender := runner.NewBurstSender(runner.Options{
		Rate:      15,
		Duration:  time.Second,
		Requester: req,
	})
	series := metrics.NewSeries()

	res := sender.Send(context.Background(), series)

	if res.Failures != 15 {
		t.Fatalf("expected 15 failures, got %d", res.Failures)
	}
	if series.Len() != 0 {
		t.Fatalf("expected no samples, got %d", series.Len())
	}
}

func TestBurstSenderRespectsMaxInFlight(t *testing.T) {
	req := &fakeRequester{latency: 20 * time.Millisecond}
	sender := runner.NewBurstSender(runner.Options{
		Rate:        40,
		Duration:    time.Second,
		Requester:   req,
		MaxInFlight: 4,
	})

	res := sender.Send(context.Background(), metrics.NewSeries())

	if res.Attempts != 40 {
		t.Fatalf("expected 40 attempts, got %d", res.Attempts)
	}
	if got := atomic.LoadInt64(&req.maxFlight); got > 4 {
		t.Fatalf("max in flight exceeded: %d > 4", got)
	}
}

func TestBurstSenderUsesStartRateLimiter(t *testing.T) {
	var requested int64
	sender := runner.NewBurstSender(runner.Options{
		Rate:      10,
		Duration:  time.Second,
		Requester: &fakeRequester{},
		StartRate: 100,
		LimiterFactory: func(rps int) *rate.Limiter {
			atomic.StoreInt64(&requested, int64(rps))
			return rate.NewLimiter(rate.Limit(rps), 1)
		},
	})

	start := time.Now()
	res := sender.Send(context.Background(), metrics.NewSeries())
	elapsed := time.Since(start)

	if atomic.LoadInt64(&requested) != 100 {
		t.Fatalf("limiter built for %d rps, want 100", requested)
	}
	if res.Attempts != 10 {
		t.Fatalf("expected 10 attempts, got %d", res.Attempts)
	}
	// Ten starts at 100/s with burst 1 need at least ~90ms.
	if elapsed < 80*time.Millisecond {
		t.Fatalf("start rate not applied, finished in %s", elapsed)
	}
}

func TestBurstSenderStopsSchedulingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &fakeRequester{}
	sender := runner.NewBurstSender(runner.Options{
		Rate:      100,
		Duration:  time.Second,
		Requester: req,
	})

	res := sender.Send(ctx, metrics.NewSeries())

	if res.Attempts != 0 {
		t.Fatalf("expected no attempts after cancel, got %d", res.Attempts)
	}
}
