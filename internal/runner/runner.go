package runner

import (
	"context"
	"time"

	"github.com/torosent/loadclient/internal/metrics"
)

// Result captures execution summary.
type Result struct {
	Mode     Mode
	Attempts int64
	Failures int64
	Samples  int
	Duration time.Duration
}

// Sender runs a whole load pass, appending latency samples to series.
type Sender interface {
	Send(ctx context.Context, series *metrics.Series) Result
}

// New returns the sender for mode. ModeAuto is resolved from opt.Rate.
func New(mode Mode, opt Options) Sender {
	opt.normalize()
	if mode.Resolve(opt.Rate) == ModeBurst {
		return &BurstSender{opt: opt}
	}
	return &PacedSender{opt: opt}
}

// attempt times one request and records its outcome on series.
// It reports whether the attempt failed.
func attempt(ctx context.Context, req Requester, series *metrics.Series, recordOnFailure bool) bool {
	series.RecordAttempt()
	elapsed, err := metrics.Measure(func() error {
		return req.Do(ctx)
	})
	if err != nil {
		series.RecordFailure()
	}
	if err == nil || recordOnFailure {
		series.Add(metrics.Sample(elapsed))
	}
	return err != nil
}

// sleepContext waits for d or until ctx is done. It reports whether the full
// wait elapsed.
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
