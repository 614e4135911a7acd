package runner

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/torosent/loadclient/internal/metrics"
)

// BurstSender schedules Rate*Duration requests concurrently and waits for all
// of them. Units are started as fast as StartRate allows (unlimited by
// default) and at most MaxInFlight run at once when a cap is set. Every unit
// shares the caller's Requester and therefore its connection pool.
type BurstSender struct {
	opt Options
}

// NewBurstSender returns a burst sender regardless of the configured rate.
func NewBurstSender(opt Options) *BurstSender {
	opt.normalize()
	return &BurstSender{opt: opt}
}

// Total returns the number of request units a burst schedules.
func (b *BurstSender) Total() int {
	return int(math.Round(float64(b.opt.Rate) * b.opt.Duration.Seconds()))
}

func (b *BurstSender) Send(ctx context.Context, series *metrics.Series) Result {
	res := Result{Mode: ModeBurst}
	if b.opt.Requester == nil {
		return res
	}

	var attempts, failures int64
	limiter := b.opt.LimiterFactory(b.opt.StartRate)
	before := series.Len()
	start := time.Now()

	var g errgroup.Group
	if b.opt.MaxInFlight > 0 {
		g.SetLimit(b.opt.MaxInFlight)
	}

	total := b.Total()
	for i := 0; i < total; i++ {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		g.Go(func() error {
			atomic.AddInt64(&attempts, 1)
			if attempt(ctx, b.opt.Requester, series, b.opt.RecordOnFailure) {
				atomic.AddInt64(&failures, 1)
			}
			return nil
		})
	}
	_ = g.Wait()

	res.Attempts = atomic.LoadInt64(&attempts)
	res.Failures = atomic.LoadInt64(&failures)
	res.Samples = series.Len() - before
	res.Duration = time.Since(start)
	return res
}
