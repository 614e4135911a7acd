package runner

import (
	"context"
	"time"

	"github.com/torosent/loadclient/internal/metrics"
)

// PacedSender issues one blocking request per tick for the run duration.
// Ticks are 1/Rate apart and aligned to the run start: after each request the
// sender sleeps until the next tick boundary, so slow requests shorten the
// following wait instead of shifting the whole schedule. A request slower than
// one interval causes the ticks it overran to be skipped.
type PacedSender struct {
	opt Options
}

// NewPacedSender returns a paced sender regardless of the configured rate.
func NewPacedSender(opt Options) *PacedSender {
	opt.normalize()
	return &PacedSender{opt: opt}
}

// Interval returns the tick spacing. Rates above one per nanosecond are
// clamped to a 1ns interval.
func (p *PacedSender) Interval() time.Duration {
	return max(time.Second/time.Duration(p.opt.Rate), time.Nanosecond)
}

func (p *PacedSender) Send(ctx context.Context, series *metrics.Series) Result {
	res := Result{Mode: ModePaced}
	if p.opt.Requester == nil {
		return res
	}

	interval := p.Interval()
	before := series.Len()
	start := time.Now()
	for time.Since(start) < p.opt.Duration {
		if ctx.Err() != nil {
			break
		}
		res.Attempts++
		if attempt(ctx, p.opt.Requester, series, p.opt.RecordOnFailure) {
			res.Failures++
		}

		wait := interval - time.Since(start)%interval
		if !sleepContext(ctx, wait) {
			break
		}
	}

	res.Samples = series.Len() - before
	res.Duration = time.Since(start)
	return res
}
