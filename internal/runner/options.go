package runner

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Requester abstracts executing a single request operation.
// Implementations should return an error for failed requests.
type Requester interface {
	Do(ctx context.Context) error
}

// Options configure a sender.
type Options struct {
	Rate            int                         // requests per second (paced) or per second of duration (burst)
	Duration        time.Duration               // run length
	Requester       Requester                   // request executor (required)
	RecordOnFailure bool                        // keep the latency sample of failed attempts
	MaxInFlight     int                         // burst only: concurrent request cap (0 means unbounded)
	StartRate       int                         // burst only: units started per second (0 means unlimited)
	LimiterFactory  func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Rate <= 0 {
		o.Rate = 1
	}
	if o.Duration < 0 {
		o.Duration = 0
	}
	if o.MaxInFlight < 0 {
		o.MaxInFlight = 0
	}
	if o.StartRate < 0 {
		o.StartRate = 0
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst equal to rps to smooth pacing under concurrency.
			return rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}
