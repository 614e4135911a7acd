package runner_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var errFakeFailure = errors.New("fake failure")

// fakeRequester simulates performing a request with fixed latency.
type fakeRequester struct {
	latency   time.Duration
	calls     int64
	completed int64
	inFlight  int64
	maxFlight int64
	fail      bool
}

func (f *fakeRequester) Do(ctx context.Context) error {
	atomic.AddInt64(&f.calls, 1)
	current := atomic.AddInt64(&f.inFlight, 1)
	for {
		seen := atomic.LoadInt64(&f.maxFlight)
		if current <= seen || atomic.CompareAndSwapInt64(&f.maxFlight, seen, current) {
			break
		}
	}
	defer func() {
		atomic.AddInt64(&f.inFlight, -1)
		atomic.AddInt64(&f.completed, 1)
	}()

	if f.latency > 0 {
		select {
		case <-time.After(f.latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.fail {
		return errFakeFailure
	}
	return nil
}
