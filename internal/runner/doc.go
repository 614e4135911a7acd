// Package runner provides the request dispatch engine for loadclient.
//
// A run is executed by one of two senders, chosen once per run:
//   - [PacedSender]: one blocking request per tick, ticks spaced 1/rate apart
//     and aligned to the run start so the long-run rate self-corrects
//   - [BurstSender]: rate*duration requests scheduled concurrently with no
//     pacing between them, joined before the run completes
//
// [SelectMode] picks the sender from the requested rate: rates up to and
// including [PacedRateThreshold] are paced, anything higher is a burst.
//
// # Basic Usage
//
//	opts := runner.Options{
//		Rate:      50,
//		Duration:  5 * time.Second,
//		Requester: myRequester,
//	}
//	sender := runner.New(runner.SelectMode(opts.Rate), opts)
//	series := metrics.NewSeries()
//	result := sender.Send(ctx, series)
//
// # Requester Interface
//
// The [Requester] interface defines what a sender executes:
//
//	type Requester interface {
//		Do(ctx context.Context) error
//	}
//
// A non-nil error marks the attempt as failed. Whether a failed attempt still
// contributes a latency sample is controlled by [Options.RecordOnFailure].
//
// # Middleware
//
// [WithLogging] reports every failed attempt to a [FailureLogger] without
// changing the error seen by the sender.
package runner
