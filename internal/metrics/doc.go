// Package metrics records per-request latency samples for a load run.
//
// A [Series] is the single in-memory home of every sample a run produces. Both
// senders append to it, the paced sender from one goroutine and the burst
// sender from many, so every method takes the series lock.
//
//	series := metrics.NewSeries()
//	elapsed, err := metrics.Measure(func() error {
//		return requester.Do(ctx)
//	})
//	series.RecordAttempt()
//	if err == nil {
//		series.Add(metrics.Sample(elapsed))
//	}
//
// Samples keep record order, which under concurrency is completion order and
// not issue order. [Series.Seconds] hands a copy to the report writer.
package metrics
