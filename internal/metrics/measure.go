package metrics

import "time"

// Measure runs fn and returns its wall-clock duration alongside its error.
// The duration covers the whole call whether fn succeeds or fails.
func Measure(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}
