package metrics

import (
	"sync"
	"time"
)

// Sample is one request round-trip, including body retrieval.
type Sample time.Duration

// Seconds returns the sample in seconds.
func (s Sample) Seconds() float64 {
	return time.Duration(s).Seconds()
}

// Series records samples and request counters in a thread-safe manner.
type Series struct {
	mu       sync.Mutex
	samples  []Sample
	attempts int64
	failures int64
	start    time.Time
}

func NewSeries() *Series {
	return &Series{start: time.Now()}
}

// Start marks the beginning of the run for rate calculations.
func (s *Series) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start = time.Now()
}

// Add appends a sample. Negative samples are clamped to zero.
func (s *Series) Add(sample Sample) {
	if sample < 0 {
		sample = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample)
}

// RecordAttempt counts one issued request.
func (s *Series) RecordAttempt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
}

// RecordFailure counts one failed request.
func (s *Series) RecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
}

func (s *Series) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

func (s *Series) Attempts() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *Series) Failures() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// Seconds returns the recorded samples in seconds, in record order.
func (s *Series) Seconds() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.samples))
	for i, sample := range s.samples {
		out[i] = sample.Seconds()
	}
	return out
}

// Snapshot is a point-in-time view of the series counters.
type Snapshot struct {
	Attempts       int64
	Failures       int64
	Samples        int
	Elapsed        time.Duration
	RequestsPerSec float64
}

// Snapshot returns the current counters and the attempt rate since Start.
func (s *Series) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Attempts: s.attempts,
		Failures: s.failures,
		Samples:  len(s.samples),
		Elapsed:  time.Since(s.start),
	}
	if snap.Elapsed > 0 && snap.Attempts > 0 {
		snap.RequestsPerSec = float64(snap.Attempts) / snap.Elapsed.Seconds()
	}
	return snap
}
