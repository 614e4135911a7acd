package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/torosent/loadclient/internal/metrics"
)

// syncBuffer guards a bytes.Buffer shared with the reporter goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgressReporterBasic(t *testing.T) {
	series := metrics.NewSeries()

	var buf syncBuffer
	reporter := NewProgressReporter(series, 100*time.Millisecond, &buf)
	if reporter == nil {
		t.Fatal("Expected non-nil reporter")
	}

	reporter.Stop()
	if buf.String() != "" {
		t.Errorf("Expected no output from a reporter that never started, got %q", buf.String())
	}
}

func TestProgressReporterFormatting(t *testing.T) {
	series := metrics.NewSeries()
	series.Start()
	for i := 0; i < 3; i++ {
		series.RecordAttempt()
		series.Add(metrics.Sample(5 * time.Millisecond))
	}
	series.RecordAttempt()
	series.RecordFailure()

	var buf syncBuffer
	reporter := NewProgressReporter(series, 20*time.Millisecond, &buf)
	reporter.Start()
	reporter.Start()

	time.Sleep(100 * time.Millisecond)
	reporter.Stop()

	output := buf.String()
	if !strings.Contains(output, "Requests: 4") {
		t.Errorf("Expected 'Requests: 4' in progress output, got %q", output)
	}
	if !strings.Contains(output, "Samples: 3") {
		t.Errorf("Expected 'Samples: 3' in progress output, got %q", output)
	}
	if !strings.Contains(output, "Failures: 1") {
		t.Errorf("Expected 'Failures: 1' in progress output, got %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("Expected Stop to terminate the progress line")
	}
}

func TestProgressLine(t *testing.T) {
	line := progressLine(metrics.Snapshot{Attempts: 10, Samples: 9, Failures: 1, RequestsPerSec: 12.34})
	want := "\rRequests: 10 | Samples: 9 | Failures: 1 | RPS: 12.3"
	if line != want {
		t.Errorf("progressLine() = %q, want %q", line, want)
	}
}
