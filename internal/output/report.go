package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const (
	sampleFormat  = "%.6f\n"
	averageFormat = "\nAverage response time: %.6f seconds\n"
)

// Average returns the arithmetic mean of samples, or 0 for an empty slice.
func Average(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// PrintReport writes the report body for samples to w.
func PrintReport(w io.Writer, samples []float64) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		if _, err := fmt.Fprintf(bw, sampleFormat, s); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, averageFormat, Average(samples)); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteReport replaces the file at path with the report for samples, creating
// missing parent directories. An advisory lock on "<path>.lock" is held while
// the file is written. The lock file is left in place so every writer locks
// the same inode.
func WriteReport(path string, samples []float64) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock report: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()

	if err := PrintReport(file, samples); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Recorder writes run reports and confirms each write on the log.
type Recorder struct {
	logger *zap.Logger
}

// NewRecorder returns a Recorder logging to logger. A nil logger disables the
// confirmation message.
func NewRecorder(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{logger: logger}
}

// Record writes the report for samples to path.
func (r *Recorder) Record(path string, samples []float64) error {
	if err := WriteReport(path, samples); err != nil {
		return err
	}
	r.logger.Info("results written",
		zap.String("path", path),
		zap.Int("samples", len(samples)),
		zap.Float64("average_seconds", Average(samples)),
	)
	return nil
}
