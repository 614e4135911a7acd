package runner_test

import (
	"testing"
	"time"

	"github.com/torosent/loadclient/internal/runner"
)

func TestSelectModeBoundary(t *testing.T) {
	tests := []struct {
		rate int
		want runner.Mode
	}{
		{1, runner.ModePaced},
		{99, runner.ModePaced},
		{100, runner.ModePaced},
		{101, runner.ModeBurst},
		{5000, runner.ModeBurst},
	}

	for _, tt := range tests {
		if got := runner.SelectMode(tt.rate); got != tt.want {
			t.Errorf("SelectMode(%d) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestModeResolve(t *testing.T) {
	tests := []struct {
		mode runner.Mode
		rate int
		want runner.Mode
	}{
		{runner.ModeAuto, 100, runner.ModePaced},
		{runner.ModeAuto, 101, runner.ModeBurst},
		{"", 101, runner.ModeBurst},
		{runner.ModePaced, 1000, runner.ModePaced},
		{runner.ModeBurst, 5, runner.ModeBurst},
	}

	for _, tt := range tests {
		if got := tt.mode.Resolve(tt.rate); got != tt.want {
			t.Errorf("%q.Resolve(%d) = %q, want %q", tt.mode, tt.rate, got, tt.want)
		}
	}
}

func TestNewPicksSenderByRate(t *testing.T) {
	paced := runner.New(runner.ModeAuto, runner.Options{Rate: 100, Duration: time.Second})
	if _, ok := paced.(*runner.PacedSender); !ok {
		t.Fatalf("rate 100: expected *PacedSender, got %T", paced)
	}

	burst := runner.New(runner.ModeAuto, runner.Options{Rate: 101, Duration: time.Second})
	if _, ok := burst.(*runner.BurstSender); !ok {
		t.Fatalf("rate 101: expected *BurstSender, got %T", burst)
	}

	forced := runner.New(runner.ModeBurst, runner.Options{Rate: 10, Duration: time.Second})
	if _, ok := forced.(*runner.BurstSender); !ok {
		t.Fatalf("forced burst: expected *BurstSender, got %T", forced)
	}
}
