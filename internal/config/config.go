// Package config loads loadclient settings from flags and an optional config file.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Mode selects the sender used for a run.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModePaced Mode = "paced"
	ModeBurst Mode = "burst"
)

const (
	DefaultDuration         = 5 * time.Second
	DefaultTimeout          = 30 * time.Second
	DefaultBurstMaxInFlight = 1000
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"

	highRateWarning = 10000
	// pacedRateThreshold mirrors runner.PacedRateThreshold.
	pacedRateThreshold = 100
)

type Config struct {
	TargetURL  string        `mapstructure:"target"`
	Rate       int           `mapstructure:"rate"`
	OutputPath string        `mapstructure:"output"`
	Duration   time.Duration `mapstructure:"duration"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Mode       Mode          `mapstructure:"mode"`
	Progress   bool          `mapstructure:"progress"`
	Paced      PacedConfig   `mapstructure:"paced"`
	Burst      BurstConfig   `mapstructure:"burst"`
	Log        LogConfig     `mapstructure:"log"`
	Tracing    TracingConfig `mapstructure:"tracing"`
	ConfigFile string        `mapstructure:"-"`
}

type PacedConfig struct {
	RecordOnFailure bool `mapstructure:"record_failures"` // keep latency of failed requests
}

type BurstConfig struct {
	RecordOnFailure bool `mapstructure:"record_failures"` // keep latency of failed requests
	MaxInFlight     int  `mapstructure:"max_inflight"`    // concurrent request cap (0=unbounded)
	StartRate       int  `mapstructure:"start_rate"`      // request starts per second (0=unlimited)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`     // OTLP collector host:port
	Protocol    string  `mapstructure:"protocol"`     // grpc or http
	Insecure    bool    `mapstructure:"insecure"`     // plaintext exporter connection
	SampleRate  float64 `mapstructure:"sample_rate"`  // 0.0-1.0
	ServiceName string  `mapstructure:"service_name"` // defaults to OTEL_SERVICE_NAME or loadclient
	Propagate   *bool   `mapstructure:"propagate"`    // inject W3C headers (defaults to enabled with tracing)
}

// WholeSeconds returns the run duration in seconds.
func (c Config) WholeSeconds() int {
	return int(c.Duration / time.Second)
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

// Issues returns each validation problem as a separate message.
func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	issues = append(issues, validateTarget(c.TargetURL)...)

	if c.Rate < 1 {
		issues = append(issues, "rate is required and must be >= 1 (use --help for usage information)")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		issues = append(issues, "output is required (use --help for usage information)")
	}
	if c.Duration < time.Second {
		issues = append(issues, "duration must be >= 1 second")
	} else if c.Duration%time.Second != 0 {
		issues = append(issues, "duration must be a whole number of seconds")
	}
	if c.Timeout < 0 {
		issues = append(issues, "timeout must be >= 0")
	}

	switch c.Mode {
	case "", ModeAuto, ModePaced, ModeBurst:
	default:
		issues = append(issues, fmt.Sprintf("mode: must be 'auto', 'paced', or 'burst', got %q", c.Mode))
	}

	if c.Burst.MaxInFlight < 0 {
		issues = append(issues, "burst: max_inflight must be >= 0")
	}
	if c.Burst.StartRate < 0 {
		issues = append(issues, "burst: start_rate must be >= 0")
	}

	issues = append(issues, validateLogConfig(c.Log)...)
	issues = append(issues, validateTracingConfig(c.Tracing)...)

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

// Warnings returns non-fatal advisories about the configuration.
func (c Config) Warnings() []string {
	var warnings []string
	if c.Rate > highRateWarning {
		warnings = append(warnings, fmt.Sprintf("High rate configured (%d RPS). Ensure you have authorization to test the target system.", c.Rate))
	}
	burst := c.Mode == ModeBurst || ((c.Mode == "" || c.Mode == ModeAuto) && c.Rate > pacedRateThreshold)
	if burst && c.Burst.MaxInFlight == 0 {
		warnings = append(warnings, fmt.Sprintf("Burst concurrency is unbounded; up to %d sockets may open at once.", c.Rate*c.WholeSeconds()))
	}
	if c.Timeout == 0 {
		warnings = append(warnings, "Per-request timeout disabled; a hung connection blocks its request slot indefinitely.")
	}
	return warnings
}

func validateTarget(target string) []string {
	target = strings.TrimSpace(target)
	if target == "" {
		return []string{"target is required (use --help for usage information)"}
	}
	u, err := url.Parse(target)
	if err != nil {
		return []string{fmt.Sprintf("target: %v", err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []string{fmt.Sprintf("target: scheme must be http or https, got %q", u.Scheme)}
	}
	if u.Host == "" {
		return []string{"target: host is required"}
	}
	return nil
}

func validateLogConfig(log LogConfig) []string {
	var issues []string
	if log.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(log.Level)); err != nil {
			issues = append(issues, fmt.Sprintf("log: unsupported level %q", log.Level))
		}
	}
	switch strings.ToLower(log.Format) {
	case "", "console", "json":
	default:
		issues = append(issues, fmt.Sprintf("log: format must be 'console' or 'json', got %q", log.Format))
	}
	return issues
}

func validateTracingConfig(tracing TracingConfig) []string {
	var issues []string
	if tracing.SampleRate < 0 || tracing.SampleRate > 1 {
		issues = append(issues, fmt.Sprintf("tracing: sample_rate must be between 0.0 and 1.0, got %g", tracing.SampleRate))
	}
	switch strings.ToLower(tracing.Protocol) {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("tracing: protocol must be 'grpc' or 'http', got %q", tracing.Protocol))
	}
	return issues
}
