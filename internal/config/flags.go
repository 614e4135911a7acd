package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "loadclient --target URL --rate N --output FILE [--duration SECONDS]",
		Short:         "Send GET requests at a fixed rate and record response times",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Core flags
	flags.String("target", "", "Target URL (http://HOST:PORT)")
	flags.IntP("rate", "r", 0, "Requests per second; rates above 100 switch to burst mode")
	flags.StringP("output", "o", "", "Output file for response times (parent directories are created)")
	flags.IntP("duration", "d", int(DefaultDuration/time.Second), "Test duration in seconds")
	flags.Duration("timeout", DefaultTimeout, "Per-request timeout (0 disables)")
	flags.String("mode", string(ModeAuto), "Dispatch mode: 'auto', 'paced', or 'burst'")

	// Sampling policy flags
	flags.Bool("paced-record-failures", false, "Record latency of failed requests in paced mode")
	flags.Bool("burst-record-failures", true, "Record latency of failed requests in burst mode")
	flags.Int("burst-max-inflight", DefaultBurstMaxInFlight, "Max concurrent requests in burst mode (0=unbounded)")
	flags.Int("burst-start-rate", 0, "Max request starts per second in burst mode (0=unlimited)")

	// Output flags
	flags.Bool("progress", false, "Show live progress on stderr")
	flags.String("log-level", DefaultLogLevel, "Log level: debug, info, warn, or error")
	flags.String("log-format", DefaultLogFormat, "Log format: 'console' or 'json'")
	flags.String("config", "", "Path to configuration file (JSON, YAML, or TOML)")

	// Tracing flags
	flags.String("tracing-endpoint", "", "OTLP collector endpoint (enables tracing)")
	flags.String("tracing-protocol", "grpc", "OTLP protocol: 'grpc' or 'http'")
	flags.Bool("tracing-insecure", false, "Use a plaintext connection to the collector")
	flags.Float64("tracing-sample-rate", 1.0, "Trace sampling ratio between 0.0 and 1.0")
	flags.String("tracing-service-name", "", "Service name reported on spans")
	flags.Bool("tracing-propagate", true, "Inject W3C trace context headers when tracing is enabled")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\nUsage: %s\n\nFlags:\n", cmd.Short, cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("target") {
		val, err := fs.GetString("target")
		if err != nil {
			return err
		}
		cfg.TargetURL = strings.TrimSpace(val)
	}
	if fs.Changed("rate") {
		val, err := fs.GetInt("rate")
		if err != nil {
			return err
		}
		cfg.Rate = val
	}
	if fs.Changed("output") {
		val, err := fs.GetString("output")
		if err != nil {
			return err
		}
		cfg.OutputPath = strings.TrimSpace(val)
	}
	if fs.Changed("duration") {
		val, err := fs.GetInt("duration")
		if err != nil {
			return err
		}
		cfg.Duration = time.Duration(val) * time.Second
	}
	if fs.Changed("timeout") {
		val, err := fs.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = val
	}
	if fs.Changed("mode") {
		val, err := fs.GetString("mode")
		if err != nil {
			return err
		}
		cfg.Mode = Mode(strings.ToLower(strings.TrimSpace(val)))
	}
	if fs.Changed("paced-record-failures") {
		val, err := fs.GetBool("paced-record-failures")
		if err != nil {
			return err
		}
		cfg.Paced.RecordOnFailure = val
	}
	if fs.Changed("burst-record-failures") {
		val, err := fs.GetBool("burst-record-failures")
		if err != nil {
			return err
		}
		cfg.Burst.RecordOnFailure = val
	}
	if fs.Changed("burst-max-inflight") {
		val, err := fs.GetInt("burst-max-inflight")
		if err != nil {
			return err
		}
		cfg.Burst.MaxInFlight = val
	}
	if fs.Changed("burst-start-rate") {
		val, err := fs.GetInt("burst-start-rate")
		if err != nil {
			return err
		}
		cfg.Burst.StartRate = val
	}
	if fs.Changed("progress") {
		val, err := fs.GetBool("progress")
		if err != nil {
			return err
		}
		cfg.Progress = val
	}
	if fs.Changed("log-level") {
		val, err := fs.GetString("log-level")
		if err != nil {
			return err
		}
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(val))
	}
	if fs.Changed("log-format") {
		val, err := fs.GetString("log-format")
		if err != nil {
			return err
		}
		cfg.Log.Format = strings.ToLower(strings.TrimSpace(val))
	}

	if fs.Changed("tracing-endpoint") {
		val, err := fs.GetString("tracing-endpoint")
		if err != nil {
			return err
		}
		cfg.Tracing.Endpoint = strings.TrimSpace(val)
	}
	if fs.Changed("tracing-protocol") {
		val, err := fs.GetString("tracing-protocol")
		if err != nil {
			return err
		}
		cfg.Tracing.Protocol = strings.ToLower(strings.TrimSpace(val))
	}
	if fs.Changed("tracing-insecure") {
		val, err := fs.GetBool("tracing-insecure")
		if err != nil {
			return err
		}
		cfg.Tracing.Insecure = val
	}
	if fs.Changed("tracing-sample-rate") {
		val, err := fs.GetFloat64("tracing-sample-rate")
		if err != nil {
			return err
		}
		cfg.Tracing.SampleRate = val
	}
	if fs.Changed("tracing-service-name") {
		val, err := fs.GetString("tracing-service-name")
		if err != nil {
			return err
		}
		cfg.Tracing.ServiceName = strings.TrimSpace(val)
	}
	if fs.Changed("tracing-propagate") {
		val, err := fs.GetBool("tracing-propagate")
		if err != nil {
			return err
		}
		cfg.Tracing.Propagate = &val
	}

	return nil
}
