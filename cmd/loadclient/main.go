package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/torosent/loadclient/internal/config"
	"github.com/torosent/loadclient/internal/httpclient"
	"github.com/torosent/loadclient/internal/logging"
	"github.com/torosent/loadclient/internal/metrics"
	"github.com/torosent/loadclient/internal/output"
	"github.com/torosent/loadclient/internal/runner"
	"github.com/torosent/loadclient/internal/tracing"
)

const (
	progressInterval = time.Second
	shutdownTimeout  = 5 * time.Second
)

// resultRecorder persists the samples of a finished run.
type resultRecorder interface {
	Record(path string, samples []float64) error
}

type zapFailureLogger struct {
	logger *zap.Logger
}

func (l zapFailureLogger) LogFailure(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		l.logger.Debug("request canceled", zap.Error(err))
		return
	}
	l.logger.Warn("request failed",
		zap.Error(err),
		zap.String("kind", metrics.ErrorKind(err)),
	)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError lists validation issues one per line and prints other errors as-is.
func printError(w io.Writer, err error) {
	var verr config.ValidationError
	if errors.As(err, &verr) && len(verr.Issues()) > 0 {
		fmt.Fprintln(w, "Error: invalid configuration:")
		for _, issue := range verr.Issues() {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func run(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return runContext(ctx, args, os.Stderr)
}

func runContext(ctx context.Context, args []string, logOut io.Writer) (err error) {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("run_id", ulid.Make().String()))
	defer func() {
		err = multierr.Append(err, syncLogger(logger))
	}()

	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	provider, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	if provider.Enabled() {
		logger.Info("tracing enabled",
			zap.String("protocol", cfg.Tracing.Protocol),
			zap.Bool("propagate", provider.ShouldPropagate()),
		)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if ferr := provider.ForceFlush(shutdownCtx); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("tracing flush: %w", ferr))
		}
		if serr := provider.Shutdown(shutdownCtx); serr != nil {
			err = multierr.Append(err, fmt.Errorf("tracing shutdown: %w", serr))
		}
	}()

	builder, err := httpclient.NewRequestBuilder(cfg.TargetURL)
	if err != nil {
		return err
	}
	client := httpclient.NewClient(cfg.Timeout)
	defer client.CloseIdleConnections()

	var requester runner.Requester = newHTTPRequester(client, builder, provider)
	requester = runner.WithLogging(requester, zapFailureLogger{logger: logger})

	mode := toRunnerMode(cfg.Mode).Resolve(cfg.Rate)
	sender := runner.New(mode, senderOptions(cfg, mode, requester))

	plan := runPlan{
		sender:   sender,
		recorder: output.NewRecorder(logger),
		output:   cfg.OutputPath,
		rate:     cfg.Rate,
		seconds:  cfg.WholeSeconds(),
		logger:   logger,
		tracer:   provider.Tracer(),
	}
	if cfg.Progress {
		plan.progress = os.Stderr
	}

	_, err = plan.execute(ctx, metrics.NewSeries())
	return err
}

func toRunnerMode(mode config.Mode) runner.Mode {
	switch mode {
	case config.ModePaced:
		return runner.ModePaced
	case config.ModeBurst:
		return runner.ModeBurst
	default:
		return runner.ModeAuto
	}
}

func senderOptions(cfg *config.Config, mode runner.Mode, requester runner.Requester) runner.Options {
	opts := runner.Options{
		Rate:      cfg.Rate,
		Duration:  cfg.Duration,
		Requester: requester,
	}
	if mode == runner.ModeBurst {
		opts.RecordOnFailure = cfg.Burst.RecordOnFailure
		opts.MaxInFlight = cfg.Burst.MaxInFlight
		opts.StartRate = cfg.Burst.StartRate
	} else {
		opts.RecordOnFailure = cfg.Paced.RecordOnFailure
	}
	return opts
}

// runPlan drives one sender to completion and hands its samples to the
// recorder exactly once.
type runPlan struct {
	sender   runner.Sender
	recorder resultRecorder
	output   string
	rate     int
	seconds  int
	logger   *zap.Logger
	tracer   trace.Tracer
	progress io.Writer
}

func (p runPlan) execute(ctx context.Context, series *metrics.Series) (result runner.Result, err error) {
	logger := p.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := p.tracer
	if tracer == nil {
		tracer = (*tracing.Provider)(nil).Tracer()
	}

	modeName, fields := describeSender(p.sender)
	ctx, span := tracing.StartRunSpan(ctx, tracer, modeName, p.rate, p.seconds)
	defer func() { tracing.EndSpan(span, err) }()

	logger.Info(fmt.Sprintf("sending %s requests", modeName), append([]zap.Field{
		zap.String("mode", modeName),
		zap.Int("rate", p.rate),
		zap.Int("duration_seconds", p.seconds),
	}, fields...)...)

	var progress *output.ProgressReporter
	if p.progress != nil {
		progress = output.NewProgressReporter(series, progressInterval, p.progress)
	}

	series.Start()
	if progress != nil {
		progress.Start()
	}
	result = p.sender.Send(ctx, series)
	if progress != nil {
		progress.Stop()
	}

	logger.Info("run finished",
		zap.Int64("attempts", result.Attempts),
		zap.Int64("failures", result.Failures),
		zap.Int("samples", result.Samples),
		zap.Duration("elapsed", result.Duration),
		zap.Bool("interrupted", ctx.Err() != nil),
	)

	if err := p.recorder.Record(p.output, series.Seconds()); err != nil {
		return result, fmt.Errorf("record results: %w", err)
	}
	return result, nil
}

func describeSender(sender runner.Sender) (string, []zap.Field) {
	switch s := sender.(type) {
	case *runner.BurstSender:
		return string(runner.ModeBurst), []zap.Field{zap.Int("total", s.Total())}
	case *runner.PacedSender:
		return string(runner.ModePaced), []zap.Field{zap.Duration("interval", s.Interval())}
	default:
		return "custom", nil
	}
}

// syncLogger flushes logger, ignoring the errors returned when the sink is a
// terminal or pipe that does not support fsync.
func syncLogger(logger *zap.Logger) error {
	err := logger.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EBADF) {
		return nil
	}
	return err
}
