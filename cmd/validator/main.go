package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"pixcheck/internal/pipeline"
	"pixcheck/internal/platform/config"
	"pixcheck/internal/platform/logger"
	"pixcheck/internal/platform/metrics"
	"pixcheck/internal/registry"
)

// Exit codes. A False verdict is a normal outcome and exits 0.
const (
	exitOK     = 0
	exitConfig = 2
	exitOutput = 3
)

// main reads the record stream from stdin and prints True or False with no
// trailing newline. Diagnostics go to stderr only.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, config.Load, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, load func() (config.Validator, error), stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitConfig
	}
	log, err := logger.New(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitConfig
	}
	policy, err := registry.ParsePolicy(cfg.Ordering)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitConfig
	}

	m := metrics.New()
	controller := pipeline.New(
		pipeline.WithLogger(log),
		pipeline.WithMetrics(m),
		pipeline.WithPolicy(policy),
		pipeline.WithSentinel(cfg.Sentinel),
	)

	result := controller.Run(ctx, pipeline.NewScannerSource(stdin))
	if _, err := io.WriteString(stdout, pipeline.FormatVerdict(result.Valid)); err != nil {
		log.ErrorContext(ctx, "write verdict", "error", err)
		return exitOutput
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.WarnContext(ctx, "write metrics file", "path", cfg.MetricsFile, "error", err)
		}
	}
	return exitOK
}
