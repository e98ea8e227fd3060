package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/angeloszaimis/provider-filter/config"
	"github.com/angeloszaimis/provider-filter/internal/filter"
	"github.com/angeloszaimis/provider-filter/internal/probe"
	"github.com/angeloszaimis/provider-filter/internal/provider"
	"github.com/angeloszaimis/provider-filter/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, false, cfg.Environment, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Error("Provider filtering failed", slog.Any("err", err))
		cancel()
		os.Exit(1)
	}
}

// run loads the providers, filters them and writes the survivors to out.
// Nothing is written to out unless the whole run succeeds.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) error {
	providers, err := provider.Load(cfg.Providers.File)
	if err != nil {
		return fmt.Errorf("load providers from %s: %w", cfg.Providers.File, err)
	}

	log.Info("Loaded providers",
		slog.String("file", cfg.Providers.File),
		slog.Int("count", len(providers)))

	f := filter.New(log, newProber(cfg.Probe))

	reachable, err := f.Run(ctx, providers)
	if err != nil {
		return fmt.Errorf("filter providers: %w", err)
	}

	log.Info("Filtering finished", f.Summary().LogAttrs()...)

	var buf bytes.Buffer
	if err := provider.Encode(&buf, reachable); err != nil {
		return fmt.Errorf("encode providers: %w", err)
	}

	_, err = buf.WriteTo(out)
	return err
}

func newProber(cfg config.ProbeConfig) *probe.Prober {
	return probe.New(probe.Options{
		Method:         cfg.Method,
		ConnectTimeout: cfg.ConnectTimeoutDuration(),
		Timeout:        cfg.TimeoutDuration(),
		UserAgent:      cfg.UserAgent,
	})
}
