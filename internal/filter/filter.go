package filter

import (
	"context"
	"log/slog"

	"github.com/angeloszaimis/provider-filter/internal/metrics"
	"github.com/angeloszaimis/provider-filter/internal/probe"
	"github.com/angeloszaimis/provider-filter/internal/provider"
)

// Prober checks a single URL.
type Prober interface {
	Probe(ctx context.Context, rawURL string) probe.Result
}

type Filter struct {
	logger *slog.Logger
	prober Prober
	tally  *metrics.Tally
}

func New(logger *slog.Logger, prober Prober) *Filter {
	return &Filter{
		logger: logger,
		prober: prober,
		tally:  metrics.NewTally(),
	}
}

// Run returns the ordered subsequence of providers that passed their probe.
// Probe failures only exclude the record; the returned error is non-nil
// solely when ctx ends before every provider was checked.
func (f *Filter) Run(ctx context.Context, providers provider.List) (provider.List, error) {
	reachable := make(provider.List, 0, len(providers))

	for i, p := range providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rawURL, ok := p.URL()
		if !ok {
			f.tally.RecordSkipped()
			f.logger.Debug("Skipping provider without url", slog.Int("index", i))
			continue
		}

		res := f.prober.Probe(ctx, rawURL)
		f.tally.RecordProbe(res.Latency, res.StatusCode, res.Reachable)

		if !res.Reachable {
			f.logger.Debug("Provider unreachable",
				slog.String("url", rawURL),
				slog.Int("status", res.StatusCode),
				slog.Duration("latency", res.Latency),
				slog.Any("err", res.Err))
			continue
		}

		f.logger.Debug("Provider reachable",
			slog.String("url", rawURL),
			slog.Int("status", res.StatusCode),
			slog.Duration("latency", res.Latency))

		reachable = append(reachable, p)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return reachable, nil
}

// Summary returns the tally of every probe run so far.
func (f *Filter) Summary() metrics.Snapshot {
	return f.tally.Snapshot()
}
