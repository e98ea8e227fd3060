package metrics

import (
	"log/slog"
	"sort"
	"time"
)

type Tally struct {
	reachable   int
	unreachable int
	skipped     int
	latencies   []time.Duration
	statusCodes map[int]int
	startTime   time.Time
}

type Snapshot struct {
	Total       int
	Reachable   int
	Unreachable int
	Skipped     int
	Elapsed     time.Duration
	AvgLatency  time.Duration
	P50Latency  time.Duration
	P95Latency  time.Duration
	P99Latency  time.Duration
	StatusCodes map[int]int
}

func NewTally() *Tally {
	return &Tally{
		statusCodes: make(map[int]int),
		startTime:   time.Now(),
	}
}

// RecordProbe adds one probe outcome. A zero status code means no
// response arrived and is left out of the distribution.
func (t *Tally) RecordProbe(latency time.Duration, statusCode int, reachable bool) {
	if reachable {
		t.reachable++
	} else {
		t.unreachable++
	}

	if latency > 0 {
		t.latencies = append(t.latencies, latency)
	}

	if statusCode != 0 {
		t.statusCodes[statusCode]++
	}
}

// RecordSkipped counts a record that was excluded without probing.
func (t *Tally) RecordSkipped() {
	t.skipped++
}

func (t *Tally) Snapshot() Snapshot {
	snap := Snapshot{
		Total:       t.reachable + t.unreachable + t.skipped,
		Reachable:   t.reachable,
		Unreachable: t.unreachable,
		Skipped:     t.skipped,
		Elapsed:     time.Since(t.startTime),
		StatusCodes: make(map[int]int, len(t.statusCodes)),
	}

	for code, n := range t.statusCodes {
		snap.StatusCodes[code] = n
	}

	if len(t.latencies) > 0 {
		sorted := make([]time.Duration, len(t.latencies))
		copy(sorted, t.latencies)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		snap.AvgLatency = average(sorted)
		snap.P50Latency = percentile(sorted, 0.50)
		snap.P95Latency = percentile(sorted, 0.95)
		snap.P99Latency = percentile(sorted, 0.99)
	}

	return snap
}

// LogAttrs flattens the snapshot for a single structured log line.
func (s Snapshot) LogAttrs() []any {
	return []any{
		slog.Int("total", s.Total),
		slog.Int("reachable", s.Reachable),
		slog.Int("unreachable", s.Unreachable),
		slog.Int("skipped", s.Skipped),
		slog.Duration("elapsed", s.Elapsed),
		slog.Duration("avg_latency", s.AvgLatency),
		slog.Duration("p50_latency", s.P50Latency),
		slog.Duration("p95_latency", s.P95Latency),
		slog.Duration("p99_latency", s.P99Latency),
		slog.Any("status_codes", s.StatusCodes),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
