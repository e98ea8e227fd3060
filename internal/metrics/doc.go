// Package metrics tallies the outcome of a filtering run.
//
// A Tally records one entry per provider: probes that reached the server,
// probes that failed, and records skipped because they carried no usable
// URL. Snapshot summarises latency with percentile calculations (P50, P95,
// P99) and the distribution of HTTP status codes.
//
// Example usage:
//
//	tally := metrics.NewTally()
//	tally.RecordProbe(150*time.Millisecond, 200, true)
//	tally.RecordSkipped()
//
//	snap := tally.Snapshot()
//	logger.Info("run finished", snap.LogAttrs()...)
//
// A Tally belongs to a single run and is not safe for concurrent use.
package metrics
