package metrics_test

import (
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/provider-filter/internal/metrics"
)

var _ = Describe("Tally", func() {
	var t *metrics.Tally

	BeforeEach(func() {
		t = metrics.NewTally()
	})

	Describe("RecordProbe", func() {
		It("should count reachable and unreachable probes", func() {
			t.RecordProbe(100*time.Millisecond, 200, true)
			t.RecordProbe(200*time.Millisecond, 503, false)
			t.RecordProbe(2*time.Second, 0, false)

			snap := t.Snapshot()
			Expect(snap.Total).To(Equal(3))
			Expect(snap.Reachable).To(Equal(1))
			Expect(snap.Unreachable).To(Equal(2))
		})

		It("should track status codes and ignore missing responses", func() {
			t.RecordProbe(100*time.Millisecond, 200, true)
			t.RecordProbe(100*time.Millisecond, 200, true)
			t.RecordProbe(100*time.Millisecond, 404, false)
			t.RecordProbe(100*time.Millisecond, 0, false)

			snap := t.Snapshot()
			Expect(snap.StatusCodes).To(Equal(map[int]int{200: 2, 404: 1}))
		})

		It("should average latencies", func() {
			t.RecordProbe(100*time.Millisecond, 200, true)
			t.RecordProbe(200*time.Millisecond, 200, true)

			Expect(t.Snapshot().AvgLatency).To(Equal(150 * time.Millisecond))
		})

		It("should calculate percentiles correctly", func() {
			for i := 1; i <= 100; i++ {
				t.RecordProbe(time.Duration(i)*time.Millisecond, 200, true)
			}

			snap := t.Snapshot()
			Expect(snap.P50Latency).To(BeNumerically("~", 50*time.Millisecond, 1*time.Millisecond))
			Expect(snap.P95Latency).To(BeNumerically("~", 95*time.Millisecond, 1*time.Millisecond))
			Expect(snap.P99Latency).To(BeNumerically("~", 99*time.Millisecond, 1*time.Millisecond))
		})
	})

	Describe("RecordSkipped", func() {
		It("should count skipped records in the total", func() {
			t.RecordSkipped()
			t.RecordProbe(100*time.Millisecond, 200, true)

			snap := t.Snapshot()
			Expect(snap.Skipped).To(Equal(1))
			Expect(snap.Total).To(Equal(2))
		})
	})

	Describe("Snapshot", func() {
		It("should handle an empty run", func() {
			snap := t.Snapshot()

			Expect(snap.Total).To(BeZero())
			Expect(snap.AvgLatency).To(BeZero())
			Expect(snap.StatusCodes).To(BeEmpty())
		})

		It("should include elapsed time", func() {
			time.Sleep(10 * time.Millisecond)
			Expect(t.Snapshot().Elapsed).To(BeNumerically(">", 0))
		})

		It("should return an independent copy", func() {
			t.RecordProbe(100*time.Millisecond, 200, true)
			snap1 := t.Snapshot()

			t.RecordProbe(100*time.Millisecond, 200, true)
			snap2 := t.Snapshot()

			Expect(snap1.StatusCodes[200]).To(Equal(1))
			Expect(snap2.StatusCodes[200]).To(Equal(2))
		})

		It("should flatten into log attributes", func() {
			t.RecordProbe(100*time.Millisecond, 200, true)
			t.RecordSkipped()

			keys := map[string]slog.Value{}
			for _, a := range t.Snapshot().LogAttrs() {
				attr, ok := a.(slog.Attr)
				Expect(ok).To(BeTrue())
				keys[attr.Key] = attr.Value
			}

			Expect(keys).To(HaveLen(10))
			Expect(keys["total"].Int64()).To(Equal(int64(2)))
			Expect(keys["reachable"].Int64()).To(Equal(int64(1)))
			Expect(keys["skipped"].Int64()).To(Equal(int64(1)))
			Expect(keys["avg_latency"].Duration()).To(Equal(100 * time.Millisecond))
			Expect(keys).To(HaveKey("status_codes"))
		})
	})
})
