package provider_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/provider-filter/internal/provider"
)

var _ = Describe("Record", func() {
	Describe("NewRecord", func() {
		It("should extract a string url", func() {
			r, err := provider.NewRecord(json.RawMessage(`{"name":"a","url":"https://a.example.com"}`))
			Expect(err).NotTo(HaveOccurred())

			u, ok := r.URL()
			Expect(ok).To(BeTrue())
			Expect(u).To(Equal("https://a.example.com"))
		})

		DescribeTable("records without a usable url",
			func(raw string) {
				r, err := provider.NewRecord(json.RawMessage(raw))
				Expect(err).NotTo(HaveOccurred())

				_, ok := r.URL()
				Expect(ok).To(BeFalse())
			},
			Entry("missing", `{"name":"a"}`),
			Entry("number", `{"url":42}`),
			Entry("null", `{"url":null}`),
			Entry("object", `{"url":{"href":"https://a.example.com"}}`),
			Entry("empty string", `{"url":""}`),
		)

		It("should reject non-objects", func() {
			_, err := provider.NewRecord(json.RawMessage(`[1]`))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("MarshalJSON", func() {
		It("should emit the original object", func() {
			raw := `{"url":"https://a.example.com","weight":3,"tags":["x","y"]}`
			r, err := provider.NewRecord(json.RawMessage(raw))
			Expect(err).NotTo(HaveOccurred())

			out, err := json.Marshal(r)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(raw))
			Expect(r.Raw()).To(Equal(json.RawMessage(raw)))
		})
	})
})
