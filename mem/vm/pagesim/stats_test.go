package pagesim

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Statistics", func() {
	It("should not divide by zero", func() {
		s := Statistics{}

		_, ok := s.FaultRate()

		Expect(ok).To(BeFalse())
		Expect(s.FaultRateString()).To(Equal("n/a"))
	})

	It("should compute the fault rate", func() {
		s := Statistics{}
		s.record(false)
		s.record(true)
		s.record(true)

		rate, ok := s.FaultRate()

		Expect(ok).To(BeTrue())
		Expect(rate).To(BeNumerically("~", 1.0/3.0, 1e-9))
		Expect(s.Hits()).To(Equal(uint64(2)))
		Expect(s.FaultRateString()).To(Equal("33.33%"))
	})

	It("should write a report", func() {
		s := Statistics{References: 4, Faults: 1, Evictions: 0}
		b := new(strings.Builder)

		Expect(s.WriteReport(b)).To(Succeed())

		out := b.String()
		Expect(out).To(ContainSubstring("Total references:     4\n"))
		Expect(out).To(ContainSubstring("Page faults:          1\n"))
		Expect(out).To(ContainSubstring("Fault rate:           25.00%\n"))
	})

	It("should report an undefined rate without references", func() {
		b := new(strings.Builder)

		Expect(Statistics{}.WriteReport(b)).To(Succeed())

		Expect(b.String()).To(ContainSubstring("Fault rate:           n/a\n"))
	})
})
