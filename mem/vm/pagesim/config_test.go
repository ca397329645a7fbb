package pagesim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/mem/vm"
)

var _ = Describe("Config", func() {
	It("should accept the default configuration", func() {
		Expect(DefaultConfig().Validate()).To(Succeed())
	})

	DescribeTable("invalid configurations",
		func(c Config, kind ErrorKind) {
			err := c.Validate()

			Expect(err).To(HaveOccurred())
			Expect(KindOf(err)).To(Equal(kind))
		},
		Entry("zero frames", Config{NumFrames: 0, PageSize: 4096},
			ErrKindConfiguration),
		Entry("negative frames", Config{NumFrames: -1, PageSize: 4096},
			ErrKindConfiguration),
		Entry("zero page size", Config{NumFrames: 4, PageSize: 0},
			ErrKindConfiguration),
		Entry("page size not a power of two", Config{NumFrames: 4, PageSize: 1000},
			ErrKindConfiguration),
		Entry("too many frames", Config{NumFrames: MaxFrames + 1, PageSize: 4096},
			ErrKindResource),
	)

	It("should wrap the page size error", func() {
		err := Config{NumFrames: 1, PageSize: 12}.Validate()

		Expect(errors.Is(err, ErrConfiguration)).To(BeTrue())
		Expect(errors.Is(err, vm.ErrInvalidPageSize)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("not a power of two"))
	})

	It("should refuse to build an invalid simulator", func() {
		sim, err := MakeBuilder().WithNumFrames(0).Build()

		Expect(sim).To(BeNil())
		Expect(errors.Is(err, ErrConfiguration)).To(BeTrue())
	})
})

var _ = Describe("Error", func() {
	It("should render operation, message and cause", func() {
		err := NewError(ErrKindIO, "open trace", "cannot open t.txt",
			errors.New("no such file"))

		Expect(err.Error()).To(Equal("open trace: cannot open t.txt: no such file"))
	})

	It("should fall back to the kind name", func() {
		err := NewError(ErrKindCapacity, "", "", nil)

		Expect(err.Error()).To(Equal("capacity error"))
	})

	It("should match by kind", func() {
		err := NewError(ErrKindMalformedTrace, "read", "line 3", nil)

		Expect(errors.Is(err, ErrMalformedTrace)).To(BeTrue())
		Expect(errors.Is(err, ErrIO)).To(BeFalse())
		Expect(KindOf(errors.New("other"))).To(Equal(ErrKindUnknown))
	})
})
