package vm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AddressDecomposer", func() {
	It("should reject page sizes that are not powers of two", func() {
		for _, size := range []uint64{0, 3, 6, 1000, 4097} {
			_, err := NewAddressDecomposer(size)
			Expect(err).To(MatchError(ErrInvalidPageSize))
		}
	})

	It("should derive the offset bits and the mask", func() {
		d, err := NewAddressDecomposer(4096)

		Expect(err).ToNot(HaveOccurred())
		Expect(d.Log2PageSize()).To(Equal(uint64(12)))
		Expect(d.OffsetMask()).To(Equal(uint64(0xfff)))
		Expect(d.PageSize()).To(Equal(uint64(4096)))
	})

	It("should accept a page size of one byte", func() {
		d, err := NewAddressDecomposer(1)

		Expect(err).ToNot(HaveOccurred())
		vpn, offset := d.Decompose(0xffffffffffffffff)
		Expect(vpn).To(Equal(uint64(0xffffffffffffffff)))
		Expect(offset).To(BeZero())
	})

	It("should split an address", func() {
		d, _ := NewAddressDecomposer(4)

		vpn, offset := d.Decompose(13)

		Expect(vpn).To(Equal(uint64(3)))
		Expect(offset).To(Equal(uint64(1)))
	})

	It("should keep the offset bits when composing", func() {
		d, _ := NewAddressDecomposer(4096)

		for _, addr := range []uint64{0, 0x1, 0xfff, 0x12345678, 0xdeadbeefcafe} {
			_, offset := d.Decompose(addr)
			paddr := d.Compose(7, offset)

			Expect(paddr & d.OffsetMask()).To(Equal(addr & d.OffsetMask()))
			Expect(paddr >> d.Log2PageSize()).To(Equal(uint64(7)))
		}
	})

	It("should align to page", func() {
		d, _ := NewAddressDecomposer(4096)

		Expect(d.AlignToPage(0x1234)).To(Equal(uint64(0x1000)))
	})
})
