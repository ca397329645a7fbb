// Package vm provides the models for single-level address translation: the
// decomposition of virtual addresses, the page table and the frame table.
package vm

import (
	"errors"
	"math/bits"
)

// ErrInvalidPageSize is returned when a page size is zero or not a power of
// two.
var ErrInvalidPageSize = errors.New("page size must be a positive power of two")

// An AddressDecomposer splits virtual addresses into a virtual page number
// and an in-page offset, and composes physical addresses back from a frame
// number and an offset.
type AddressDecomposer struct {
	log2PageSize uint64
	mask         uint64
}

// NewAddressDecomposer creates an AddressDecomposer for the given page size.
func NewAddressDecomposer(pageSize uint64) (AddressDecomposer, error) {
	if !IsPowerOfTwo(pageSize) {
		return AddressDecomposer{}, ErrInvalidPageSize
	}

	log2PageSize := uint64(bits.TrailingZeros64(pageSize))

	return AddressDecomposer{
		log2PageSize: log2PageSize,
		mask:         (uint64(1) << log2PageSize) - 1,
	}, nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// Log2PageSize returns the number of offset bits.
func (d AddressDecomposer) Log2PageSize() uint64 {
	return d.log2PageSize
}

// OffsetMask returns the mask that extracts the offset of an address.
func (d AddressDecomposer) OffsetMask() uint64 {
	return d.mask
}

// PageSize returns the page size in bytes.
func (d AddressDecomposer) PageSize() uint64 {
	return d.mask + 1
}

// Decompose returns the virtual page number and the offset of an address.
func (d AddressDecomposer) Decompose(addr uint64) (vpn, offset uint64) {
	return addr >> d.log2PageSize, addr & d.mask
}

// Compose builds the physical address of an offset inside a frame.
func (d AddressDecomposer) Compose(frame int, offset uint64) uint64 {
	return (uint64(frame) << d.log2PageSize) | (offset & d.mask)
}

// AlignToPage clears the offset bits of an address.
func (d AddressDecomposer) AlignToPage(addr uint64) uint64 {
	return (addr >> d.log2PageSize) << d.log2PageSize
}
