package pagesim

import (
	"fmt"

	"github.com/sarchlab/pagesim/mem/vm"
)

// MaxFrames is the largest frame table the simulator allocates.
const MaxFrames = 1 << 24

// Config holds the parameters of a simulator.
type Config struct {
	NumFrames int
	PageSize  uint64

	// MaxPageNumber bounds the virtual page numbers a trace may reference.
	// Zero means unbounded.
	MaxPageNumber uint64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NumFrames: 8,
		PageSize:  4096,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	const op = "validate config"

	if c.NumFrames <= 0 {
		return NewError(ErrKindConfiguration, op,
			fmt.Sprintf("frame count must be positive, got %d", c.NumFrames), nil)
	}

	if c.NumFrames > MaxFrames {
		return NewError(ErrKindResource, op,
			fmt.Sprintf("frame count %d exceeds the limit of %d",
				c.NumFrames, MaxFrames), nil)
	}

	if c.PageSize == 0 {
		return NewError(ErrKindConfiguration, op,
			"page size must be positive", vm.ErrInvalidPageSize)
	}

	if !vm.IsPowerOfTwo(c.PageSize) {
		return NewError(ErrKindConfiguration, op,
			fmt.Sprintf("page size %d is not a power of two", c.PageSize),
			vm.ErrInvalidPageSize)
	}

	return nil
}
