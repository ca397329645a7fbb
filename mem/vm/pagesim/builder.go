package pagesim

import (
	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
)

// A Builder can build simulators.
type Builder struct {
	config  Config
	tracers []Tracer
}

// MakeBuilder creates a new builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b Builder) WithConfig(c Config) Builder {
	b.config = c
	return b
}

// WithNumFrames sets the number of physical frames.
func (b Builder) WithNumFrames(n int) Builder {
	b.config.NumFrames = n
	return b
}

// WithPageSize sets the page size in bytes. It must be a power of two.
func (b Builder) WithPageSize(pageSize uint64) Builder {
	b.config.PageSize = pageSize
	return b
}

// WithMaxPageNumber sets the largest virtual page number the simulator
// accepts. Zero means unbounded.
func (b Builder) WithMaxPageNumber(vpn uint64) Builder {
	b.config.MaxPageNumber = vpn
	return b
}

// WithTracer adds a tracer that observes every reference.
func (b Builder) WithTracer(t Tracer) Builder {
	b.tracers = append(b.tracers[:len(b.tracers):len(b.tracers)], t)
	return b
}

// Build validates the configuration and returns a simulator with every frame
// free.
func (b Builder) Build() (*Simulator, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	decomposer, err := vm.NewAddressDecomposer(b.config.PageSize)
	if err != nil {
		return nil, NewError(ErrKindConfiguration, "build simulator",
			"invalid page size", err)
	}

	s := &Simulator{
		config:     b.config,
		decomposer: decomposer,
		pageTable:  vm.NewPageTable(),
		frameTable: vm.NewFrameTable(b.config.NumFrames),
		tracers:    append([]Tracer(nil), b.tracers...),
	}
	s.evictor = replacement.NewClockEvictor(s.frameTable, s.pageTable)

	return s, nil
}
