// Package pagesim simulates the memory-management unit of a single address
// space. Every reference of a trace is translated to a physical address, and
// frames are reclaimed with the Clock policy when memory is full.
//
// A Simulator is not safe for concurrent use. Wrap it in a Serialized to
// observe it from another goroutine.
package pagesim

import (
	"fmt"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
)

// Simulator owns the page table, the frame table and the clock hand of one
// simulation run.
type Simulator struct {
	config     Config
	decomposer vm.AddressDecomposer
	pageTable  vm.PageTable
	frameTable *vm.FrameTable
	evictor    *replacement.ClockEvictor
	tracers    []Tracer

	stats Statistics
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config {
	return s.config
}

// Decomposer returns the address decomposer of the simulator.
func (s *Simulator) Decomposer() vm.AddressDecomposer {
	return s.decomposer
}

// Statistics returns a copy of the counters.
func (s *Simulator) Statistics() Statistics {
	stats := s.stats
	stats.SecondChances = s.evictor.SecondChances()

	return stats
}

// AcceptTracer adds a tracer after the simulator is built.
func (s *Simulator) AcceptTracer(t Tracer) {
	s.tracers = append(s.tracers, t)
}

// Lookup returns the page table entry of a virtual page.
func (s *Simulator) Lookup(vpn uint64) (vm.PageTableEntry, bool) {
	return s.pageTable.Lookup(vpn)
}

// Process translates one virtual address. The only error is a capacity
// error when the page number exceeds the configured maximum; such a
// reference leaves the state and the counters untouched.
func (s *Simulator) Process(addr uint64) (Reference, error) {
	vpn, offset := s.decomposer.Decompose(addr)

	if s.config.MaxPageNumber != 0 && vpn > s.config.MaxPageNumber {
		return Reference{}, NewError(ErrKindCapacity, "process",
			fmt.Sprintf("address 0x%x maps to page %d, above the maximum %d",
				addr, vpn, s.config.MaxPageNumber), nil)
	}

	ref := Reference{
		Seq:    s.stats.References + 1,
		VAddr:  addr,
		VPN:    vpn,
		Offset: offset,
	}

	entry, present := s.pageTable.Lookup(vpn)
	if present {
		ref.Hit = true
		ref.Frame = entry.Frame
		s.pageTable.MarkReferenced(vpn)
	} else {
		s.handleFault(&ref)
	}

	s.stats.record(ref.Hit)
	ref.PAddr = s.decomposer.Compose(ref.Frame, offset)

	for _, t := range s.tracers {
		t.Trace(ref)
	}

	return ref, nil
}

func (s *Simulator) handleFault(ref *Reference) {
	frame, found := s.frameTable.FindFree()
	if !found {
		frame = s.evictor.SelectVictim()

		if victim, occupied := s.frameTable.Occupant(frame); occupied {
			s.pageTable.Evict(victim)
			s.stats.Evictions++
			ref.Evicted = true
			ref.EvictedVPN = victim
		}
	}

	s.frameTable.Assign(frame, ref.VPN)
	s.pageTable.Install(ref.VPN, frame)
	ref.Frame = frame
}

// Run processes every address of src in order. It stops at the first error
// of the source or of Process.
func (s *Simulator) Run(src AddressSource) error {
	for src.Next() {
		if _, err := s.Process(src.Address()); err != nil {
			return err
		}
	}

	return src.Err()
}
