// Package replacement provides page replacement policies over a frame table.
package replacement

import "github.com/sarchlab/pagesim/mem/vm"

// A VictimFinder decides which frame should be reused when no frame is free.
type VictimFinder interface {
	SelectVictim() int
}

// ClockEvictor implements the second-chance (Clock) policy. A hand circulates
// over the frame table. A frame whose page was referenced since the last
// visit has its reference bit cleared and is skipped; the first frame whose
// page is unreferenced becomes the victim.
type ClockEvictor struct {
	frames *vm.FrameTable
	pages  vm.PageTable

	hand          int
	secondChances uint64
	inspections   uint64
}

// NewClockEvictor creates a ClockEvictor with the hand at frame 0.
func NewClockEvictor(frames *vm.FrameTable, pages vm.PageTable) *ClockEvictor {
	if frames == nil || frames.NumFrames() == 0 {
		panic("clock evictor requires a non-empty frame table")
	}

	return &ClockEvictor{
		frames: frames,
		pages:  pages,
	}
}

// Hand returns the frame the next scan starts from.
func (e *ClockEvictor) Hand() int {
	return e.hand
}

// SecondChances returns the number of reference bits cleared by scans.
func (e *ClockEvictor) SecondChances() uint64 {
	return e.secondChances
}

// Inspections returns the number of frames visited by scans.
func (e *ClockEvictor) Inspections() uint64 {
	return e.inspections
}

// SelectVictim returns the frame to reuse and leaves the hand one past it.
// The caller evicts the displaced page and reassigns the frame.
//
// With n frames the scan visits at most 2n frames: the first revolution
// clears every bit it sees, so the second one must stop.
func (e *ClockEvictor) SelectVictim() int {
	for {
		frame := e.hand
		e.inspections++

		vpn, occupied := e.frames.Occupant(frame)
		if !occupied {
			e.advance()
			return frame
		}

		entry, present := e.pages.Lookup(vpn)
		if !present {
			panic("frame occupant is not present in the page table")
		}

		if !entry.Referenced {
			e.advance()
			return frame
		}

		e.pages.ClearReferenced(vpn)
		e.secondChances++
		e.advance()
	}
}

func (e *ClockEvictor) advance() {
	e.hand = (e.hand + 1) % e.frames.NumFrames()
}
