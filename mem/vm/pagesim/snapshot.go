package pagesim

import "fmt"

// FrameState is the content of one frame at snapshot time.
type FrameState struct {
	Frame      int    `json:"frame"`
	Free       bool   `json:"free"`
	VPN        uint64 `json:"vpn"`
	Referenced bool   `json:"referenced"`
}

// A Snapshot is a copy of the simulator state between two references.
type Snapshot struct {
	NumFrames int          `json:"num_frames"`
	PageSize  uint64       `json:"page_size"`
	Hand      int          `json:"hand"`
	Frames    []FrameState `json:"frames"`
	Stats     Statistics   `json:"stats"`
}

// Snapshot copies the frame table, the clock hand and the counters.
func (s *Simulator) Snapshot() Snapshot {
	snap := Snapshot{
		NumFrames: s.frameTable.NumFrames(),
		PageSize:  s.decomposer.PageSize(),
		Hand:      s.evictor.Hand(),
		Frames:    make([]FrameState, s.frameTable.NumFrames()),
		Stats:     s.Statistics(),
	}

	for i := range snap.Frames {
		state := FrameState{Frame: i, Free: true}

		if vpn, occupied := s.frameTable.Occupant(i); occupied {
			entry, _ := s.pageTable.Lookup(vpn)
			state.Free = false
			state.VPN = vpn
			state.Referenced = entry.Referenced
		}

		snap.Frames[i] = state
	}

	return snap
}

// CheckInvariants verifies that the present pages and the occupied frames
// form a bijection and that the counters are consistent.
func (s *Simulator) CheckInvariants() error {
	occupied := 0

	for i := 0; i < s.frameTable.NumFrames(); i++ {
		vpn, ok := s.frameTable.Occupant(i)
		if !ok {
			continue
		}

		occupied++

		entry, present := s.pageTable.Lookup(vpn)
		if !present {
			return fmt.Errorf("frame %d holds page %d, which is not present",
				i, vpn)
		}

		if entry.Frame != i {
			return fmt.Errorf("frame %d holds page %d, which maps to frame %d",
				i, vpn, entry.Frame)
		}
	}

	if occupied != s.pageTable.NumPresent() {
		return fmt.Errorf("%d frames are occupied but %d pages are present",
			occupied, s.pageTable.NumPresent())
	}

	if occupied+s.frameTable.NumFree() != s.frameTable.NumFrames() {
		return fmt.Errorf("free frame count %d is inconsistent",
			s.frameTable.NumFree())
	}

	if s.stats.Faults > s.stats.References {
		return fmt.Errorf("faults %d exceed references %d",
			s.stats.Faults, s.stats.References)
	}

	return nil
}
