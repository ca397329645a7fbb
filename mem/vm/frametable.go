package vm

type frameSlot struct {
	vpn      uint64
	occupied bool
}

// A FrameTable records which virtual page occupies each physical frame. The
// number of frames is fixed when the table is created.
type FrameTable struct {
	slots   []frameSlot
	numFree int
}

// NewFrameTable creates a FrameTable with all frames free.
func NewFrameTable(numFrames int) *FrameTable {
	if numFrames <= 0 {
		panic("frame table must have at least one frame")
	}

	return &FrameTable{
		slots:   make([]frameSlot, numFrames),
		numFree: numFrames,
	}
}

// NumFrames returns the number of frames.
func (t *FrameTable) NumFrames() int {
	return len(t.slots)
}

// NumFree returns the number of free frames.
func (t *FrameTable) NumFree() int {
	return t.numFree
}

// FindFree returns the lowest-indexed free frame. The bool return value is
// false if every frame is occupied.
func (t *FrameTable) FindFree() (int, bool) {
	if t.numFree == 0 {
		return 0, false
	}

	for i, s := range t.slots {
		if !s.occupied {
			return i, true
		}
	}

	return 0, false
}

// Occupant returns the virtual page number held by a frame. The bool return
// value is false if the frame is free.
func (t *FrameTable) Occupant(frame int) (uint64, bool) {
	s := t.slots[frame]
	return s.vpn, s.occupied
}

// Assign places a page into a frame, replacing any previous occupant.
func (t *FrameTable) Assign(frame int, vpn uint64) {
	if !t.slots[frame].occupied {
		t.numFree--
	}

	t.slots[frame] = frameSlot{vpn: vpn, occupied: true}
}

// Free marks a frame as free.
func (t *FrameTable) Free(frame int) {
	if t.slots[frame].occupied {
		t.numFree++
	}

	t.slots[frame] = frameSlot{}
}
