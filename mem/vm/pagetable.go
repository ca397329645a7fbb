package vm

// A PageTableEntry holds the residency information of a virtual page.
type PageTableEntry struct {
	VPN        uint64
	Frame      int
	Present    bool
	Referenced bool
}

// A PageTable maps virtual page numbers to the frames that hold them.
type PageTable interface {
	// Lookup returns the entry of a page. The bool return value indicates if
	// the page is present in a frame.
	Lookup(vpn uint64) (PageTableEntry, bool)

	// MarkReferenced sets the reference bit of a present page.
	MarkReferenced(vpn uint64)

	// ClearReferenced clears the reference bit of a present page.
	ClearReferenced(vpn uint64)

	// Install maps an absent page to a frame. A freshly installed page is
	// considered referenced.
	Install(vpn uint64, frame int)

	// Evict marks a present page as absent.
	Evict(vpn uint64)

	// NumPresent returns the number of present pages.
	NumPresent() int
}

// NewPageTable creates a new PageTable.
func NewPageTable() PageTable {
	return &pageTableImpl{
		entries: make(map[uint64]*PageTableEntry),
	}
}

// pageTableImpl is the default implementation of a PageTable. Only present
// pages are kept, so the table stays as sparse as the working set.
type pageTableImpl struct {
	entries map[uint64]*PageTableEntry
}

func (pt *pageTableImpl) Lookup(vpn uint64) (PageTableEntry, bool) {
	entry, found := pt.entries[vpn]
	if !found {
		return PageTableEntry{VPN: vpn}, false
	}

	return *entry, true
}

func (pt *pageTableImpl) MarkReferenced(vpn uint64) {
	pt.pageMustExist(vpn).Referenced = true
}

func (pt *pageTableImpl) ClearReferenced(vpn uint64) {
	pt.pageMustExist(vpn).Referenced = false
}

func (pt *pageTableImpl) Install(vpn uint64, frame int) {
	pt.pageMustNotExist(vpn)

	pt.entries[vpn] = &PageTableEntry{
		VPN:        vpn,
		Frame:      frame,
		Present:    true,
		Referenced: true,
	}
}

func (pt *pageTableImpl) Evict(vpn uint64) {
	pt.pageMustExist(vpn)
	delete(pt.entries, vpn)
}

func (pt *pageTableImpl) NumPresent() int {
	return len(pt.entries)
}

func (pt *pageTableImpl) pageMustExist(vpn uint64) *PageTableEntry {
	entry, found := pt.entries[vpn]
	if !found {
		panic("page is not present")
	}

	return entry
}

func (pt *pageTableImpl) pageMustNotExist(vpn uint64) {
	if _, found := pt.entries[vpn]; found {
		panic("page is already present")
	}
}
