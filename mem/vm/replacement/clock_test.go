package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/mem/vm"
	"go.uber.org/mock/gomock"
)

var _ = Describe("ClockEvictor", func() {
	var (
		mockCtrl  *gomock.Controller
		pageTable *MockPageTable
		frames    *vm.FrameTable
		evictor   *ClockEvictor
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pageTable = NewMockPageTable(mockCtrl)
		frames = vm.NewFrameTable(3)
		evictor = NewClockEvictor(frames, pageTable)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic without a frame table", func() {
		Expect(func() { NewClockEvictor(nil, pageTable) }).To(Panic())
	})

	It("should return a free frame at the hand", func() {
		frame := evictor.SelectVictim()

		Expect(frame).To(Equal(0))
		Expect(evictor.Hand()).To(Equal(1))
	})

	It("should evict an unreferenced page", func() {
		frames.Assign(0, 10)
		pageTable.EXPECT().
			Lookup(uint64(10)).
			Return(vm.PageTableEntry{VPN: 10, Frame: 0, Present: true}, true)

		frame := evictor.SelectVictim()

		Expect(frame).To(Equal(0))
		Expect(evictor.Hand()).To(Equal(1))
		Expect(evictor.SecondChances()).To(BeZero())
	})

	It("should give referenced pages a second chance", func() {
		frames.Assign(0, 10)
		frames.Assign(1, 11)
		frames.Assign(2, 12)

		gomock.InOrder(
			pageTable.EXPECT().
				Lookup(uint64(10)).
				Return(vm.PageTableEntry{VPN: 10, Frame: 0, Present: true, Referenced: true}, true),
			pageTable.EXPECT().ClearReferenced(uint64(10)),
			pageTable.EXPECT().
				Lookup(uint64(11)).
				Return(vm.PageTableEntry{VPN: 11, Frame: 1, Present: true}, true),
		)

		frame := evictor.SelectVictim()

		Expect(frame).To(Equal(1))
		Expect(evictor.Hand()).To(Equal(2))
		Expect(evictor.SecondChances()).To(Equal(uint64(1)))
		Expect(evictor.Inspections()).To(Equal(uint64(2)))
	})

	It("should panic if an occupant is missing from the page table", func() {
		frames.Assign(0, 10)
		pageTable.EXPECT().
			Lookup(uint64(10)).
			Return(vm.PageTableEntry{VPN: 10}, false)

		Expect(func() { evictor.SelectVictim() }).To(Panic())
	})
})

var _ = Describe("ClockEvictor with a page table", func() {
	var (
		pageTable vm.PageTable
		frames    *vm.FrameTable
		evictor   *ClockEvictor
	)

	fill := func(n int) {
		frames = vm.NewFrameTable(n)
		pageTable = vm.NewPageTable()
		evictor = NewClockEvictor(frames, pageTable)

		for i := 0; i < n; i++ {
			frames.Assign(i, uint64(100+i))
			pageTable.Install(uint64(100+i), i)
		}
	}

	It("should stop within two revolutions when every bit is set", func() {
		for _, n := range []int{1, 2, 3, 8, 64} {
			fill(n)

			frame := evictor.SelectVictim()

			Expect(frame).To(Equal(0))
			Expect(evictor.Inspections()).To(Equal(uint64(n + 1)))
			Expect(evictor.Inspections()).To(BeNumerically("<=", 2*n))
			Expect(evictor.SecondChances()).To(Equal(uint64(n)))
		}
	})

	It("should clear the bits it passes", func() {
		fill(4)
		pageTable.ClearReferenced(102)

		frame := evictor.SelectVictim()

		Expect(frame).To(Equal(2))
		Expect(evictor.Hand()).To(Equal(3))
		for _, vpn := range []uint64{100, 101} {
			entry, _ := pageTable.Lookup(vpn)
			Expect(entry.Referenced).To(BeFalse())
		}
		entry, _ := pageTable.Lookup(103)
		Expect(entry.Referenced).To(BeTrue())
	})

	It("should continue from where the hand stopped", func() {
		fill(3)
		for _, vpn := range []uint64{100, 101, 102} {
			pageTable.ClearReferenced(vpn)
		}

		Expect(evictor.SelectVictim()).To(Equal(0))
		Expect(evictor.SelectVictim()).To(Equal(1))
		Expect(evictor.SelectVictim()).To(Equal(2))
		Expect(evictor.SelectVictim()).To(Equal(0))
	})

	It("should never evict a page referenced since the last visit", func() {
		fill(3)
		for _, vpn := range []uint64{100, 101, 102} {
			pageTable.ClearReferenced(vpn)
		}
		pageTable.MarkReferenced(100)

		frame := evictor.SelectVictim()

		Expect(frame).To(Equal(1))
		entry, _ := pageTable.Lookup(100)
		Expect(entry.Referenced).To(BeFalse())
	})
})
