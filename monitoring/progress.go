package monitoring

import (
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sarchlab/pagesim/mem/vm/pagesim"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// NewProgressBar creates a progress bar. A Total of zero means the total is
// not known in advance.
func NewProgressBar(name string, total uint64) *ProgressBar {
	return &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// A ProgressReport is a copy of a ProgressBar at one point in time.
type ProgressReport struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// Report copies the state of the bar.
func (b *ProgressBar) Report() ProgressReport {
	b.Lock()
	defer b.Unlock()

	return ProgressReport{
		ID:        b.ID,
		Name:      b.Name,
		StartTime: b.StartTime,
		Total:     b.Total,
		Finished:  b.Finished,
	}
}

// Tracer returns a tracer that counts every processed reference as
// finished.
func (b *ProgressBar) Tracer() pagesim.Tracer {
	return pagesim.TracerFunc(func(pagesim.Reference) {
		b.IncrementFinished(1)
	})
}
