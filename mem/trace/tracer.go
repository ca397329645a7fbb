// Package trace reads address traces and records what a simulator does with
// every reference.
package trace

import (
	"context"
	"fmt"
	"log"

	"github.com/rs/xid"
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/vm/pagesim"
)

// referenceEntry represents a translated reference in the database. SQLite
// integers are signed, so addresses are stored as hex strings and page
// numbers keep their bit pattern in an int64.
type referenceEntry struct {
	RunID      string
	Seq        int64
	VAddr      string
	VPN        int64
	PageOffset int64
	Hit        bool
	Frame      int
	PAddr      string
	Evicted    bool
	EvictedVPN int64
}

// A Summary is the final statistics of a recorded run. FaultRate is only
// meaningful when NumReferences is positive.
type Summary struct {
	RunID         string
	NumFrames     int
	PageSize      int64
	NumReferences int64
	Faults        int64
	Evictions     int64
	SecondChances int64
	FaultRate     float64
}

const (
	referenceTable = "page_references"
	summaryTable   = "run_summaries"
)

// A LogTracer prints one line per reference.
type LogTracer struct {
	logger *log.Logger
}

// NewLogTracer creates a new LogTracer.
func NewLogTracer(logger *log.Logger) *LogTracer {
	return &LogTracer{logger: logger}
}

// Trace prints the reference.
func (t *LogTracer) Trace(ref pagesim.Reference) {
	t.logger.Printf("VA=0x%x, VPN=%d, offset=%d, %s, frame=%d, PA=0x%x\n",
		ref.VAddr,
		ref.VPN,
		ref.Offset,
		ref.Outcome(),
		ref.Frame,
		ref.PAddr,
	)
}

// A DBTracer records every reference of a run with a data recorder.
type DBTracer struct {
	runID        string
	dataRecorder datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer with a fresh run ID and creates its tables.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{
		runID:        xid.New().String(),
		dataRecorder: dataRecorder,
	}

	t.dataRecorder.CreateTable(referenceTable, referenceEntry{})
	t.dataRecorder.CreateTable(summaryTable, Summary{})

	return t
}

// RunID returns the ID that tags every row of this run.
func (t *DBTracer) RunID() string {
	return t.runID
}

// Trace records the reference.
func (t *DBTracer) Trace(ref pagesim.Reference) {
	t.dataRecorder.InsertData(referenceTable, referenceEntry{
		RunID:      t.runID,
		Seq:        int64(ref.Seq),
		VAddr:      fmt.Sprintf("0x%x", ref.VAddr),
		VPN:        int64(ref.VPN),
		PageOffset: int64(ref.Offset),
		Hit:        ref.Hit,
		Frame:      ref.Frame,
		PAddr:      fmt.Sprintf("0x%x", ref.PAddr),
		Evicted:    ref.Evicted,
		EvictedVPN: int64(ref.EvictedVPN),
	})
}

// RecordSummary records the final statistics of the run and flushes the
// recorder.
func (t *DBTracer) RecordSummary(config pagesim.Config, stats pagesim.Statistics) {
	rate, _ := stats.FaultRate()

	t.dataRecorder.InsertData(summaryTable, Summary{
		RunID:         t.runID,
		NumFrames:     config.NumFrames,
		PageSize:      int64(config.PageSize),
		NumReferences: int64(stats.References),
		Faults:        int64(stats.Faults),
		Evictions:     int64(stats.Evictions),
		SecondChances: int64(stats.SecondChances),
		FaultRate:     rate,
	})

	t.dataRecorder.Flush()
}

// FaultRateString renders the fault rate as a percentage with two decimals,
// or "n/a" for a run without references.
func (s Summary) FaultRateString() string {
	if s.NumReferences == 0 {
		return "n/a"
	}

	return fmt.Sprintf("%.2f%%", s.FaultRate*100)
}

// LoadSummaries reads the run summaries of a recording, oldest first.
func LoadSummaries(
	ctx context.Context,
	reader datarecording.DataReader,
) ([]Summary, error) {
	reader.MapTable(summaryTable, Summary{})

	results, _, err := reader.Query(ctx, summaryTable,
		datarecording.QueryParams{OrderBy: "rowid"})
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}

	summaries := make([]Summary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, *r.(*Summary))
	}

	return summaries, nil
}
