package pagesim

import (
	"fmt"
	"io"
	"strings"
)

// Statistics accumulates the counters of a simulation run.
type Statistics struct {
	References    uint64 `json:"references"`
	Faults        uint64 `json:"faults"`
	Evictions     uint64 `json:"evictions"`
	SecondChances uint64 `json:"second_chances"`
}

func (s *Statistics) record(hit bool) {
	s.References++
	if !hit {
		s.Faults++
	}
}

// Hits returns the number of references that found their page resident.
func (s Statistics) Hits() uint64 {
	return s.References - s.Faults
}

// FaultRate returns faults/references. The bool return value is false when
// no reference has been processed.
func (s Statistics) FaultRate() (float64, bool) {
	if s.References == 0 {
		return 0, false
	}

	return float64(s.Faults) / float64(s.References), true
}

// FaultRateString renders the fault rate as a percentage with two decimals,
// or "n/a" when there are no references.
func (s Statistics) FaultRateString() string {
	rate, ok := s.FaultRate()
	if !ok {
		return "n/a"
	}

	return fmt.Sprintf("%.2f%%", rate*100)
}

const reportRule = "========================================"

// WriteReport renders the summary of a run.
func (s Statistics) WriteReport(w io.Writer) error {
	b := new(strings.Builder)

	fmt.Fprintln(b, reportRule)
	fmt.Fprintln(b, "  SIMULATION STATISTICS")
	fmt.Fprintln(b, reportRule)
	fmt.Fprintf(b, "Total references:     %d\n", s.References)
	fmt.Fprintf(b, "Page faults:          %d\n", s.Faults)
	fmt.Fprintf(b, "Page hits:            %d\n", s.Hits())
	fmt.Fprintf(b, "Evictions:            %d\n", s.Evictions)
	fmt.Fprintf(b, "Fault rate:           %s\n", s.FaultRateString())
	fmt.Fprintln(b, reportRule)

	_, err := io.WriteString(w, b.String())

	return err
}
