package datarecording

import (
	"os"
	"strings"
	"time"
)

const execTable = "exec_info"

const execTimeFormat = "2006-01-02 15:04:05.000000000"

// ExecInfo is one property of a program execution.
type ExecInfo struct {
	Property string
	Value    string
}

// An ExecRecorder records how and when a program ran.
type ExecRecorder struct {
	recorder DataRecorder
	entries  []ExecInfo
}

// NewExecRecorder creates an ExecRecorder that writes to the exec_info table
// of a recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	recorder.CreateTable(execTable, ExecInfo{})

	return &ExecRecorder{recorder: recorder}
}

// Start captures the start time, the command line and the working directory.
func (e *ExecRecorder) Start(args []string) {
	e.entries = append(e.entries,
		ExecInfo{"Start Time", time.Now().Format(execTimeFormat)},
		ExecInfo{"Command", strings.Join(args, " ")},
	)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "unknown"
	}

	e.entries = append(e.entries, ExecInfo{"Working Directory", cwd})
}

// End writes the captured properties along with the end time and flushes
// the recorder.
func (e *ExecRecorder) End() {
	e.entries = append(e.entries,
		ExecInfo{"End Time", time.Now().Format(execTimeFormat)})

	for _, entry := range e.entries {
		e.recorder.InsertData(execTable, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}
