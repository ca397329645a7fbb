// Package monitoring turns a running simulation into a web server that
// reports its progress and state.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sarchlab/pagesim/mem/vm/pagesim"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// A Source provides consistent views of a simulation between references.
type Source interface {
	Snapshot() pagesim.Snapshot
}

// minPortNumber is the lowest port the monitor accepts. Zero picks a free
// port.
const minPortNumber = 1000

// Monitor can turn a simulation into a server and allows external
// monitoring of the simulation.
type Monitor struct {
	source     Source
	portNumber int

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	listener net.Listener
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < minPortNumber {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSource sets the simulation to be monitored.
func (m *Monitor) RegisterSource(s Source) {
	m.source = s
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := NewProgressBar(name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the HTTP routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats", m.stats).Methods(http.MethodGet)
	r.HandleFunc("/api/frames", m.frames).Methods(http.MethodGet)
	r.HandleFunc("/api/frames/{frame:[0-9]+}", m.frame).Methods(http.MethodGet)
	r.HandleFunc("/api/progress", m.listProgressBars).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)

	return r
}

// StartServer starts serving the monitor in the background and returns the
// port it listens on.
func (m *Monitor) StartServer() (int, error) {
	listener, err := net.Listen("tcp", m.listenAddress())
	if err != nil {
		return 0, fmt.Errorf("start monitor: %w", err)
	}

	m.listener = listener
	port := listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(os.Stderr,
		"Monitoring simulation with http://localhost:%d\n", port)

	server := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := server.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			log.Printf("monitor stopped: %v", err)
		}
	}()

	return port, nil
}

func (m *Monitor) listenAddress() string {
	if m.portNumber >= minPortNumber {
		return ":" + strconv.Itoa(m.portNumber)
	}

	return ":0"
}

// StopServer closes the listener of the server.
func (m *Monitor) StopServer() error {
	if m.listener == nil {
		return nil
	}

	return m.listener.Close()
}

// OpenInBrowser opens the stats page of a started server.
func (m *Monitor) OpenInBrowser(port int) error {
	return browser.OpenURL(fmt.Sprintf("http://localhost:%d/api/stats", port))
}

func (m *Monitor) snapshotOr503(w http.ResponseWriter) (pagesim.Snapshot, bool) {
	if m.source == nil {
		http.Error(w, "no simulation registered", http.StatusServiceUnavailable)
		return pagesim.Snapshot{}, false
	}

	return m.source.Snapshot(), true
}

type statsRsp struct {
	pagesim.Statistics
	Hits      uint64 `json:"hits"`
	FaultRate string `json:"fault_rate"`
	Hand      int    `json:"hand"`
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	snap, ok := m.snapshotOr503(w)
	if !ok {
		return
	}

	writeJSON(w, statsRsp{
		Statistics: snap.Stats,
		Hits:       snap.Stats.Hits(),
		FaultRate:  snap.Stats.FaultRateString(),
		Hand:       snap.Hand,
	})
}

func (m *Monitor) frames(w http.ResponseWriter, _ *http.Request) {
	snap, ok := m.snapshotOr503(w)
	if !ok {
		return
	}

	serialize(w, &snap.Frames, 2)
}

func (m *Monitor) frame(w http.ResponseWriter, r *http.Request) {
	snap, ok := m.snapshotOr503(w)
	if !ok {
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["frame"])
	if err != nil || index >= len(snap.Frames) {
		http.Error(w, "frame not found", http.StatusNotFound)
		return
	}

	serialize(w, &snap.Frames[index], 1)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]ProgressReport, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.Report())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memoryInfo, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, prof)
}

func serialize(w http.ResponseWriter, root any, depth int) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(root)
	serializer.SetMaxDepth(depth)

	w.Header().Set("Content-Type", "application/json")

	err := serializer.Serialize(w)
	if err != nil {
		log.Printf("monitor: serialize: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	if err != nil {
		log.Printf("monitor: write response: %v", err)
	}
}
