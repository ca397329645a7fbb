package pagesim

import "sync"

// Serialized guards a Simulator with a mutex. References are still
// processed one at a time, in trace order; the lock only lets other
// goroutines take snapshots between two references.
type Serialized struct {
	mu  sync.Mutex
	sim *Simulator
}

// NewSerialized wraps a simulator.
func NewSerialized(sim *Simulator) *Serialized {
	return &Serialized{sim: sim}
}

// Process translates one address under the lock.
func (s *Serialized) Process(addr uint64) (Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sim.Process(addr)
}

// Run processes every address of src, taking the lock once per reference.
func (s *Serialized) Run(src AddressSource) error {
	for src.Next() {
		if _, err := s.Process(src.Address()); err != nil {
			return err
		}
	}

	return src.Err()
}

// Snapshot copies the simulator state under the lock.
func (s *Serialized) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sim.Snapshot()
}

// Statistics copies the counters under the lock.
func (s *Serialized) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sim.Statistics()
}
