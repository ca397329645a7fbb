package pagesim

// A Reference describes the outcome of translating one trace address.
type Reference struct {
	Seq    uint64 // 1-based position in the trace
	VAddr  uint64
	VPN    uint64
	Offset uint64
	Hit    bool
	Frame  int
	PAddr  uint64

	// Evicted is set when the fault displaced EvictedVPN from Frame.
	Evicted    bool
	EvictedVPN uint64
}

// Outcome returns "HIT" or "FAULT".
func (r Reference) Outcome() string {
	if r.Hit {
		return "HIT"
	}

	return "FAULT"
}

// A Tracer observes every processed reference. Tracers must not change the
// simulation state.
type Tracer interface {
	Trace(ref Reference)
}

// TracerFunc adapts a function into a Tracer.
type TracerFunc func(ref Reference)

// Trace calls f(ref).
func (f TracerFunc) Trace(ref Reference) {
	f(ref)
}

// An AddressSource yields the addresses of a trace in order.
type AddressSource interface {
	Next() bool
	Address() uint64
	Err() error
}
