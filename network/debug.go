package network

// TrailPoint is one sampled position.
type TrailPoint struct {
	X, Y float32
	Time float64
}

// ring is a fixed-capacity FIFO that overwrites its oldest entry.
type ring[T any] struct {
	buf   []T
	start int
	n     int
}

func newRing[T any](capacity int) ring[T] {
	return ring[T]{buf: make([]T, max(capacity, 1))}
}

func (r *ring[T]) push(v T) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

func (r *ring[T]) items() []T {
	out := make([]T, r.n)
	for i := range out {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

func (r *ring[T]) reset() {
	r.start, r.n = 0, 0
}

// PredictionDebug samples predicted and authoritative positions plus recent
// errors for overlays and logs. It holds data only.
type PredictionDebug struct {
	client ring[TrailPoint]
	server ring[TrailPoint]
	errors ring[PredictionError]

	Enabled bool
}

func NewPredictionDebug(trailLength, errorLength int) *PredictionDebug {
	return &PredictionDebug{
		client: newRing[TrailPoint](trailLength),
		server: newRing[TrailPoint](trailLength),
		errors: newRing[PredictionError](errorLength),
	}
}

func (d *PredictionDebug) RecordClient(x, y float32, now float64) {
	if d.Enabled {
		d.client.push(TrailPoint{X: x, Y: y, Time: now})
	}
}

func (d *PredictionDebug) RecordServer(x, y float32, now float64) {
	if d.Enabled {
		d.server.push(TrailPoint{X: x, Y: y, Time: now})
	}
}

func (d *PredictionDebug) RecordError(e PredictionError) {
	if d.Enabled {
		d.errors.push(e)
	}
}

// ClientTrail returns predicted positions, oldest first.
func (d *PredictionDebug) ClientTrail() []TrailPoint { return d.client.items() }

// ServerTrail returns authoritative positions, oldest first.
func (d *PredictionDebug) ServerTrail() []TrailPoint { return d.server.items() }

// Errors returns recent errors, oldest first.
func (d *PredictionDebug) Errors() []PredictionError { return d.errors.items() }

// MaxError returns the largest magnitude among recent errors.
func (d *PredictionDebug) MaxError() float32 {
	var m float32
	for _, e := range d.errors.items() {
		m = max(m, e.Magnitude)
	}
	return m
}

func (d *PredictionDebug) Reset() {
	d.client.reset()
	d.server.reset()
	d.errors.reset()
}
