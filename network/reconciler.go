package network

import (
	"math"

	"github.com/automoto/arena-predict/config"
	"github.com/automoto/arena-predict/shared/messages"
)

// PredictionError is the offset from the predicted position to the server's.
type PredictionError struct {
	ErrorX, ErrorY float32
	ErrorTime      float64 // caller's clock at detection, seconds
	Magnitude      float32

	// Hard is set when the error crossed the hard threshold. It does not
	// change how the error decays.
	Hard bool
}

// ReconcileStats counts detections over the Reconciler's lifetime.
type ReconcileStats struct {
	HardErrors int
	SoftErrors int
	Cleared    int
}

// Reconciler tracks at most one live prediction error and bleeds it into the
// visible position a little each frame.
type Reconciler struct {
	decayRate  float32
	hard       float32
	soft       float32
	clearBelow float32

	current PredictionError
	live    bool
	stats   ReconcileStats
}

func NewReconciler(cfg config.PredictionConfig) *Reconciler {
	return &Reconciler{
		decayRate:  cfg.ErrorDecayRate,
		hard:       cfg.HardErrorThreshold,
		soft:       cfg.SoftErrorThreshold,
		clearBelow: cfg.ClearThreshold,
	}
}

// DetectError compares a prediction with an authoritative snapshot. Errors
// above the soft threshold replace the live error; only those above the hard
// threshold are returned. Smaller differences leave the live error alone.
func (r *Reconciler) DetectError(predicted PredictedPlayerState, server messages.PlayerState, now float64) (PredictionError, bool) {
	dx := server.Position[0] - predicted.X
	dy := server.Position[1] - predicted.Y
	mag := float32(math.Sqrt(float64(dx)*float64(dx) + float64(dy)*float64(dy)))

	e := PredictionError{ErrorX: dx, ErrorY: dy, ErrorTime: now, Magnitude: mag}
	switch {
	case mag > r.hard:
		e.Hard = true
		r.current, r.live = e, true
		r.stats.HardErrors++
		return e, true
	case mag > r.soft:
		r.current, r.live = e, true
		r.stats.SoftErrors++
	}
	return PredictionError{}, false
}

// Decay returns this frame's share of the live error and shrinks the stored
// error by the same share. ok is false when there is no live error.
func (r *Reconciler) Decay(dt float32) (cx, cy float32, ok bool) {
	if !r.live {
		return 0, 0, false
	}

	factor := min(max(float32(r.decayRate*dt*60), 0), 1)
	cx = float32(r.current.ErrorX * factor)
	cy = float32(r.current.ErrorY * factor)

	keep := 1 - factor
	r.current.ErrorX *= keep
	r.current.ErrorY *= keep
	r.current.Magnitude *= keep

	if r.current.Magnitude < r.clearBelow {
		r.Clear()
		r.stats.Cleared++
	}
	return cx, cy, true
}

// Current returns the live error, if any.
func (r *Reconciler) Current() (PredictionError, bool) {
	return r.current, r.live
}

// Clear drops the live error.
func (r *Reconciler) Clear() {
	r.current = PredictionError{}
	r.live = false
}

// Stats returns detection counters.
func (r *Reconciler) Stats() ReconcileStats {
	return r.stats
}
