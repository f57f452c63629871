package config

import "time"

// PredictionConfig contains client-side prediction and reconciliation tuning.
type PredictionConfig struct {
	// Reconciliation
	ErrorDecayRate     float32 // Fraction of the error corrected per 60 Hz frame
	HardErrorThreshold float32 // Pixels; above this the divergence is reported
	SoftErrorThreshold float32 // Pixels; above this the divergence is smoothed
	ClearThreshold     float32 // Pixels; a decaying error below this is dropped

	// Replay
	MinStepMs     uint32 // Floor for a single replayed command's duration
	MaxStepMs     uint32 // Ceiling for a single replayed command's duration
	CommandBackup int    // Command log capacity
	ReplayWindow  int    // Cap on commands replayed per frame (0 = whole log)
}

// DebugConfig contains diagnostics options.
type DebugConfig struct {
	Verbose     bool          // Log every hard error instead of a throttled summary
	LogInterval time.Duration // Minimum spacing of throttled diagnostic lines
	TrailLength int           // Positions kept per trail for debug overlays
	ErrorLength int           // Recent errors kept for debug overlays
}

// SimConfig contains defaults for the headless prediction harness.
type SimConfig struct {
	TickRate   int           // Server snapshots per second
	FrameRate  int           // Client frames per second
	Latency    time.Duration // One-way delay applied to commands and snapshots
	DriftPerMs float32       // Horizontal pixels the authority adds per ms of input
}

var Prediction PredictionConfig
var Debug DebugConfig
var Sim SimConfig

func init() {
	Prediction = PredictionConfig{
		// Reconciliation
		ErrorDecayRate:     0.1,
		HardErrorThreshold: 2.0,
		SoftErrorThreshold: 0.1,
		ClearThreshold:     0.1,

		// Replay
		MinStepMs:     1,
		MaxStepMs:     100,
		CommandBackup: 64,
		ReplayWindow:  64,
	}

	Debug = DebugConfig{
		Verbose:     false,
		LogInterval: 2 * time.Second,
		TrailLength: 120,
		ErrorLength: 32,
	}

	Sim = SimConfig{
		TickRate:   20,
		FrameRate:  60,
		Latency:    50 * time.Millisecond,
		DriftPerMs: 0,
	}
}
