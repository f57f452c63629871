package network

import (
	"github.com/automoto/arena-predict/config"
	"github.com/automoto/arena-predict/shared/messages"
	"github.com/automoto/arena-predict/shared/pmove"
)

// Replay step bounds used by Predict.
const (
	DefaultMinStepMs uint32 = 1
	DefaultMaxStepMs uint32 = 100
)

// PredictedPlayerState is the local player's state reconstructed from the
// latest snapshot and the commands issued since.
type PredictedPlayerState struct {
	X, Y       float32
	VelX, VelY float32
	Angle      float32
	WasInAir   bool

	// CommandTime is the server time of the last command replayed, or the
	// base snapshot's command time if none was.
	CommandTime uint32

	// Set if any replayed step reported the event.
	HitJumpPad bool
	Landed     bool
}

// Kinematic returns the movement state of the prediction.
func (p PredictedPlayerState) Kinematic() pmove.State {
	return pmove.State{X: p.X, Y: p.Y, VelX: p.VelX, VelY: p.VelY, WasInAir: p.WasInAir}
}

// Predict replays cmds on top of base up to currentTime. Commands at or before
// base.CommandTime are skipped, commands after currentTime are left for a
// later call. Any time left between the last applied command and currentTime
// is integrated with the last command's input.
//
// Predict has no state: identical arguments give identical results.
func Predict(base messages.PlayerState, cmds []messages.UserCommand, m pmove.Map, currentTime uint32) PredictedPlayerState {
	return replay(base, cmds, m, currentTime, DefaultMinStepMs, DefaultMaxStepMs)
}

// Predictor runs Predict with configured step bounds and keeps the last result.
type Predictor struct {
	minStepMs, maxStepMs uint32

	last    PredictedPlayerState
	hasLast bool
}

func NewPredictor(cfg config.PredictionConfig) *Predictor {
	p := &Predictor{minStepMs: cfg.MinStepMs, maxStepMs: cfg.MaxStepMs}
	if p.minStepMs == 0 {
		p.minStepMs = DefaultMinStepMs
	}
	if p.maxStepMs < p.minStepMs {
		p.maxStepMs = max(DefaultMaxStepMs, p.minStepMs)
	}
	return p
}

// Predict replays cmds on base and records the result.
func (p *Predictor) Predict(base messages.PlayerState, cmds []messages.UserCommand, m pmove.Map, currentTime uint32) PredictedPlayerState {
	p.last = replay(base, cmds, m, currentTime, p.minStepMs, p.maxStepMs)
	p.hasLast = true
	return p.last
}

// Last returns the most recent prediction, if any.
func (p *Predictor) Last() (PredictedPlayerState, bool) {
	return p.last, p.hasLast
}

func replay(base messages.PlayerState, cmds []messages.UserCommand, m pmove.Map, currentTime, minMs, maxMs uint32) PredictedPlayerState {
	state := base.Kinematic()
	angle := base.Angle
	lastApplied := base.CommandTime

	var input pmove.Cmd
	var hitPad, landed bool

	step := func(cmd pmove.Cmd, until uint32) {
		dtMs := clampMs(elapsedMs(lastApplied, until), minMs, maxMs)
		r := pmove.Step(state, cmd, float32(dtMs)/1000, m)
		state = r.State
		hitPad = hitPad || r.HitJumpPad
		landed = landed || r.Landed
	}

	for _, c := range cmds {
		if c.ServerTime <= base.CommandTime {
			continue
		}
		if c.ServerTime > currentTime {
			break
		}
		input = c.PmoveCmd()
		step(input, c.ServerTime)
		angle = c.Angles
		lastApplied = c.ServerTime
	}

	if lastApplied < currentTime {
		step(input, currentTime)
	}

	return PredictedPlayerState{
		X:           state.X,
		Y:           state.Y,
		VelX:        state.VelX,
		VelY:        state.VelY,
		Angle:       angle,
		WasInAir:    state.WasInAir,
		CommandTime: lastApplied,
		HitJumpPad:  hitPad,
		Landed:      landed,
	}
}

// elapsedMs is to-from, or 0 if to is not after from.
func elapsedMs(from, to uint32) uint32 {
	if to <= from {
		return 0
	}
	return to - from
}

func clampMs(ms, lo, hi uint32) uint32 {
	return min(max(ms, lo), hi)
}
