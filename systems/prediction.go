package systems

import (
	"time"

	"github.com/automoto/arena-predict/components"
	cfg "github.com/automoto/arena-predict/config"
	"github.com/automoto/arena-predict/network"
	"github.com/automoto/arena-predict/shared/logger"
	"github.com/automoto/arena-predict/shared/messages"
	"github.com/automoto/arena-predict/shared/pmove"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"golang.org/x/time/rate"
)

// PredictionDeps wires the prediction system to its inputs.
type PredictionDeps struct {
	Commands *network.CommandLog
	Inbox    *network.SnapshotInbox
	Map      pmove.Map

	// Now returns the current server time estimate in ms.
	Now func() uint32

	Config      cfg.PredictionConfig
	DebugConfig cfg.DebugConfig

	// Optional.
	Debug  *network.PredictionDebug
	Logger *logger.Logger
}

// PredictionStats summarises a run.
type PredictionStats struct {
	Frames     int
	Snapshots  int
	HardErrors int
	SoftErrors int
	Pruned     int
	MaxError   float32
}

// PredictionSystem drives the local player's predicted body each frame.
type PredictionSystem struct {
	deps       PredictionDeps
	predictor  *network.Predictor
	reconciler *network.Reconciler

	base    messages.PlayerState
	hasBase bool

	prevHitPad bool
	prevLanded bool

	summary rate.Sometimes
	desync  rate.Sometimes
	stats   PredictionStats
}

func NewPredictionSystem(deps PredictionDeps) *PredictionSystem {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	interval := deps.DebugConfig.LogInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &PredictionSystem{
		deps:       deps,
		predictor:  network.NewPredictor(deps.Config),
		reconciler: network.NewReconciler(deps.Config),
		summary:    rate.Sometimes{Interval: interval},
		desync:     rate.Sometimes{Interval: interval},
	}
}

// Update runs one frame: take a new snapshot if one arrived, replay the
// pending commands on top of it, decay any live error into the visible position and
// publish landing and jump pad events. It does nothing until the world has a
// PredictedBody and a first snapshot has arrived.
func (s *PredictionSystem) Update(w donburi.World, frameDt float32) {
	entry, ok := components.PredictedBody.First(w)
	if !ok {
		return
	}
	body := components.PredictedBody.Get(entry)
	now := s.deps.Now()
	s.stats.Frames++

	if ps, ok := s.deps.Inbox.Take(); ok {
		s.onSnapshot(w, body.PlayerID, ps, now)
	}
	if !s.hasBase {
		return
	}

	cmds := s.pending()
	pred := s.predictor.Predict(s.base, cmds, s.deps.Map, now)

	// pred already sits on the authoritative path; draw it offset by the
	// part of the error not yet bled in.
	s.reconciler.Decay(frameDt)
	var cx, cy float32
	if e, live := s.reconciler.Current(); live {
		cx, cy = -e.ErrorX, -e.ErrorY
	}

	body.Predicted = pred
	body.CorrectionX, body.CorrectionY = cx, cy
	body.VisibleX = pred.X + cx
	body.VisibleY = pred.Y + cy
	body.Initialized = true

	if pred.Landed && !s.prevLanded {
		components.LandedEvent.Publish(w, components.LandedEventData{PlayerID: body.PlayerID, X: body.VisibleX, Y: body.VisibleY})
	}
	if pred.HitJumpPad && !s.prevHitPad {
		components.JumpPadEvent.Publish(w, components.JumpPadEventData{PlayerID: body.PlayerID, X: body.VisibleX, Y: body.VisibleY})
	}
	s.prevLanded, s.prevHitPad = pred.Landed, pred.HitJumpPad

	if d := s.deps.Debug; d != nil {
		d.RecordClient(body.VisibleX, body.VisibleY, msToSeconds(now))
	}

	s.summary.Do(func() {
		s.deps.Logger.Printf("base_cmd=%d current=%d cmds=%d base_pos=(%.1f,%.1f) pred_pos=(%.1f,%.1f)",
			s.base.CommandTime, now, len(cmds), s.base.Position[0], s.base.Position[1], pred.X, pred.Y)
	})

	events.ProcessAllEvents(w)
}

// pending returns the commands issued after the base. The log is pruned at
// the base on every snapshot, so this is the whole log unless ReplayWindow
// caps it.
func (s *PredictionSystem) pending() []messages.UserCommand {
	if w := s.deps.Config.ReplayWindow; w > 0 {
		return s.deps.Commands.Recent(w)
	}
	return s.deps.Commands.All()
}

// onSnapshot checks where the previous base plus our commands said we would
// be at the snapshot's command time, then rebases on the snapshot.
func (s *PredictionSystem) onSnapshot(w donburi.World, playerID uint16, ps messages.PlayerState, now uint32) {
	s.stats.Snapshots++

	if d := s.deps.Debug; d != nil {
		d.RecordServer(ps.Position[0], ps.Position[1], msToSeconds(now))
	}

	if s.hasBase && ps.CommandTime < s.base.CommandTime {
		return
	}

	if s.hasBase {
		expected := network.Predict(s.base, s.deps.Commands.All(), s.deps.Map, ps.CommandTime)
		if e, hard := s.reconciler.DetectError(expected, ps, msToSeconds(now)); hard {
			s.onHardError(w, playerID, e)
		}
		if e, live := s.reconciler.Current(); live {
			s.stats.MaxError = max(s.stats.MaxError, e.Magnitude)
		}
	}

	s.base = ps
	s.hasBase = true
	s.stats.Pruned += s.deps.Commands.Prune(ps.CommandTime)
}

func (s *PredictionSystem) onHardError(w donburi.World, playerID uint16, e network.PredictionError) {
	if d := s.deps.Debug; d != nil {
		d.RecordError(e)
	}
	components.DesyncEvent.Publish(w, components.DesyncEventData{PlayerID: playerID, Error: e})

	if s.deps.DebugConfig.Verbose {
		s.deps.Logger.Printf("hard error: %.1fpx (%.1f,%.1f)", e.Magnitude, e.ErrorX, e.ErrorY)
		return
	}
	s.desync.Do(func() {
		s.deps.Logger.Printf("hard error: %.1fpx (%d total)", e.Magnitude, s.reconciler.Stats().HardErrors)
	})
}

// Stats returns counters for the run so far.
func (s *PredictionSystem) Stats() PredictionStats {
	st := s.stats
	rs := s.reconciler.Stats()
	st.HardErrors = rs.HardErrors
	st.SoftErrors = rs.SoftErrors
	return st
}

// Base returns the current authoritative base, if any.
func (s *PredictionSystem) Base() (messages.PlayerState, bool) {
	return s.base, s.hasBase
}

func msToSeconds(ms uint32) float64 {
	return float64(ms) / 1000
}
