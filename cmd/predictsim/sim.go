package main

import (
	"errors"
	"time"

	"github.com/automoto/arena-predict/components"
	cfg "github.com/automoto/arena-predict/config"
	"github.com/automoto/arena-predict/network"
	"github.com/automoto/arena-predict/shared/leveldata"
	"github.com/automoto/arena-predict/shared/logger"
	"github.com/automoto/arena-predict/shared/messages"
	"github.com/automoto/arena-predict/shared/pmove"
	"github.com/automoto/arena-predict/systems"
	"github.com/yohamta/donburi"
)

const localPlayerID = 1

var errNoSpawn = errors.New("map has no spawn points")

type simOptions struct {
	Map        *leveldata.Map
	Duration   time.Duration
	Latency    time.Duration
	TickRate   int
	FrameRate  int
	Drift      float32
	Prediction cfg.PredictionConfig
	Debug      cfg.DebugConfig
}

type simResult struct {
	Stats   systems.PredictionStats
	Body    components.PredictedBodyData
	Server  messages.PlayerState
	Landed  int
	JumpPad int
	Desyncs int
}

func runSim(opts simOptions, l *logger.Logger) (simResult, error) {
	if len(opts.Map.SpawnPoints) == 0 {
		return simResult{}, errNoSpawn
	}
	sp := opts.Map.SpawnPoints[0]
	spawn := messages.PlayerState{
		PlayerID: localPlayerID,
		Position: [2]float32{sp.X, sp.Y},
		OnGround: pmove.Grounded(sp.X, sp.Y, opts.Map),
	}

	frameMs := uint32(1000 / max(opts.FrameRate, 1))
	tickMs := uint32(1000 / max(opts.TickRate, 1))
	latencyMs := uint32(opts.Latency.Milliseconds())
	endMs := uint32(opts.Duration.Milliseconds())

	auth := newAuthority(opts.Map, spawn, latencyMs, tickMs, opts.Drift)
	commands := network.NewCommandLog(opts.Prediction.CommandBackup)
	inbox := network.NewSnapshotInbox()
	debug := network.NewPredictionDebug(opts.Debug.TrailLength, opts.Debug.ErrorLength)
	debug.Enabled = true

	var now uint32
	world := donburi.NewWorld()
	entry := world.Entry(world.Create(components.PredictedBody))
	components.PredictedBody.SetValue(entry, components.PredictedBodyData{PlayerID: localPlayerID})

	sys := systems.NewPredictionSystem(systems.PredictionDeps{
		Commands:    commands,
		Inbox:       inbox,
		Map:         opts.Map,
		Now:         func() uint32 { return now },
		Config:      opts.Prediction,
		DebugConfig: opts.Debug,
		Debug:       debug,
		Logger:      l,
	})

	var res simResult
	components.LandedEvent.Subscribe(world, func(_ donburi.World, e components.LandedEventData) {
		res.Landed++
		if opts.Debug.Verbose {
			l.Printf("landed at (%.1f,%.1f)", e.X, e.Y)
		}
	})
	components.JumpPadEvent.Subscribe(world, func(_ donburi.World, e components.JumpPadEventData) {
		res.JumpPad++
		if opts.Debug.Verbose {
			l.Printf("jump pad at (%.1f,%.1f)", e.X, e.Y)
		}
	})
	components.DesyncEvent.Subscribe(world, func(_ donburi.World, _ components.DesyncEventData) {
		res.Desyncs++
	})

	// The first snapshot goes out at time zero.
	auth.Advance(now)

	for now = frameMs; now <= endMs; now += frameMs {
		cmd, err := commands.Record(scriptedCommand(now))
		if err != nil {
			return res, err
		}
		auth.Receive(cmd, now)
		auth.Advance(now)
		for _, ps := range auth.Deliver(now) {
			inbox.Put(ps)
		}
		sys.Update(world, float32(frameMs)/1000)
	}

	res.Stats = sys.Stats()
	res.Body = *components.PredictedBody.Get(entry)
	res.Server = auth.state
	if opts.Debug.Verbose {
		for _, e := range debug.Errors() {
			l.Printf("recent error %.2fpx at %.3fs", e.Magnitude, e.ErrorTime)
		}
	}
	return res, nil
}
