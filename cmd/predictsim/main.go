// Command predictsim runs client-side prediction against a local stand-in for
// the server and reports how often and how far the two disagree.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	cfg "github.com/automoto/arena-predict/config"
	"github.com/automoto/arena-predict/shared/leveldata"
	"github.com/automoto/arena-predict/shared/logger"
	"github.com/automoto/arena-predict/shared/pmove"
	"github.com/automoto/arena-predict/systems"
)

func main() {
	mapPath := flag.String("map", "", "TMX map to load (empty = built-in arena)")
	duration := flag.Duration("duration", 10*time.Second, "Simulated run length")
	latency := flag.Duration("latency", cfg.Sim.Latency, "One-way latency for commands and snapshots")
	tickRate := flag.Int("tickrate", cfg.Sim.TickRate, "Snapshots per second")
	frameRate := flag.Int("fps", cfg.Sim.FrameRate, "Client frames per second")
	drift := flag.Float64("drift", float64(cfg.Sim.DriftPerMs), "Extra server-side px per ms of movement input")
	verbose := flag.Bool("verbose", cfg.Debug.Verbose, "Log every hard error and event")
	persist := flag.Bool("persist", false, "Load saved prediction settings")
	save := flag.Bool("save", false, "Save the effective prediction settings after the run")
	flag.Parse()

	l := logger.New("predictsim")

	predictionCfg, debugCfg := cfg.Prediction, cfg.Debug
	if *persist || *save {
		if err := systems.InitPersistence("arena-predict"); err == nil {
			saved, err := systems.LoadPredictionSettings()
			if err != nil {
				l.Printf("ignoring saved settings: %v", err)
			}
			systems.ApplyPredictionSettings(&predictionCfg, &debugCfg, saved)
		}
	}
	if *verbose {
		debugCfg.Verbose = true
	}

	m, err := loadMap(*mapPath)
	if err != nil {
		l.Fatalf("map: %v", err)
	}
	if err := m.Validate(pmove.PlayerBody); err != nil {
		l.Fatalf("map %s is invalid: %v", m.Name, err)
	}

	res, err := runSim(simOptions{
		Map:        m,
		Duration:   *duration,
		Latency:    *latency,
		TickRate:   *tickRate,
		FrameRate:  *frameRate,
		Drift:      float32(*drift),
		Prediction: predictionCfg,
		Debug:      debugCfg,
	}, logger.New("predict"))
	if err != nil {
		l.Fatalf("run: %v", err)
	}

	st := res.Stats
	l.Printf("map=%s frames=%d snapshots=%d pruned=%d", m.Name, st.Frames, st.Snapshots, st.Pruned)
	l.Printf("errors: hard=%d soft=%d max=%.2fpx", st.HardErrors, st.SoftErrors, st.MaxError)
	l.Printf("events: landed=%d jumppad=%d", res.Landed, res.JumpPad)
	l.Printf("final: visible=(%.1f,%.1f) predicted=(%.1f,%.1f) server=(%.1f,%.1f)@%dms",
		res.Body.VisibleX, res.Body.VisibleY, res.Body.Predicted.X, res.Body.Predicted.Y,
		res.Server.Position[0], res.Server.Position[1], res.Server.CommandTime)

	if *save {
		if err := systems.SavePredictionSettings(systems.CurrentPredictionSettings(predictionCfg, debugCfg)); err != nil {
			l.Printf("save settings: %v", err)
		}
	}
}

func loadMap(path string) (*leveldata.Map, error) {
	if path == "" {
		return leveldata.DefaultArena(), nil
	}
	return leveldata.LoadMap(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
