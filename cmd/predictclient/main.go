// Command predictclient joins a server, drives the local player with a
// scripted input pattern and runs client-side prediction against the
// snapshots it receives.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/arena-predict/components"
	cfg "github.com/automoto/arena-predict/config"
	"github.com/automoto/arena-predict/network"
	"github.com/automoto/arena-predict/shared/leveldata"
	"github.com/automoto/arena-predict/shared/logger"
	"github.com/automoto/arena-predict/systems"
	"github.com/yohamta/donburi"
)

var errJoinTimeout = errors.New("timed out waiting to join")

type options struct {
	addr, name, version, level string
	mapDir                     string
	fps                        int
	duration                   time.Duration
	verbose                    bool
}

func main() {
	var o options
	flag.StringVar(&o.addr, "addr", "localhost:7373", "Server address (host:port)")
	flag.StringVar(&o.name, "name", "predictclient", "Player name")
	flag.StringVar(&o.version, "version", "", "Client version sent with the join request")
	flag.StringVar(&o.level, "level", "", "Requested level")
	flag.StringVar(&o.mapDir, "maps", "", "Directory of TMX maps (empty = built-in arena only)")
	flag.IntVar(&o.fps, "fps", 60, "Client frames per second")
	flag.DurationVar(&o.duration, "duration", 0, "Stop after this long (0 = run until interrupted)")
	flag.BoolVar(&o.verbose, "verbose", false, "Log every hard error")
	flag.Parse()

	l := logger.New("predictclient")
	if err := run(o, l, network.NewClient()); err != nil {
		l.Fatalf("%v", err)
	}
}

// run owns the connection so every return path disconnects.
func run(o options, l *logger.Logger, client *network.Client) error {
	client.Connect(o.addr, o.version, o.name, o.level)
	defer client.Disconnect()

	if err := waitForJoin(client, 5*time.Second); err != nil {
		return fmt.Errorf("join %s: %w", o.addr, err)
	}

	m, err := resolveMap(o.mapDir, client.Level())
	if err != nil {
		return fmt.Errorf("map: %w", err)
	}
	l.Printf("joined as player %d on %s (tick rate %d)", client.PlayerID(), m.Name, client.TickRate())

	debugCfg := cfg.Debug
	debugCfg.Verbose = o.verbose

	commands := network.NewCommandLog(cfg.Prediction.CommandBackup)
	world := donburi.NewWorld()
	entry := world.Entry(world.Create(components.PredictedBody))
	components.PredictedBody.SetValue(entry, components.PredictedBodyData{PlayerID: client.PlayerID()})

	sys := systems.NewPredictionSystem(systems.PredictionDeps{
		Commands:    commands,
		Inbox:       client.Inbox,
		Map:         m,
		Now:         client.ServerTime,
		Config:      cfg.Prediction,
		DebugConfig: debugCfg,
		Logger:      logger.New("predict"),
	})

	loop := newFrameLoop(o.fps, l, func(dt float32) {
		now := client.ServerTime()
		if now <= commands.LastServerTime() {
			sys.Update(world, dt)
			return
		}
		cmd, err := commands.Record(strafeCommand(now))
		if err != nil {
			l.Printf("record command: %v", err)
			return
		}
		if err := client.SendCommand(cmd); err != nil {
			l.Printf("send command: %v", err)
		}
		sys.Update(world, dt)
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if o.duration > 0 {
			select {
			case <-sigChan:
			case <-time.After(o.duration):
			}
		} else {
			<-sigChan
		}
		loop.Stop()
	}()

	loop.Run()

	st := sys.Stats()
	l.Printf("frames=%d snapshots=%d hard=%d soft=%d max=%.2fpx pruned=%d",
		st.Frames, st.Snapshots, st.HardErrors, st.SoftErrors, st.MaxError, st.Pruned)
	return nil
}

func waitForJoin(c *network.Client, timeout time.Duration) error {
	deadline := time.After(timeout)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		switch c.State() {
		case network.StateJoinedGame:
			return nil
		case network.StateError:
			return c.LastError()
		}
		select {
		case <-deadline:
			return errJoinTimeout
		case <-ticker.C:
		}
	}
}

// resolveMap picks the server's level from dir, falling back to the built-in
// arena when no directory is given or the level is unknown.
func resolveMap(dir, level string) (*leveldata.Map, error) {
	if dir == "" {
		return leveldata.DefaultArena(), nil
	}
	maps, names, err := leveldata.LoadAllMaps(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	if m, ok := maps[level]; ok {
		return m, nil
	}
	if len(names) > 0 && level == "" {
		return maps[names[0]], nil
	}
	return leveldata.DefaultArena(), nil
}
