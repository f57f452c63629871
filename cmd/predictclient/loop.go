package main

import (
	"time"

	"github.com/automoto/arena-predict/shared/logger"
)

// frameLoop calls frame at a fixed rate until stopped.
type frameLoop struct {
	frameRate int
	frame     func(dt float32)
	log       *logger.Logger
	stopChan  chan struct{}
}

func newFrameLoop(frameRate int, l *logger.Logger, frame func(dt float32)) *frameLoop {
	return &frameLoop{
		frameRate: max(frameRate, 1),
		frame:     frame,
		log:       l,
		stopChan:  make(chan struct{}),
	}
}

func (g *frameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.frameRate))
	defer ticker.Stop()

	g.log.Printf("frame loop started at %d frames/second", g.frameRate)

	last := time.Now()
	for {
		select {
		case <-g.stopChan:
			g.log.Println("frame loop stopped")
			return
		case now := <-ticker.C:
			g.frame(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}

func (g *frameLoop) Stop() {
	close(g.stopChan)
}
