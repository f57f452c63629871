package main

import (
	"github.com/automoto/arena-predict/network"
	"github.com/automoto/arena-predict/shared/messages"
	"github.com/automoto/arena-predict/shared/pmove"
)

type delayed[T any] struct {
	at  uint32
	msg T
}

// authority stands in for the server: it applies the client's commands with
// the shared movement step after a delay, optionally nudged by drift, and
// emits snapshots on a fixed tick.
type authority struct {
	m        pmove.Map
	state    messages.PlayerState
	latency  uint32
	tickMs   uint32
	nextTick uint32
	drift    float32 // pixels per ms of applied input

	inbound  []delayed[messages.UserCommand]
	outbound []delayed[messages.PlayerState]
}

func newAuthority(m pmove.Map, spawn messages.PlayerState, latencyMs, tickMs uint32, drift float32) *authority {
	return &authority{
		m:       m,
		state:   spawn,
		latency: latencyMs,
		tickMs:  max(tickMs, 1),
		drift:   drift,
	}
}

// Receive queues a command sent at sentAt.
func (a *authority) Receive(cmd messages.UserCommand, sentAt uint32) {
	a.inbound = append(a.inbound, delayed[messages.UserCommand]{at: sentAt + a.latency, msg: cmd})
}

// Advance applies every command that has arrived by now and produces a
// snapshot if a tick is due.
func (a *authority) Advance(now uint32) {
	n := 0
	for _, d := range a.inbound {
		if d.at > now {
			break
		}
		a.apply(d.msg)
		n++
	}
	a.inbound = a.inbound[n:]

	if now >= a.nextTick {
		a.outbound = append(a.outbound, delayed[messages.PlayerState]{at: now + a.latency, msg: a.state})
		a.nextTick = now + a.tickMs
	}
}

// Deliver returns snapshots whose delay has elapsed, oldest first.
func (a *authority) Deliver(now uint32) []messages.PlayerState {
	var out []messages.PlayerState
	n := 0
	for _, d := range a.outbound {
		if d.at > now {
			break
		}
		out = append(out, d.msg)
		n++
	}
	a.outbound = a.outbound[n:]
	return out
}

func (a *authority) apply(cmd messages.UserCommand) {
	if cmd.ServerTime <= a.state.CommandTime {
		return
	}
	prev := a.state.CommandTime
	p := network.Predict(a.state, []messages.UserCommand{cmd}, a.m, cmd.ServerTime)

	a.state.Position = [2]float32{p.X, p.Y}
	a.state.Velocity = [2]float32{p.VelX, p.VelY}
	a.state.OnGround = !p.WasInAir
	a.state.Angle = p.Angle
	a.state.CommandTime = p.CommandTime

	if a.drift != 0 && cmd.MoveRight != 0 {
		a.state.Position[0] += a.drift * float32(cmd.ServerTime-prev)
	}
}
