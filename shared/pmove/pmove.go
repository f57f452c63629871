// Package pmove implements the player movement step shared by client-side
// prediction and the server. Step is a pure function of its arguments: it is
// replayed many times per frame with different time slices and must agree
// with an independent invocation on the same inputs.
//
// Products that feed an addition are wrapped in explicit float32 conversions.
// The conversion forces rounding and keeps the compiler from fusing the
// multiply-add on architectures that have FMA, so results match across builds.
package pmove

import "github.com/automoto/arena-predict/shared/leveldata"

const (
	deadZone = 0.01

	apexDamp      = 0.11
	fallBoost     = 0.1
	fallBoostCeil = 5.0
	jumpMinVelY   = -0.5
)

// Map is the collision surface the step runs against.
type Map interface {
	IsSolid(tileX, tileY int) bool
	JumpPads() []leveldata.JumpPad
}

// State is the kinematic state of one player.
type State struct {
	X, Y       float32
	VelX, VelY float32
	WasInAir   bool
}

// Cmd is one tick of movement intent.
type Cmd struct {
	MoveRight   float32 // -1 left .. 1 right
	Jump        bool
	Crouch      bool
	HasteActive bool
}

// Result is the outcome of one Step.
type Result struct {
	State State

	HitJumpPad bool
	Landed     bool
	Jumped     bool

	// Pad is the last jump pad applied this step (zero unless HitJumpPad).
	Pad leveldata.JumpPad
}

// Step advances s by one command over dt seconds. dt is capped at
// MaxStepSeconds; dt <= 0 returns s unchanged with no events.
func Step(s State, cmd Cmd, dt float32, m Map) Result {
	if !(dt > 0) {
		return Result{State: s}
	}
	if dt > MaxStepSeconds {
		dt = MaxStepSeconds
	}
	dtNorm := float32(dt * 60)

	vx, vy := s.VelX, s.VelY
	grounded := standsAt(s.X, s.Y, HitboxWidth/2, m)

	maxSpeed := float32(MaxSpeedGround)
	if cmd.Crouch {
		maxSpeed *= CrouchSpeedMult
	}
	if cmd.HasteActive {
		maxSpeed *= HasteSpeedMult
	}
	intent := min(max(cmd.MoveRight, -1), 1)
	limit := float32(abs32(intent) * maxSpeed)

	accel := float32(AirAccel)
	if grounded {
		accel = GroundAccel
	}
	turnAccel := float32(accel * ChangeDirAccelMult)

	switch {
	case intent < -deadZone:
		if vx > 0 {
			vx -= float32(turnAccel * dtNorm)
		}
		if vx > -limit {
			vx -= float32(accel * dtNorm)
		}
		if vx < -limit {
			vx = -limit
		}
	case intent > deadZone:
		if vx < 0 {
			vx += float32(turnAccel * dtNorm)
		}
		if vx < limit {
			vx += float32(accel * dtNorm)
		}
		if vx > limit {
			vx = limit
		}
	}

	jumped := false
	if cmd.Jump && grounded && vy >= jumpMinVelY {
		vy = JumpForce
		if cmd.HasteActive {
			vy = JumpForce * HasteJumpMult
		}
		jumped = true
	}

	vy += float32(Gravity * dtNorm)

	// Hang briefly at the apex, then accelerate into the fall.
	if vy > -1 && vy < 0 {
		vy /= 1 + float32(apexDamp*dtNorm)
	}
	if vy > 0 && vy < fallBoostCeil {
		vy *= 1 + float32(fallBoost*dtNorm)
	}

	if abs32(intent) < deadZone && abs32(vx) > deadZone {
		friction := float32(AirFriction)
		if grounded {
			friction = GroundFriction
		}
		vx /= 1 + float32(friction*dtNorm)
		if abs32(vx) < deadZone {
			vx = 0
		}
	}

	vy = max(min(vy, MaxFallSpeed), MaxRiseSpeed)
	if vx > MaxSpeedAir {
		vx = MaxSpeedAir
	} else if vx < -MaxSpeedAir {
		vx = -MaxSpeedAir
	}

	c := moveWithCollision(s.X, s.Y, vx, vy, cmd.Crouch, dtNorm, m)

	res := Result{Jumped: jumped}
	for _, jp := range m.JumpPads() {
		if jp.Contains(c.x, c.y) && c.vy >= JumpPadMinVelY {
			c.vx += jp.ForceX
			c.vy = jp.ForceY
			res.HitJumpPad = true
			res.Pad = jp
		}
	}

	res.Landed = c.onGround && s.WasInAir && vy > LandImpactSpeed
	res.State = State{
		X:        c.x,
		Y:        c.y,
		VelX:     c.vx,
		VelY:     c.vy,
		WasInAir: !c.onGround,
	}
	return res
}

// Grounded reports whether a standing player at (x, y) has floor under it.
func Grounded(x, y float32, m Map) bool {
	return standsAt(x, y, HitboxWidth/2, m)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
