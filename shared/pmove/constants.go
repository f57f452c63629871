package pmove

import "github.com/automoto/arena-predict/shared/leveldata"

// Movement constants. Velocities are pixels per 60 Hz frame; the step scales
// them by dt*60. Server and client must be built from the same values.
const (
	Gravity        = 0.056
	MaxFallSpeed   = 5.0
	MaxRiseSpeed   = -15.0
	MaxSpeedGround = 5.0
	MaxSpeedAir    = 6.0
	JumpForce      = -2.9
	GroundAccel    = 0.35
	AirAccel       = 0.35

	ChangeDirAccelMult = 2.3
	CrouchSpeedMult    = 0.6
	HasteSpeedMult     = 1.3
	HasteJumpMult      = 1.2

	GroundFriction = 0.14
	AirFriction    = 0.025

	// Below this fall speed a touchdown is not reported as a landing.
	LandImpactSpeed = 2.0

	// Pads only fire while the player is not already rising fast.
	JumpPadMinVelY = -1.0
)

// Hitbox, in pixels. The origin sits 24 px above the feet probe row.
const (
	HitboxWidth        = 56.0
	HitboxHeight       = 96.0
	HitboxHeightCrouch = 48.0

	feetOffset = 24.0 // origin to the tile row that must be solid to stand
	bodyOffset = 8.0  // origin to the tile row that must be clear to stand
	lowOffset  = 16.0 // origin to the lowest row checked for walls
	stepHeight = 16.0
	stepProbe  = 2.0
)

// MaxStepSeconds bounds how much time one call integrates. Longer gaps must be
// sliced by the caller.
const MaxStepSeconds = 0.05

// PlayerBody is the standing hitbox for map validation.
var PlayerBody = leveldata.Body{
	HalfWidth: HitboxWidth / 2,
	Above:     HitboxHeight,
	Below:     lowOffset,
}
