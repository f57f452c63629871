package messages

import "github.com/automoto/arena-predict/shared/pmove"

// Button bits carried in UserCommand.Buttons.
const (
	ButtonAttack uint32 = 1 << iota
	ButtonJump
	ButtonCrouch
	ButtonHaste
)

// UserCommand is sent from client to server every local tick. The client keeps
// a copy in its command log and replays it against each authoritative snapshot.
type UserCommand struct {
	Sequence    uint32  // Incrementing ID, strictly increasing per client
	ServerTime  uint32  // Client's estimate of server time when issued (ms)
	MoveForward float32 // Unused by the 2D step, carried for the server
	MoveRight   float32 // -1 left .. 1 right
	Buttons     uint32
	Angles      float32 // Aim angle (radians)
}

// Pressed reports whether every bit in mask is set.
func (c UserCommand) Pressed(mask uint32) bool {
	return c.Buttons&mask == mask
}

// PmoveCmd extracts the movement intent.
func (c UserCommand) PmoveCmd() pmove.Cmd {
	return pmove.Cmd{
		MoveRight:   c.MoveRight,
		Jump:        c.Pressed(ButtonJump),
		Crouch:      c.Pressed(ButtonCrouch),
		HasteActive: c.Pressed(ButtonHaste),
	}
}
