package messages

import "github.com/automoto/arena-predict/shared/pmove"

// PlayerState is the server's authoritative view of one player, stamped with
// the ServerTime of the last command the server applied for that player.
type PlayerState struct {
	PlayerID    uint16
	Position    [2]float32
	Velocity    [2]float32
	OnGround    bool
	Angle       float32
	CommandTime uint32
}

// Kinematic converts the snapshot to a movement step state.
func (ps PlayerState) Kinematic() pmove.State {
	return pmove.State{
		X:        ps.Position[0],
		Y:        ps.Position[1],
		VelX:     ps.Velocity[0],
		VelY:     ps.Velocity[1],
		WasInAir: !ps.OnGround,
	}
}

// Snapshot is broadcast by the server every tick.
type Snapshot struct {
	Tick       uint32
	ServerTime uint32 // ms
	Players    []PlayerState
}

// Player returns the entry for id, if present.
func (s Snapshot) Player(id uint16) (PlayerState, bool) {
	for _, p := range s.Players {
		if p.PlayerID == id {
			return p, true
		}
	}
	return PlayerState{}, false
}
