package components

import (
	"github.com/automoto/arena-predict/network"
	"github.com/yohamta/donburi"
)

// PredictedBodyData is the local player's client-side movement state.
type PredictedBodyData struct {
	PlayerID uint16

	// Predicted is the latest replay result; it is never corrected.
	Predicted network.PredictedPlayerState

	// Visible is where the player is drawn: Predicted plus Correction, which
	// is the negated error still waiting to be bled in.
	VisibleX, VisibleY       float32
	CorrectionX, CorrectionY float32

	// Set once the first authoritative snapshot has arrived.
	Initialized bool
}

var PredictedBody = donburi.NewComponentType[PredictedBodyData]()
