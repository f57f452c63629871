package components

import (
	"github.com/automoto/arena-predict/network"
	"github.com/yohamta/donburi/features/events"
)

// LandedEventData fires once when a prediction first reports a landing.
type LandedEventData struct {
	PlayerID uint16
	X, Y     float32
}

// JumpPadEventData fires once when a prediction first reports a jump pad.
type JumpPadEventData struct {
	PlayerID uint16
	X, Y     float32
}

// DesyncEventData is published for every hard prediction error.
type DesyncEventData struct {
	PlayerID uint16
	Error    network.PredictionError
}

var (
	LandedEvent  = events.NewEventType[LandedEventData]()
	JumpPadEvent = events.NewEventType[JumpPadEventData]()
	DesyncEvent  = events.NewEventType[DesyncEventData]()
)
