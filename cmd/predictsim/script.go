package main

import "github.com/automoto/arena-predict/shared/messages"

// scriptPeriodMs is the length of one loop of the scripted input.
const scriptPeriodMs = 4000

// scriptedCommand returns the local input for time ms: run right, hop, sprint,
// run back left, jump, then a crouched shuffle.
func scriptedCommand(ms uint32) messages.UserCommand {
	t := ms % scriptPeriodMs
	cmd := messages.UserCommand{ServerTime: ms}

	switch {
	case t < 1200:
		cmd.MoveRight = 1
	case t < 1300:
		cmd.MoveRight = 1
		cmd.Buttons = messages.ButtonJump
	case t < 2000:
		cmd.MoveRight = 1
		cmd.Buttons = messages.ButtonHaste
	case t < 3200:
		cmd.MoveRight = -1
		cmd.Angles = 3.1416
	case t < 3300:
		cmd.Buttons = messages.ButtonJump
		cmd.Angles = 3.1416
	default:
		cmd.MoveRight = -0.5
		cmd.Buttons = messages.ButtonCrouch
		cmd.Angles = 3.1416
	}
	return cmd
}
