package main

import "github.com/automoto/arena-predict/shared/messages"

// strafeCommand produces a repeating run-left, run-right pattern with a jump
// at each turn, timed on the server clock.
func strafeCommand(serverTime uint32) messages.UserCommand {
	const period = 3000
	t := serverTime % period
	cmd := messages.UserCommand{ServerTime: serverTime, MoveRight: 1}
	if t >= period/2 {
		cmd.MoveRight = -1
		cmd.Angles = 3.1416
	}
	if t < 100 || (t >= period/2 && t < period/2+100) {
		cmd.Buttons |= messages.ButtonJump
	}
	return cmd
}
