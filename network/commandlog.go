package network

import (
	"errors"
	"fmt"

	"github.com/automoto/arena-predict/shared/messages"
)

// DefaultCommandBackup is the command log capacity when none is configured.
const DefaultCommandBackup = 64

var (
	ErrSequenceOutOfOrder  = errors.New("command sequence not increasing")
	ErrServerTimeRegressed = errors.New("command server time went backwards")
)

type commandSlot struct {
	cmd messages.UserCommand
	set bool
}

// CommandLog is a ring buffer of locally issued commands, ordered by sequence.
// Commands are kept until a snapshot covering their server time arrives or
// they are overwritten by newer ones.
type CommandLog struct {
	history []commandSlot

	oldest   uint32 // lowest sequence still retained
	nextSeq  uint32
	lastTime uint32
	started  bool
}

// NewCommandLog returns a log holding up to capacity commands.
func NewCommandLog(capacity int) *CommandLog {
	if capacity <= 0 {
		capacity = DefaultCommandBackup
	}
	return &CommandLog{history: make([]commandSlot, capacity)}
}

// Append stores cmd. Sequences must strictly increase and server times must
// not decrease; anything else is rejected and the log is left unchanged.
func (l *CommandLog) Append(cmd messages.UserCommand) error {
	if l.started {
		if cmd.Sequence < l.nextSeq {
			return fmt.Errorf("append seq %d after %d: %w", cmd.Sequence, l.nextSeq-1, ErrSequenceOutOfOrder)
		}
		if cmd.ServerTime < l.lastTime {
			return fmt.Errorf("append seq %d at %dms after %dms: %w", cmd.Sequence, cmd.ServerTime, l.lastTime, ErrServerTimeRegressed)
		}
	} else {
		l.oldest = cmd.Sequence
		l.started = true
	}

	size := uint32(len(l.history))
	// A sequence gap can skip past slots that still hold old commands.
	if cmd.Sequence-l.oldest >= size {
		newOldest := cmd.Sequence - size + 1
		if newOldest-l.oldest >= size {
			clear(l.history)
		} else {
			for seq := l.oldest; seq < newOldest; seq++ {
				l.history[seq%size] = commandSlot{}
			}
		}
		l.oldest = newOldest
	}

	l.history[cmd.Sequence%size] = commandSlot{cmd: cmd, set: true}
	l.nextSeq = cmd.Sequence + 1
	l.lastTime = cmd.ServerTime
	return nil
}

// Record assigns the next sequence number to cmd and appends it.
func (l *CommandLog) Record(cmd messages.UserCommand) (messages.UserCommand, error) {
	cmd.Sequence = l.nextSeq
	if err := l.Append(cmd); err != nil {
		return messages.UserCommand{}, err
	}
	return cmd, nil
}

// Get retrieves a stored command by sequence number. Returns false if not
// found or if the slot has been overwritten.
func (l *CommandLog) Get(seq uint32) (messages.UserCommand, bool) {
	if !l.started || seq < l.oldest || seq >= l.nextSeq {
		return messages.UserCommand{}, false
	}
	slot := l.history[seq%uint32(len(l.history))]
	if !slot.set || slot.cmd.Sequence != seq {
		return messages.UserCommand{}, false
	}
	return slot.cmd, true
}

// NextSeq returns the next expected sequence number.
func (l *CommandLog) NextSeq() uint32 {
	return l.nextSeq
}

// LastServerTime returns the server time of the newest command.
func (l *CommandLog) LastServerTime() uint32 {
	return l.lastTime
}

// Since returns all retained commands with a sequence number greater than
// lastAcked, oldest first.
func (l *CommandLog) Since(lastAcked uint32) []messages.UserCommand {
	from := l.oldest
	if lastAcked+1 > from {
		from = lastAcked + 1
	}
	return l.collect(from)
}

// All returns every retained command, oldest first.
func (l *CommandLog) All() []messages.UserCommand {
	return l.collect(l.oldest)
}

// Recent returns up to n of the newest commands, oldest first.
func (l *CommandLog) Recent(n int) []messages.UserCommand {
	all := l.All()
	if n >= 0 && len(all) > n {
		return all[len(all)-n:]
	}
	return all
}

// Len returns the number of retained commands.
func (l *CommandLog) Len() int {
	n := 0
	for seq := l.oldest; l.started && seq < l.nextSeq; seq++ {
		if _, ok := l.Get(seq); ok {
			n++
		}
	}
	return n
}

// Prune drops leading commands already covered by an authoritative snapshot
// (ServerTime <= commandTime) and returns how many were removed.
func (l *CommandLog) Prune(commandTime uint32) int {
	removed := 0
	size := uint32(len(l.history))
	for l.started && l.oldest < l.nextSeq {
		cmd, ok := l.Get(l.oldest)
		if ok && cmd.ServerTime > commandTime {
			break
		}
		if ok {
			removed++
		}
		l.history[l.oldest%size] = commandSlot{}
		l.oldest++
	}
	return removed
}

func (l *CommandLog) collect(from uint32) []messages.UserCommand {
	var out []messages.UserCommand
	for seq := from; l.started && seq < l.nextSeq; seq++ {
		if cmd, ok := l.Get(seq); ok {
			out = append(out, cmd)
		}
	}
	return out
}
