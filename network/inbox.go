package network

import "github.com/automoto/arena-predict/shared/messages"

// SnapshotInbox hands the newest authoritative state from the network
// goroutine to the game loop. Put never blocks and replaces anything not yet
// taken; Take never blocks.
type SnapshotInbox struct {
	ch chan messages.PlayerState // size-1 buffered; latest wins
}

func NewSnapshotInbox() *SnapshotInbox {
	return &SnapshotInbox{ch: make(chan messages.PlayerState, 1)}
}

// Put stores ps, discarding an untaken older value. Only one goroutine may
// call Put.
func (in *SnapshotInbox) Put(ps messages.PlayerState) {
	select { // drain stale, push latest
	case <-in.ch:
	default:
	}
	in.ch <- ps
}

// Take returns the pending snapshot, if one arrived since the last Take.
func (in *SnapshotInbox) Take() (messages.PlayerState, bool) {
	select {
	case ps := <-in.ch:
		return ps, true
	default:
		return messages.PlayerState{}, false
	}
}
