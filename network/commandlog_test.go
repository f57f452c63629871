package network

import (
	"testing"

	"github.com/automoto/arena-predict/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cmdAt(seq, serverTime uint32) messages.UserCommand {
	return messages.UserCommand{Sequence: seq, ServerTime: serverTime, MoveRight: 1}
}

func sequences(cmds []messages.UserCommand) []uint32 {
	out := make([]uint32, len(cmds))
	for i, c := range cmds {
		out[i] = c.Sequence
	}
	return out
}

func TestCommandLogAppendAndGet(t *testing.T) {
	l := NewCommandLog(8)
	for i := uint32(0); i < 5; i++ {
		require.NoError(t, l.Append(cmdAt(i, 100+i*16)))
	}

	assert.Equal(t, 5, l.Len())
	assert.Equal(t, uint32(5), l.NextSeq())
	assert.Equal(t, uint32(164), l.LastServerTime())

	got, ok := l.Get(3)
	require.True(t, ok)
	assert.Equal(t, uint32(148), got.ServerTime)

	_, ok = l.Get(5)
	assert.False(t, ok)
}

func TestCommandLogRejectsDisorder(t *testing.T) {
	l := NewCommandLog(8)
	require.NoError(t, l.Append(cmdAt(10, 500)))

	err := l.Append(cmdAt(10, 516))
	assert.ErrorIs(t, err, ErrSequenceOutOfOrder)

	err = l.Append(cmdAt(9, 516))
	assert.ErrorIs(t, err, ErrSequenceOutOfOrder)

	err = l.Append(cmdAt(11, 499))
	assert.ErrorIs(t, err, ErrServerTimeRegressed)

	// Equal server times are allowed.
	require.NoError(t, l.Append(cmdAt(11, 500)))
	assert.Equal(t, []uint32{10, 11}, sequences(l.All()))
}

func TestCommandLogWraps(t *testing.T) {
	l := NewCommandLog(DefaultCommandBackup)
	for i := uint32(0); i < 70; i++ {
		require.NoError(t, l.Append(cmdAt(i, i*16)))
	}

	assert.Equal(t, DefaultCommandBackup, l.Len())
	for seq := uint32(0); seq < 6; seq++ {
		_, ok := l.Get(seq)
		assert.False(t, ok, "seq %d should be evicted", seq)
	}
	_, ok := l.Get(6)
	assert.True(t, ok)

	all := l.All()
	require.Len(t, all, DefaultCommandBackup)
	assert.Equal(t, uint32(6), all[0].Sequence)
	assert.Equal(t, uint32(69), all[len(all)-1].Sequence)
}

func TestCommandLogSequenceGap(t *testing.T) {
	l := NewCommandLog(4)
	require.NoError(t, l.Append(cmdAt(0, 0)))
	require.NoError(t, l.Append(cmdAt(1, 16)))
	require.NoError(t, l.Append(cmdAt(5, 80)))

	assert.Equal(t, []uint32{5}, sequences(l.All()))

	require.NoError(t, l.Append(cmdAt(6, 96)))
	require.NoError(t, l.Append(cmdAt(1000, 20000)))
	assert.Equal(t, []uint32{1000}, sequences(l.All()))
}

func TestCommandLogSinceAndRecent(t *testing.T) {
	l := NewCommandLog(16)
	for i := uint32(1); i <= 10; i++ {
		require.NoError(t, l.Append(cmdAt(i, i*16)))
	}

	assert.Equal(t, []uint32{8, 9, 10}, sequences(l.Since(7)))
	assert.Empty(t, l.Since(10))
	assert.Len(t, l.Since(0), 10)

	assert.Equal(t, []uint32{9, 10}, sequences(l.Recent(2)))
	assert.Len(t, l.Recent(50), 10)
	assert.Empty(t, l.Recent(0))
}

func TestCommandLogPrune(t *testing.T) {
	l := NewCommandLog(16)
	for i := uint32(0); i < 6; i++ {
		require.NoError(t, l.Append(cmdAt(i, 100+i*10)))
	}

	assert.Equal(t, 3, l.Prune(120))
	assert.Equal(t, []uint32{3, 4, 5}, sequences(l.All()))

	assert.Zero(t, l.Prune(120))
	assert.Zero(t, l.Prune(50))

	assert.Equal(t, 3, l.Prune(1000))
	assert.Zero(t, l.Len())

	require.NoError(t, l.Append(cmdAt(6, 160)))
	assert.Equal(t, []uint32{6}, sequences(l.All()))
}

func TestCommandLogRecord(t *testing.T) {
	l := NewCommandLog(8)

	first, err := l.Record(messages.UserCommand{ServerTime: 10})
	require.NoError(t, err)
	second, err := l.Record(messages.UserCommand{ServerTime: 26})
	require.NoError(t, err)

	assert.Equal(t, uint32(0), first.Sequence)
	assert.Equal(t, uint32(1), second.Sequence)

	_, err = l.Record(messages.UserCommand{ServerTime: 5})
	assert.ErrorIs(t, err, ErrServerTimeRegressed)
	assert.Equal(t, 2, l.Len())
}

func TestCommandLogEmpty(t *testing.T) {
	l := NewCommandLog(0)
	assert.Zero(t, l.Len())
	assert.Empty(t, l.All())
	assert.Empty(t, l.Since(0))
	assert.Zero(t, l.Prune(100))
	_, ok := l.Get(0)
	assert.False(t, ok)
}
