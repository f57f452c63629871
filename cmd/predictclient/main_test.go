package main

import (
	"testing"

	"github.com/automoto/arena-predict/network"
	"github.com/automoto/arena-predict/shared/logger"
	"github.com/automoto/arena-predict/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrafeCommand(t *testing.T) {
	tests := []struct {
		at        uint32
		moveRight float32
		jump      bool
	}{
		{0, 1, true},
		{50, 1, true},
		{100, 1, false},
		{1499, 1, false},
		{1500, -1, true},
		{1650, -1, false},
		{3050, 1, true},
	}

	for _, tt := range tests {
		cmd := strafeCommand(tt.at)
		assert.Equal(t, tt.at, cmd.ServerTime)
		assert.Equal(t, tt.moveRight, cmd.MoveRight, "t=%d", tt.at)
		assert.Equal(t, tt.jump, cmd.Pressed(messages.ButtonJump), "t=%d", tt.at)
	}
}

func TestResolveMapFallsBackToArena(t *testing.T) {
	m, err := resolveMap("", "anything")
	require.NoError(t, err)
	assert.Equal(t, "arena", m.Name)

	_, err = resolveMap(t.TempDir(), "")
	assert.Error(t, err)
}

func TestRunDisconnectsWhenJoinFails(t *testing.T) {
	client := network.NewClient()
	err := run(options{addr: "127.0.0.1:1", fps: 60}, logger.Discard(), client)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "join 127.0.0.1:1")
	assert.Equal(t, network.StateDisconnected, client.State())
}
