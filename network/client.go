package network

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/arena-predict/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Client manages a WebSocket connection to the game server. It forwards the
// local player's authoritative state into Inbox and sends UserCommands.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	playerID   uint16
	serverName string
	tickRate   int
	level      string
	conn       *websocket.Conn

	// Server clock estimate: server time at join plus local time since.
	serverTimeAtJoin uint32
	joinedAt         time.Time

	Inbox *SnapshotInbox

	now func() time.Time
}

func NewClient() *Client {
	return &Client{
		state: StateDisconnected,
		Inbox: NewSnapshotInbox(),
		now:   time.Now,
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName, level string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[netclient] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
			Level:      level,
		}); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.handleJoinAccepted(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[netclient] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snap messages.Snapshot) {
		c.handleSnapshot(snap)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[netclient] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[netclient] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) handleJoinAccepted(msg messages.JoinAccepted) {
	log.Printf("[netclient] join accepted: player=%d server=%s tickRate=%d level=%s",
		msg.PlayerID, msg.ServerName, msg.TickRate, msg.Level)
	c.mu.Lock()
	c.playerID = msg.PlayerID
	c.serverName = msg.ServerName
	c.tickRate = msg.TickRate
	c.level = msg.Level
	c.serverTimeAtJoin = msg.ServerTime
	c.joinedAt = c.now()
	c.state = StateJoinedGame
	c.mu.Unlock()
}

// handleSnapshot forwards the local player's entry. Snapshots arriving
// before the join completes are dropped.
func (c *Client) handleSnapshot(snap messages.Snapshot) {
	c.mu.RLock()
	joined := c.state == StateJoinedGame
	id := c.playerID
	c.mu.RUnlock()
	if !joined {
		return
	}
	if ps, ok := snap.Player(id); ok {
		c.Inbox.Put(ps)
	}
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) PlayerID() uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

func (c *Client) Level() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// ServerTime estimates the server clock in ms. It is zero before joining.
func (c *Client) ServerTime() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateJoinedGame {
		return 0
	}
	return c.serverTimeAtJoin + uint32(c.now().Sub(c.joinedAt).Milliseconds())
}

// SendCommand sends one command to the server.
func (c *Client) SendCommand(cmd messages.UserCommand) error {
	return c.SendMessage(cmd)
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
