package messages

// JoinRequest is sent by a client after connecting to request joining the game.
type JoinRequest struct {
	Version    string
	PlayerName string
	Level      string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	PlayerID   uint16
	ServerName string
	TickRate   int
	Level      string
	ServerTime uint32 // server clock at acceptance, ms
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
