package ws

const (
	// client - server
	MsgAuth = "auth"
	MsgPing = "ping"

	// server - client
	MsgReady      = "ready"
	MsgAuthResult = "auth_result"
	MsgPong       = "pong"
	MsgError      = "error"
)
