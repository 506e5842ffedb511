package raftchat

// ConnectionState represents the current state of the push-stream
// connection.
type ConnectionState int

const (
	// StateDisconnected means the push stream is not connected.
	StateDisconnected ConnectionState = iota

	// StateConnecting means the client is establishing the connection.
	StateConnecting

	// StateConnected means the push stream is live.
	StateConnected

	// StateClosed means the client has been explicitly closed.
	StateClosed
)

// String returns the string representation of a ConnectionState.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
