package client

// ConnectionState tracks the client's lifecycle. Transitions are
// strictly sequential: DISCONNECTED -> CONNECTING -> CONNECTED, and any
// teardown returns to DISCONNECTED.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	}
	return "UNKNOWN"
}
