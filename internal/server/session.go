package server

import "chesslink/pkg/protocol"

//go:generate mockgen -source=session.go -destination=mock/session.go

// Session is the registry's view of one connected player. Implemented
// by Handler; mocked in tests.
type Session interface {
	PlayerID() string
	PlayerName() string
	Send(message protocol.Message)
	Disconnect(reason string)
}
