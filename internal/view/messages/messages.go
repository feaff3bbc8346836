package messages

import (
	"chesslink/internal/view/states"
	"chesslink/pkg/protocol"
)

type FatalErrorMessage struct {
	Err error
}

type ErrorMessage struct {
	Err error
}

func NewErrorMessage(err error) ErrorMessage {
	return ErrorMessage{Err: err}
}

type AppStateMessage struct {
	State states.AppState
}

type ConnectedMessage struct {
	PlayerID string
}

type DisconnectedMessage struct {
	Reason string
}

type RoomCreatedMessage struct {
	RoomID string
}

type RoomJoinedMessage struct {
	RoomID       string
	OpponentName string
}

type RoomListMessage struct {
	Rooms []protocol.RoomInfo
}

type GameStartedMessage struct {
	RedPlayer   string
	BlackPlayer string
	YourColor   protocol.Color
}

type MoveMessage struct {
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
}

type GameEndedMessage struct {
	Winner string
	Reason string
}

type GameStateUpdateMessage struct {
	GameState     string
	CurrentPlayer protocol.Color
	IsGameOver    bool
	Winner        string
}

type ChatReceivedMessage struct {
	SenderID string
	Content  string
}
