package client

import "chesslink/pkg/protocol"

//go:generate mockgen -source=listener.go -destination=mock/listener.go

// Listener receives client events. All methods are invoked from a
// single dispatch goroutine, never from the network read loop, so
// implementations are free to touch presentation state without extra
// locking.
type Listener interface {
	OnConnected()
	OnDisconnected(reason string)
	OnConnectionError(message string)

	OnRoomCreated(roomID string)
	OnRoomJoined(roomID, opponentName string)
	OnRoomListReceived(rooms []protocol.RoomInfo)

	OnGameStarted(redPlayer, blackPlayer string, yourColor protocol.Color)
	OnMoveReceived(fromRow, fromCol, toRow, toCol int)
	OnGameEnded(winner, reason string)
	OnGameStateUpdate(gameState string, currentPlayer protocol.Color, isGameOver bool, winner string)

	OnChatReceived(senderID, content string)
	OnError(message string)

	// OnMessage is the catch-all for decodable kinds with no dedicated
	// callback.
	OnMessage(message protocol.Message)
}
