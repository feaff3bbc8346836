package view

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"chesslink/internal/view/messages"
	"chesslink/pkg/protocol"
)

// Sender is the part of tea.Program the forwarder needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Forwarder turns client listener callbacks into tea messages. The
// callbacks arrive on the client's dispatch goroutine; tea.Program.Send
// is the one safe way to hand them to the UI loop.
type Forwarder struct {
	logger *zap.Logger

	mu      sync.Mutex
	program Sender
	backlog []tea.Msg
}

func NewForwarder(logger *zap.Logger) *Forwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forwarder{logger: logger}
}

// Attach binds the running program and flushes callbacks that arrived
// before the UI loop existed.
func (f *Forwarder) Attach(program Sender) {
	f.mu.Lock()
	f.program = program
	backlog := f.backlog
	f.backlog = nil
	f.mu.Unlock()

	for _, msg := range backlog {
		program.Send(msg)
	}
}

func (f *Forwarder) send(msg tea.Msg) {
	f.mu.Lock()
	program := f.program
	if program == nil {
		f.backlog = append(f.backlog, msg)
	}
	f.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

func (f *Forwarder) OnConnected() {
	f.send(messages.ConnectedMessage{})
}

func (f *Forwarder) OnDisconnected(reason string) {
	f.send(messages.DisconnectedMessage{Reason: reason})
}

func (f *Forwarder) OnConnectionError(message string) {
	f.send(messages.FatalErrorMessage{Err: errors.New(message)})
}

func (f *Forwarder) OnRoomCreated(roomID string) {
	f.send(messages.RoomCreatedMessage{RoomID: roomID})
}

func (f *Forwarder) OnRoomJoined(roomID, opponentName string) {
	f.send(messages.RoomJoinedMessage{RoomID: roomID, OpponentName: opponentName})
}

func (f *Forwarder) OnRoomListReceived(rooms []protocol.RoomInfo) {
	f.send(messages.RoomListMessage{Rooms: rooms})
}

func (f *Forwarder) OnGameStarted(redPlayer, blackPlayer string, yourColor protocol.Color) {
	f.send(messages.GameStartedMessage{
		RedPlayer:   redPlayer,
		BlackPlayer: blackPlayer,
		YourColor:   yourColor,
	})
}

func (f *Forwarder) OnMoveReceived(fromRow, fromCol, toRow, toCol int) {
	f.send(messages.MoveMessage{
		FromRow: fromRow,
		FromCol: fromCol,
		ToRow:   toRow,
		ToCol:   toCol,
	})
}

func (f *Forwarder) OnGameEnded(winner, reason string) {
	f.send(messages.GameEndedMessage{Winner: winner, Reason: reason})
}

func (f *Forwarder) OnGameStateUpdate(gameState string, currentPlayer protocol.Color, isGameOver bool, winner string) {
	f.send(messages.GameStateUpdateMessage{
		GameState:     gameState,
		CurrentPlayer: currentPlayer,
		IsGameOver:    isGameOver,
		Winner:        winner,
	})
}

func (f *Forwarder) OnChatReceived(senderID, content string) {
	f.send(messages.ChatReceivedMessage{SenderID: senderID, Content: content})
}

func (f *Forwarder) OnError(message string) {
	f.send(messages.NewErrorMessage(errors.New(message)))
}

func (f *Forwarder) OnMessage(message protocol.Message) {
	f.logger.Debug("unhandled message kind",
		zap.String("type", string(message.Base().Kind)),
	)
}
