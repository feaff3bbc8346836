package protocol

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope carries the fields common to every wire message. The kind is
// fixed at construction and selects the payload shape on decode.
type Envelope struct {
	Kind      Kind   `json:"type"`
	ID        string `json:"messageId"`
	Timestamp string `json:"timestamp"`
	SenderID  string `json:"senderId"`
}

func (e *Envelope) Base() *Envelope {
	return e
}

func (e *Envelope) String() string {
	return fmt.Sprintf("%s[id=%s, sender=%s, time=%s]", e.Kind, e.ID, e.SenderID, e.Timestamp)
}

// Message is implemented by every concrete wire message through an
// embedded Envelope.
type Message interface {
	Base() *Envelope
}

// TimestampFormat is local time with second precision and no zone.
const TimestampFormat = "2006-01-02T15:04:05"

// NewEnvelope stamps a fresh envelope. The message id is unique per
// message and used for logging only, never for ordering.
func NewEnvelope(kind Kind, senderID string, now time.Time) Envelope {
	return Envelope{
		Kind:      kind,
		ID:        fmt.Sprintf("msg_%d_%s", now.UnixMilli(), uuid.NewString()[:8]),
		Timestamp: now.Format(TimestampFormat),
		SenderID:  senderID,
	}
}

type ConnectRequest struct {
	Envelope
	PlayerName    string `json:"playerName"`
	ClientVersion string `json:"clientVersion"`
}

type ConnectResponse struct {
	Envelope
	Success       bool   `json:"success"`
	PlayerID      string `json:"playerId,omitempty"`
	ServerVersion string `json:"serverVersion,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

type Disconnect struct {
	Envelope
	Reason string `json:"reason"`
}

type CreateRoomRequest struct {
	Envelope
	RoomName   string `json:"roomName"`
	Password   string `json:"password"`
	MaxPlayers int    `json:"maxPlayers"`
	GameType   string `json:"gameType"`
}

type CreateRoomResponse struct {
	Envelope
	Success      bool   `json:"success"`
	RoomID       string `json:"roomId,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type JoinRoomRequest struct {
	Envelope
	RoomID   string `json:"roomId"`
	Password string `json:"password"`
}

type JoinRoomResponse struct {
	Envelope
	Success      bool   `json:"success"`
	RoomID       string `json:"roomId,omitempty"`
	OpponentName string `json:"opponentName,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type LeaveRoom struct {
	Envelope
	RoomID string `json:"roomId"`
}

type RoomListRequest struct {
	Envelope
	GameType string `json:"gameType,omitempty"`
}

type RoomListResponse struct {
	Envelope
	Rooms []RoomInfo `json:"rooms"`
}

type GameStart struct {
	Envelope
	RedPlayer   string `json:"redPlayer"`
	BlackPlayer string `json:"blackPlayer"`
	YourColor   Color  `json:"yourColor"`
}

type GameEnd struct {
	Envelope
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

type Move struct {
	Envelope
	FromRow      int    `json:"fromRow"`
	FromCol      int    `json:"fromCol"`
	ToRow        int    `json:"toRow"`
	ToCol        int    `json:"toCol"`
	MoveNotation string `json:"moveNotation,omitempty"`
}

type GameStateUpdate struct {
	Envelope
	GameState     string `json:"gameState"`
	CurrentPlayer Color  `json:"currentPlayer"`
	IsGameOver    bool   `json:"isGameOver"`
	Winner        string `json:"winner,omitempty"`
}

type GameStateSyncRequest struct {
	Envelope
	RoomID string `json:"roomId"`
	Reason string `json:"reason,omitempty"`
}

type GameStateSyncResponse struct {
	Envelope
	RoomID        string    `json:"roomId"`
	Success       bool      `json:"success"`
	ErrorMessage  string    `json:"errorMessage,omitempty"`
	RedPlayer     string    `json:"redPlayer,omitempty"`
	BlackPlayer   string    `json:"blackPlayer,omitempty"`
	YourColor     Color     `json:"yourColor,omitempty"`
	CurrentPlayer Color     `json:"currentPlayer,omitempty"`
	GameState     GameState `json:"gameState,omitempty"`
	IsGameStarted bool      `json:"isGameStarted"`
	IsGameOver    bool      `json:"isGameOver"`
	Winner        string    `json:"winner,omitempty"`
}

type Heartbeat struct {
	Envelope
	ClientTime int64 `json:"clientTime,omitempty"`
}

type Error struct {
	Envelope
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	Details      string `json:"details,omitempty"`
}

type Chat struct {
	Envelope
	Content    string `json:"content"`
	TargetType string `json:"targetType"` // "room", "private" or "global"
	TargetID   string `json:"targetId,omitempty"`
}
