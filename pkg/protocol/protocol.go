package protocol

// Version is the protocol version exchanged during the handshake.
const Version = "1.0.0"

// ServerID is the sender id the broker stamps on its own messages.
const ServerID = "server"

// MaxRoomPlayers is fixed: rooms seat exactly two players.
const MaxRoomPlayers = 2

// Kind is the wire tag selecting the payload shape of a message.
type Kind string

const (
	KindConnectRequest  Kind = "CONNECT_REQUEST"
	KindConnectResponse Kind = "CONNECT_RESPONSE"
	KindDisconnect      Kind = "DISCONNECT"

	KindCreateRoomRequest  Kind = "CREATE_ROOM_REQUEST"
	KindCreateRoomResponse Kind = "CREATE_ROOM_RESPONSE"
	KindJoinRoomRequest    Kind = "JOIN_ROOM_REQUEST"
	KindJoinRoomResponse   Kind = "JOIN_ROOM_RESPONSE"
	KindLeaveRoom          Kind = "LEAVE_ROOM"
	KindRoomListRequest    Kind = "ROOM_LIST_REQUEST"
	KindRoomListResponse   Kind = "ROOM_LIST_RESPONSE"

	KindGameStart            Kind = "GAME_START"
	KindGameEnd              Kind = "GAME_END"
	KindMove                 Kind = "MOVE"
	KindGameStateUpdate      Kind = "GAME_STATE_UPDATE"
	KindGameStateSyncRequest Kind = "GAME_STATE_SYNC_REQUEST"
	KindGameStateSyncReply   Kind = "GAME_STATE_SYNC_RESPONSE"

	KindHeartbeat Kind = "HEARTBEAT"
	KindError     Kind = "ERROR"
	KindChat      Kind = "CHAT"
)

// Color is a player's side. The room host always plays red.
type Color string

const (
	ColorRed   Color = "RED"
	ColorBlack Color = "BLACK"
)

func (c Color) Opposite() Color {
	if c == ColorRed {
		return ColorBlack
	}
	return ColorRed
}

// GameState is the room's lifecycle state as the broker tracks it. The
// broker never inspects the board, so there is no finished state: a
// room is deleted when its last player leaves.
type GameState string

const (
	GameStateWaiting GameState = "WAITING"
	GameStatePlaying GameState = "PLAYING"
)

// RoomInfo is the lobby listing entry for one room.
type RoomInfo struct {
	RoomID         string `json:"roomId"`
	RoomName       string `json:"roomName"`
	HostName       string `json:"hostName"`
	CurrentPlayers int    `json:"currentPlayers"`
	MaxPlayers     int    `json:"maxPlayers"`
	HasPassword    bool   `json:"hasPassword"`
	GameStatus     string `json:"gameStatus"`
	GameType       string `json:"gameType"`
}
