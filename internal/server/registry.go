package server

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"chesslink/pkg/protocol"
)

// Room ids are generated from a shared counter and never reused, even
// after the room is deleted.
const roomIDBase = 1000

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrPlayerNotRegistered = errors.New("player not registered")
	ErrWrongPassword       = errors.New("wrong password")
	ErrRoomFull            = errors.New("room is full")
	ErrAlreadyInRoom       = errors.New("player already in this room")
)

// Registry tracks every live session and room, and coordinates the
// cross-connection effects: game-start broadcast, move forwarding and
// state-sync responses. It is mutated concurrently by every
// connection's goroutine.
type Registry struct {
	logger    *zap.Logger
	clock     clockwork.Clock
	analytics *Analytics

	mu      sync.RWMutex
	clients map[string]Session
	rooms   map[string]*Room
	roomSeq int
}

type RegistryOption func(*Registry)

func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithRegistryClock(clock clockwork.Clock) RegistryOption {
	return func(r *Registry) {
		r.clock = clock
	}
}

func WithAnalytics(analytics *Analytics) RegistryOption {
	return func(r *Registry) {
		r.analytics = analytics
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	registry := &Registry{
		clients: make(map[string]Session),
		rooms:   make(map[string]*Room),
		roomSeq: roomIDBase,
	}

	for _, opt := range opts {
		opt(registry)
	}

	if registry.logger == nil {
		registry.logger = zap.NewNop()
	}
	if registry.clock == nil {
		registry.clock = clockwork.NewRealClock()
	}

	return registry
}

// RegisterClient maps a player id to its session. Re-registering the
// same id silently replaces the previous entry; the old socket is torn
// down only by its own read loop.
func (r *Registry) RegisterClient(session Session) {
	r.mu.Lock()
	r.clients[session.PlayerID()] = session
	r.mu.Unlock()

	r.logger.Info("player registered",
		zap.String("playerId", session.PlayerID()),
		zap.String("playerName", session.PlayerName()),
	)
}

// RemoveClient unregisters a player and unseats it from its room, if
// any. Called from the connection's terminal cleanup path.
func (r *Registry) RemoveClient(playerID string) {
	r.mu.Lock()
	session, ok := r.clients[playerID]
	delete(r.clients, playerID)
	r.mu.Unlock()

	if !ok {
		return
	}

	r.logger.Info("player unregistered",
		zap.String("playerId", playerID),
		zap.String("playerName", session.PlayerName()),
	)
	r.analytics.Emit("player_disconnected", map[string]any{"playerId": playerID})

	if room := r.findPlayerRoom(playerID); room != nil {
		r.LeaveRoom(playerID, room.id)
	}
}

func (r *Registry) Client(playerID string) Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clients[playerID]
}

func (r *Registry) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// DisconnectAll flips every live session to disconnected with the given
// reason. Used by the server stop path.
func (r *Registry) DisconnectAll(reason string) {
	r.mu.RLock()
	sessions := make([]Session, 0, len(r.clients))
	for _, session := range r.clients {
		sessions = append(sessions, session)
	}
	r.mu.RUnlock()

	for _, session := range sessions {
		session.Disconnect(reason)
	}
}

// CreateRoom creates a room hosted (and auto-seated) by hostID.
func (r *Registry) CreateRoom(hostID, roomName, password, gameType string) (string, error) {
	r.mu.Lock()
	host, ok := r.clients[hostID]
	if !ok {
		r.mu.Unlock()
		return "", ErrPlayerNotRegistered
	}

	roomID := fmt.Sprintf("room_%d", r.roomSeq)
	r.roomSeq++
	room := newRoom(roomID, roomName, password, hostID, host.PlayerName(), gameType)
	r.rooms[roomID] = room
	r.mu.Unlock()

	r.logger.Info("room created",
		zap.String("roomId", roomID),
		zap.String("roomName", roomName),
		zap.String("host", host.PlayerName()),
	)
	r.analytics.Emit("room_created", map[string]any{
		"roomId":   roomID,
		"hostId":   hostID,
		"gameType": gameType,
	})

	return roomID, nil
}

// JoinRoom seats a player. If this join fills the room, the game-start
// broadcast runs synchronously before JoinRoom returns, so the caller's
// join response is sent after both GAME_START messages.
func (r *Registry) JoinRoom(playerID, roomID, password string) (opponentName string, err error) {
	r.mu.RLock()
	room := r.rooms[roomID]
	player := r.clients[playerID]
	r.mu.RUnlock()

	if room == nil {
		return "", ErrRoomNotFound
	}
	if player == nil {
		return "", ErrPlayerNotRegistered
	}
	if room.password != "" && room.password != password {
		return "", ErrWrongPassword
	}

	joined, started := room.AddPlayer(playerID, player.PlayerName())
	if !joined {
		if room.HasPlayer(playerID) {
			return "", ErrAlreadyInRoom
		}
		return "", ErrRoomFull
	}

	r.logger.Info("player joined room",
		zap.String("playerId", playerID),
		zap.String("playerName", player.PlayerName()),
		zap.String("roomId", roomID),
	)

	if started {
		r.startGame(room)
	}

	return room.OpponentName(playerID), nil
}

// startGame notifies both seats. Each send may independently fail
// without rolling back the PLAYING transition.
func (r *Registry) startGame(room *Room) {
	redID, blackID := room.Colors()
	red := r.Client(redID)
	black := r.Client(blackID)

	redName := ""
	blackName := ""
	if red != nil {
		redName = red.PlayerName()
	}
	if black != nil {
		blackName = black.PlayerName()
	}

	r.logger.Info("game started",
		zap.String("roomId", room.id),
		zap.String("red", redName),
		zap.String("black", blackName),
	)
	r.analytics.Emit("game_started", map[string]any{
		"roomId": room.id,
		"redId":  redID,
		"blackId": blackID,
	})

	if red != nil {
		red.Send(&protocol.GameStart{
			Envelope:    protocol.NewEnvelope(protocol.KindGameStart, protocol.ServerID, r.clock.Now()),
			RedPlayer:   redName,
			BlackPlayer: blackName,
			YourColor:   protocol.ColorRed,
		})
	}
	if black != nil {
		black.Send(&protocol.GameStart{
			Envelope:    protocol.NewEnvelope(protocol.KindGameStart, protocol.ServerID, r.clock.Now()),
			RedPlayer:   redName,
			BlackPlayer: blackName,
			YourColor:   protocol.ColorBlack,
		})
	}
}

// LeaveRoom unseats a player, notifies the remaining occupants and
// deletes the room once empty. Idempotent.
func (r *Registry) LeaveRoom(playerID, roomID string) {
	r.mu.RLock()
	room := r.rooms[roomID]
	r.mu.RUnlock()

	if room == nil {
		return
	}

	if room.RemovePlayer(playerID) {
		r.logger.Info("player left room",
			zap.String("playerId", playerID),
			zap.String("roomId", roomID),
		)
	}

	notice := &protocol.Disconnect{
		Envelope: protocol.NewEnvelope(protocol.KindDisconnect, playerID, r.clock.Now()),
		Reason:   "player left the room",
	}
	for _, remainingID := range room.PlayerIDs() {
		if session := r.Client(remainingID); session != nil {
			session.Send(notice)
		}
	}

	r.mu.Lock()
	if room.IsEmpty() {
		delete(r.rooms, roomID)
		r.logger.Info("empty room deleted", zap.String("roomId", roomID))
	}
	r.mu.Unlock()
}

// RoomList returns a snapshot of rooms ordered by room id, optionally
// filtered by game type.
func (r *Registry) RoomList(gameType string) []protocol.RoomInfo {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.RUnlock()

	list := make([]protocol.RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		if gameType != "" && gameType != room.gameType {
			continue
		}
		list = append(list, room.Info())
	}
	slices.SortFunc(list, func(a, b protocol.RoomInfo) int {
		return strings.Compare(a.RoomID, b.RoomID)
	})
	return list
}

// ForwardMove relays a move to the sender's unique opponent. Moves are
// never validated here; the server is rule-agnostic. Moves sent outside
// a PLAYING room are dropped.
func (r *Registry) ForwardMove(senderID string, move *protocol.Move) {
	room := r.findPlayerRoom(senderID)
	if room == nil || room.State() != protocol.GameStatePlaying {
		r.logger.Debug("dropping move outside of a playing room", zap.String("playerId", senderID))
		return
	}

	for _, playerID := range room.PlayerIDs() {
		if playerID == senderID {
			continue
		}
		opponent := r.Client(playerID)
		if opponent == nil {
			r.logger.Warn("opponent session gone, dropping move",
				zap.String("roomId", room.id),
				zap.String("opponentId", playerID),
			)
			return
		}
		opponent.Send(move)
		return
	}
}

// BuildSyncResponse reconstructs the game-start state for a client that
// may have missed the broadcast. Only the two seated participants can
// sync; the server does not track turn order or outcomes, so
// currentPlayer is always RED and the game-over fields stay empty.
func (r *Registry) BuildSyncResponse(requesterID, roomID string) *protocol.GameStateSyncResponse {
	envelope := protocol.NewEnvelope(protocol.KindGameStateSyncReply, protocol.ServerID, r.clock.Now())

	r.mu.RLock()
	room := r.rooms[roomID]
	r.mu.RUnlock()

	if room == nil {
		return &protocol.GameStateSyncResponse{
			Envelope:     envelope,
			RoomID:       roomID,
			Success:      false,
			ErrorMessage: "room does not exist",
		}
	}
	if !room.HasPlayer(requesterID) {
		return &protocol.GameStateSyncResponse{
			Envelope:     envelope,
			RoomID:       roomID,
			Success:      false,
			ErrorMessage: "player is not in this room",
		}
	}

	redID, blackID := room.Colors()

	var yourColor protocol.Color
	switch requesterID {
	case redID:
		yourColor = protocol.ColorRed
	case blackID:
		yourColor = protocol.ColorBlack
	default:
		return &protocol.GameStateSyncResponse{
			Envelope:     envelope,
			RoomID:       roomID,
			Success:      false,
			ErrorMessage: "only participants can sync",
		}
	}

	redName := ""
	blackName := ""
	if red := r.Client(redID); red != nil {
		redName = red.PlayerName()
	}
	if black := r.Client(blackID); black != nil {
		blackName = black.PlayerName()
	}

	state := room.State()
	return &protocol.GameStateSyncResponse{
		Envelope:      envelope,
		RoomID:        roomID,
		Success:       true,
		RedPlayer:     redName,
		BlackPlayer:   blackName,
		YourColor:     yourColor,
		CurrentPlayer: protocol.ColorRed,
		GameState:     state,
		IsGameStarted: state == protocol.GameStatePlaying,
		IsGameOver:    false,
	}
}

func (r *Registry) findPlayerRoom(playerID string) *Room {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.RUnlock()

	for _, room := range rooms {
		if room.HasPlayer(playerID) {
			return room
		}
	}
	return nil
}
