package server

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"chesslink/pkg/protocol"
)

// Handler owns one accepted socket end to end: the blocking read loop,
// per-kind dispatch and the synchronized write path.
type Handler struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	registry *Registry
	conn     net.Conn

	writeMu   sync.Mutex
	writer    *bufio.Writer
	connected atomic.Bool

	infoMu     sync.RWMutex
	playerID   string
	playerName string
}

type HandlerOption func(*Handler)

func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithHandlerClock(clock clockwork.Clock) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

func NewHandler(conn net.Conn, registry *Registry, opts ...HandlerOption) *Handler {
	handler := &Handler{
		registry: registry,
		conn:     conn,
		writer:   bufio.NewWriter(conn),
	}

	for _, opt := range opts {
		opt(handler)
	}

	if handler.logger == nil {
		handler.logger = zap.NewNop()
	}
	if handler.clock == nil {
		handler.clock = clockwork.NewRealClock()
	}
	handler.logger = handler.logger.With(zap.String("remote", conn.RemoteAddr().String()))

	return handler
}

func (h *Handler) PlayerID() string {
	h.infoMu.RLock()
	defer h.infoMu.RUnlock()
	return h.playerID
}

func (h *Handler) PlayerName() string {
	h.infoMu.RLock()
	defer h.infoMu.RUnlock()
	return h.playerName
}

// Run reads lines until EOF, a read error or an explicit disconnect,
// then always runs the terminal cleanup. Message-level failures are
// answered with an ERROR envelope and never terminate the loop.
func (h *Handler) Run() {
	h.connected.Store(true)
	defer h.cleanup()

	reader := bufio.NewReader(h.conn)
	for h.connected.Load() {
		line, err := reader.ReadString('\n')
		if err != nil {
			if h.connected.Load() {
				h.logger.Info("connection closed", zap.Error(err))
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.processLine(line)
	}
}

func (h *Handler) processLine(line string) {
	message, err := protocol.Decode([]byte(line))
	if err != nil {
		h.logger.Warn("failed to decode message", zap.Error(err), zap.String("raw", line))
		h.sendError("INVALID_MESSAGE", err.Error())
		return
	}

	h.logger.Debug("message received",
		zap.String("type", string(message.Base().Kind)),
		zap.String("player", h.PlayerName()),
	)

	if err := h.dispatch(message); err != nil {
		h.logger.Error("failed to process message",
			zap.String("type", string(message.Base().Kind)),
			zap.Error(err),
		)
		h.sendError("PROCESSING_ERROR", err.Error())
	}
}

func (h *Handler) dispatch(message protocol.Message) error {
	switch m := message.(type) {
	case *protocol.ConnectRequest:
		h.handleConnectRequest(m)
	case *protocol.CreateRoomRequest:
		h.handleCreateRoomRequest(m)
	case *protocol.JoinRoomRequest:
		h.handleJoinRoomRequest(m)
	case *protocol.RoomListRequest:
		h.handleRoomListRequest(m)
	case *protocol.Move:
		h.registry.ForwardMove(h.PlayerID(), m)
	case *protocol.GameStateSyncRequest:
		h.handleSyncRequest(m)
	case *protocol.LeaveRoom:
		h.registry.LeaveRoom(h.PlayerID(), m.RoomID)
	case *protocol.Disconnect:
		h.Disconnect("client requested disconnect")
	case *protocol.Heartbeat:
		h.Send(&protocol.Heartbeat{
			Envelope: protocol.NewEnvelope(protocol.KindHeartbeat, protocol.ServerID, h.clock.Now()),
		})
	case *protocol.Chat:
		// Accepted but not routed anywhere yet.
	default:
		h.logger.Debug("ignoring unexpected message kind",
			zap.String("type", string(message.Base().Kind)),
		)
	}
	return nil
}

func (h *Handler) handleConnectRequest(request *protocol.ConnectRequest) {
	h.infoMu.Lock()
	h.playerID = request.SenderID
	h.playerName = request.PlayerName
	h.infoMu.Unlock()

	h.registry.RegisterClient(h)

	h.Send(&protocol.ConnectResponse{
		Envelope:      protocol.NewEnvelope(protocol.KindConnectResponse, protocol.ServerID, h.clock.Now()),
		Success:       true,
		PlayerID:      request.SenderID,
		ServerVersion: protocol.Version,
	})
}

func (h *Handler) handleCreateRoomRequest(request *protocol.CreateRoomRequest) {
	envelope := protocol.NewEnvelope(protocol.KindCreateRoomResponse, protocol.ServerID, h.clock.Now())

	roomID, err := h.registry.CreateRoom(h.PlayerID(), request.RoomName, request.Password, request.GameType)
	if err != nil {
		h.Send(&protocol.CreateRoomResponse{
			Envelope:     envelope,
			Success:      false,
			ErrorMessage: "failed to create room: " + err.Error(),
		})
		return
	}

	h.Send(&protocol.CreateRoomResponse{
		Envelope: envelope,
		Success:  true,
		RoomID:   roomID,
	})
}

func (h *Handler) handleJoinRoomRequest(request *protocol.JoinRoomRequest) {
	envelope := protocol.NewEnvelope(protocol.KindJoinRoomResponse, protocol.ServerID, h.clock.Now())

	opponentName, err := h.registry.JoinRoom(h.PlayerID(), request.RoomID, request.Password)
	if err != nil {
		h.Send(&protocol.JoinRoomResponse{
			Envelope:     envelope,
			Success:      false,
			ErrorMessage: "failed to join room: " + err.Error(),
		})
		return
	}

	h.Send(&protocol.JoinRoomResponse{
		Envelope:     envelope,
		Success:      true,
		RoomID:       request.RoomID,
		OpponentName: opponentName,
	})
}

func (h *Handler) handleRoomListRequest(request *protocol.RoomListRequest) {
	rooms := h.registry.RoomList(request.GameType)
	h.Send(&protocol.RoomListResponse{
		Envelope: protocol.NewEnvelope(protocol.KindRoomListResponse, protocol.ServerID, h.clock.Now()),
		Rooms:    rooms,
	})
	h.logger.Debug("room list sent",
		zap.String("player", h.PlayerName()),
		zap.Int("rooms", len(rooms)),
	)
}

func (h *Handler) handleSyncRequest(request *protocol.GameStateSyncRequest) {
	h.logger.Info("state sync requested",
		zap.String("roomId", request.RoomID),
		zap.String("reason", request.Reason),
	)
	h.Send(h.registry.BuildSyncResponse(h.PlayerID(), request.RoomID))
}

// Send serializes one message and writes it as a single line. The write
// lock keeps concurrent senders from interleaving partial lines. Sends
// on a disconnected handler are dropped with a warning, never an error
// to the caller.
func (h *Handler) Send(message protocol.Message) {
	if !h.connected.Load() {
		h.logger.Warn("dropping message for disconnected player",
			zap.String("player", h.PlayerName()),
			zap.String("type", string(message.Base().Kind)),
		)
		return
	}

	payload, err := protocol.Encode(message)
	if err != nil {
		h.logger.Error("failed to encode message", zap.Error(err))
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if _, err = h.writer.Write(append(payload, '\n')); err == nil {
		err = h.writer.Flush()
	}
	if err != nil {
		h.logger.Error("failed to write message",
			zap.String("player", h.PlayerName()),
			zap.Error(err),
		)
		h.Disconnect("write failed")
	}
}

func (h *Handler) sendError(code, message string) {
	h.Send(&protocol.Error{
		Envelope:     protocol.NewEnvelope(protocol.KindError, protocol.ServerID, h.clock.Now()),
		ErrorCode:    code,
		ErrorMessage: message,
	})
}

// Disconnect flips the handler to not-connected exactly once. It does
// not close the socket; the read loop's terminal cleanup does that. A
// read blocked in ReadString keeps blocking until EOF or a socket
// error surfaces.
func (h *Handler) Disconnect(reason string) {
	if h.connected.CompareAndSwap(true, false) {
		h.logger.Info("disconnecting player",
			zap.String("player", h.PlayerName()),
			zap.String("reason", reason),
		)
	}
}

func (h *Handler) cleanup() {
	h.connected.Store(false)

	if playerID := h.PlayerID(); playerID != "" {
		h.registry.RemoveClient(playerID)
	}

	// The socket may already be broken; close errors are not actionable.
	_ = h.conn.Close()
}
