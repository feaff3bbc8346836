package client

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"

	"chesslink/internal/config"
	"chesslink/pkg/protocol"
)

// Dialer abstracts the socket dial so tests can hand out in-memory
// pipes. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Client is the connection state machine talking to the broker: one
// background read loop, one heartbeat ticker, and a single dispatch
// goroutine that serializes all listener callbacks.
type Client struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	ctx      context.Context
	cancel   context.CancelFunc
	dialer   Dialer
	listener Listener

	presetPlayerID string

	mu         sync.Mutex
	state      ConnectionState
	conn       net.Conn
	exit       chan struct{}
	playerID   string
	playerName string

	writeMu sync.Mutex
	writer  *bufio.Writer

	events chan func(Listener)
	wg     sync.WaitGroup
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		state:  StateDisconnected,
		events: make(chan func(Listener), 42),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.ctx == nil {
		c.ctx = context.Background()
	}
	c.ctx, c.cancel = context.WithCancel(c.ctx)

	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.dialer == nil {
		c.dialer = &net.Dialer{}
	}
	if c.listener == nil {
		c.logger.Error("listener is required")
		return nil
	}

	go c.dispatchLoop()

	return c
}

// dispatchLoop is the single consumer of listener events. No two
// callbacks ever run concurrently.
func (c *Client) dispatchLoop() {
	for {
		select {
		case event := <-c.events:
			event(c.listener)
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) emit(event func(Listener)) {
	select {
	case c.events <- event:
	case <-c.ctx.Done():
	}
}

func (c *Client) emitError(message string) {
	c.logger.Warn(message)
	c.emit(func(l Listener) { l.OnError(message) })
}

func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) PlayerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerID
}

func (c *Client) PlayerName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerName
}

// Connect dials the server in the background. A connect attempt while
// not DISCONNECTED is rejected through the error callback with no state
// change.
func (c *Client) Connect(address, playerName string) {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		c.emitError("already connecting or connected")
		return
	}
	c.state = StateConnecting
	c.playerName = playerName
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.connect(address)
	}()
}

func (c *Client) connect(address string) {
	c.logger.Info("connecting to server", zap.String("address", address))

	dialCtx, cancel := context.WithTimeout(c.ctx, config.ConnectTimeout)
	defer cancel()

	conn, err := c.dialer.DialContext(dialCtx, "tcp", address)
	if err != nil {
		message := "failed to connect to server: " + err.Error()
		c.logger.Error(message)
		c.teardown()
		c.emit(func(l Listener) { l.OnConnectionError(message) })
		return
	}

	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetKeepAlive(true)
		_ = tcp.SetNoDelay(true)
	}

	c.mu.Lock()
	c.conn = conn
	c.exit = make(chan struct{})
	c.state = StateConnected
	exit := c.exit
	c.mu.Unlock()

	c.writeMu.Lock()
	c.writer = bufio.NewWriter(conn)
	c.writeMu.Unlock()

	c.sendConnectRequest()

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.readLoop(conn)
	}()
	go func() {
		defer c.wg.Done()
		c.heartbeatLoop(exit)
	}()

	c.logger.Info("connected to server")
}

func (c *Client) sendConnectRequest() {
	clientID := c.presetPlayerID
	if clientID == "" {
		clientID = GeneratePlayerID()
	}

	err := c.send(&protocol.ConnectRequest{
		Envelope:      protocol.NewEnvelope(protocol.KindConnectRequest, clientID, c.clock.Now()),
		PlayerName:    c.PlayerName(),
		ClientVersion: protocol.Version,
	})
	if err != nil {
		c.logger.Error("failed to send connect request", zap.Error(err))
	}
}

// GeneratePlayerID builds a fresh client-local player id. The server
// treats it as opaque.
func GeneratePlayerID() string {
	seed := make([]byte, 8)
	if _, err := rand.Read(seed); err != nil {
		return fmt.Sprintf("client_%d", time.Now().UnixMilli())
	}
	return "client_" + base58.Encode(seed)
}

func (c *Client) readLoop(conn net.Conn) {
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			c.mu.Lock()
			wasConnected := c.state == StateConnected
			c.mu.Unlock()

			c.teardown()
			if wasConnected {
				reason := "connection lost: " + err.Error()
				c.logger.Warn(reason)
				c.emit(func(l Listener) { l.OnDisconnected(reason) })
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		message, err := protocol.Decode([]byte(line))
		if err != nil {
			c.logger.Error("failed to decode server message", zap.Error(err), zap.String("raw", line))
			continue
		}
		c.handleMessage(message)
	}
}

// heartbeatLoop pings the server on a fixed interval, but only once the
// server has confirmed a player id.
func (c *Client) heartbeatLoop(exit chan struct{}) {
	ticker := c.clock.NewTicker(config.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.Chan():
			playerID := c.PlayerID()
			if playerID == "" || c.State() != StateConnected {
				continue
			}
			err := c.send(&protocol.Heartbeat{
				Envelope:   protocol.NewEnvelope(protocol.KindHeartbeat, playerID, c.clock.Now()),
				ClientTime: c.clock.Now().UnixMilli(),
			})
			if err != nil {
				c.logger.Warn("failed to send heartbeat", zap.Error(err))
			}
		case <-exit:
			return
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) handleMessage(message protocol.Message) {
	c.logger.Debug("message received", zap.String("type", string(message.Base().Kind)))

	switch m := message.(type) {
	case *protocol.ConnectResponse:
		c.handleConnectResponse(m)

	case *protocol.CreateRoomResponse:
		if m.Success {
			roomID := m.RoomID
			c.emit(func(l Listener) { l.OnRoomCreated(roomID) })
		} else {
			c.emitError("failed to create room: " + m.ErrorMessage)
		}

	case *protocol.JoinRoomResponse:
		if m.Success {
			roomID, opponent := m.RoomID, m.OpponentName
			c.emit(func(l Listener) { l.OnRoomJoined(roomID, opponent) })
		} else {
			c.emitError("failed to join room: " + m.ErrorMessage)
		}

	case *protocol.RoomListResponse:
		rooms := m.Rooms
		c.emit(func(l Listener) { l.OnRoomListReceived(rooms) })

	case *protocol.GameStart:
		red, black, color := m.RedPlayer, m.BlackPlayer, m.YourColor
		c.emit(func(l Listener) { l.OnGameStarted(red, black, color) })

	case *protocol.Move:
		fromRow, fromCol, toRow, toCol := m.FromRow, m.FromCol, m.ToRow, m.ToCol
		c.emit(func(l Listener) { l.OnMoveReceived(fromRow, fromCol, toRow, toCol) })

	case *protocol.GameEnd:
		winner, reason := m.Winner, m.Reason
		c.emit(func(l Listener) { l.OnGameEnded(winner, reason) })

	case *protocol.GameStateUpdate:
		state, current, over, winner := m.GameState, m.CurrentPlayer, m.IsGameOver, m.Winner
		c.emit(func(l Listener) { l.OnGameStateUpdate(state, current, over, winner) })

	case *protocol.GameStateSyncResponse:
		c.handleSyncResponse(m)

	case *protocol.Chat:
		sender, content := m.SenderID, m.Content
		c.emit(func(l Listener) { l.OnChatReceived(sender, content) })

	case *protocol.Error:
		c.emitError(fmt.Sprintf("server error [%s]: %s", m.ErrorCode, m.ErrorMessage))

	case *protocol.Heartbeat:
		// Pong carries no further semantics.

	default:
		c.emit(func(l Listener) { l.OnMessage(message) })
	}
}

func (c *Client) handleConnectResponse(response *protocol.ConnectResponse) {
	if !response.Success {
		c.emitError("connection rejected: " + response.ErrorMessage)
		c.Disconnect()
		return
	}

	c.mu.Lock()
	c.playerID = response.PlayerID
	c.mu.Unlock()

	c.logger.Info("player id confirmed", zap.String("playerId", response.PlayerID))
	c.emit(func(l Listener) { l.OnConnected() })
}

// handleSyncResponse compensates for missed broadcasts: a started game
// synthesizes the game-started callback, a finished one synthesizes
// game-ended with the recovery reason.
func (c *Client) handleSyncResponse(response *protocol.GameStateSyncResponse) {
	if !response.Success {
		c.emitError("game state sync failed: " + response.ErrorMessage)
		return
	}

	c.logger.Info("game state synced",
		zap.String("roomId", response.RoomID),
		zap.String("yourColor", string(response.YourColor)),
		zap.Bool("isGameStarted", response.IsGameStarted),
	)

	if response.IsGameStarted {
		red, black, color := response.RedPlayer, response.BlackPlayer, response.YourColor
		c.emit(func(l Listener) { l.OnGameStarted(red, black, color) })
	}
	if response.IsGameOver {
		winner := response.Winner
		c.emit(func(l Listener) { l.OnGameEnded(winner, "game_sync_recovered") })
	}
}

// ==================== outbound API ====================

// session returns the confirmed player id, or emits an error callback
// and reports false when the client has no usable session yet.
func (c *Client) session() (string, bool) {
	c.mu.Lock()
	state, playerID := c.state, c.playerID
	c.mu.Unlock()

	if state != StateConnected || playerID == "" {
		c.emitError("not connected to server")
		return "", false
	}
	return playerID, true
}

func (c *Client) CreateRoom(roomName, password, gameType string) {
	playerID, ok := c.session()
	if !ok {
		return
	}
	c.sendOrNotify(&protocol.CreateRoomRequest{
		Envelope:   protocol.NewEnvelope(protocol.KindCreateRoomRequest, playerID, c.clock.Now()),
		RoomName:   roomName,
		Password:   password,
		MaxPlayers: protocol.MaxRoomPlayers,
		GameType:   gameType,
	})
}

func (c *Client) JoinRoom(roomID, password string) {
	playerID, ok := c.session()
	if !ok {
		return
	}
	c.sendOrNotify(&protocol.JoinRoomRequest{
		Envelope: protocol.NewEnvelope(protocol.KindJoinRoomRequest, playerID, c.clock.Now()),
		RoomID:   roomID,
		Password: password,
	})
}

func (c *Client) LeaveRoom(roomID string) {
	playerID, ok := c.session()
	if !ok {
		return
	}
	c.sendOrNotify(&protocol.LeaveRoom{
		Envelope: protocol.NewEnvelope(protocol.KindLeaveRoom, playerID, c.clock.Now()),
		RoomID:   roomID,
	})
}

func (c *Client) RequestRoomList(gameType string) {
	playerID, ok := c.session()
	if !ok {
		return
	}
	c.sendOrNotify(&protocol.RoomListRequest{
		Envelope: protocol.NewEnvelope(protocol.KindRoomListRequest, playerID, c.clock.Now()),
		GameType: gameType,
	})
}

func (c *Client) SendMove(fromRow, fromCol, toRow, toCol int) {
	playerID, ok := c.session()
	if !ok {
		return
	}
	c.sendOrNotify(&protocol.Move{
		Envelope: protocol.NewEnvelope(protocol.KindMove, playerID, c.clock.Now()),
		FromRow:  fromRow,
		FromCol:  fromCol,
		ToRow:    toRow,
		ToCol:    toCol,
	})
}

func (c *Client) SendChat(content, targetType, targetID string) {
	playerID, ok := c.session()
	if !ok {
		return
	}
	c.sendOrNotify(&protocol.Chat{
		Envelope:   protocol.NewEnvelope(protocol.KindChat, playerID, c.clock.Now()),
		Content:    content,
		TargetType: targetType,
		TargetID:   targetID,
	})
}

// RequestGameStateSync asks the server to reconstruct missed game-start
// or game-end notifications. This is the recovery primitive for
// reconnecting clients.
func (c *Client) RequestGameStateSync(roomID, reason string) {
	playerID, ok := c.session()
	if !ok {
		return
	}
	c.sendOrNotify(&protocol.GameStateSyncRequest{
		Envelope: protocol.NewEnvelope(protocol.KindGameStateSyncRequest, playerID, c.clock.Now()),
		RoomID:   roomID,
		Reason:   reason,
	})
}

// Disconnect sends a best-effort DISCONNECT notice and tears the
// connection down locally.
func (c *Client) Disconnect() {
	c.mu.Lock()
	state, playerID := c.state, c.playerID
	c.mu.Unlock()

	if state == StateDisconnected {
		return
	}

	if state == StateConnected && playerID != "" {
		// Best effort; the socket may already be gone.
		_ = c.send(&protocol.Disconnect{
			Envelope: protocol.NewEnvelope(protocol.KindDisconnect, playerID, c.clock.Now()),
			Reason:   "client_disconnect",
		})
	}

	c.teardown()
	c.emit(func(l Listener) { l.OnDisconnected("client disconnect") })
}

// Shutdown disconnects and stops the background goroutines, waiting a
// bounded period before giving up on them.
func (c *Client) Shutdown() {
	c.Disconnect()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(config.ShutdownGracePeriod):
		c.logger.Warn("background tasks did not finish in time")
	}

	c.cancel()
}

func (c *Client) send(message protocol.Message) error {
	payload, err := protocol.Encode(message)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.writer == nil {
		return fmt.Errorf("not connected")
	}
	if _, err = c.writer.Write(append(payload, '\n')); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *Client) sendOrNotify(message protocol.Message) {
	if err := c.send(message); err != nil {
		c.emitError("failed to send " + string(message.Base().Kind) + ": " + err.Error())
	}
}

// teardown is the single path back to DISCONNECTED. Idempotent; close
// errors on an already-broken socket are swallowed.
func (c *Client) teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	if c.exit != nil {
		close(c.exit)
		c.exit = nil
	}

	c.writeMu.Lock()
	c.writer = nil
	c.writeMu.Unlock()

	c.state = StateDisconnected
	c.playerID = ""
}
