package server

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"chesslink/internal/testcommon"
	"chesslink/pkg/protocol"
)

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

type ServerSuite struct {
	testcommon.Suite

	server *Server
}

func (s *ServerSuite) SetupTest() {
	s.server = New(
		WithLogger(s.Logger),
		WithGracePeriod(200*time.Millisecond),
	)
	s.Require().NoError(s.server.Listen("127.0.0.1:0"))
	go func() {
		_ = s.server.Serve()
	}()
}

func (s *ServerSuite) TearDownTest() {
	s.server.Stop()
}

// testClient drives one raw TCP connection through the wire protocol.
type testClient struct {
	t        *testing.T
	playerID string
	conn     net.Conn
	reader   *bufio.Reader
}

func (s *ServerSuite) dial() *testClient {
	conn, err := net.Dial("tcp", s.server.Addr().String())
	s.Require().NoError(err)
	return &testClient{
		t:        s.T(),
		playerID: "client_" + gofakeit.LetterN(8),
		conn:     conn,
		reader:   bufio.NewReader(conn),
	}
}

func (c *testClient) send(message protocol.Message) {
	payload, err := protocol.Encode(message)
	require.NoError(c.t, err)
	_, err = c.conn.Write(append(payload, '\n'))
	require.NoError(c.t, err)
}

func (c *testClient) read() protocol.Message {
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	line, err := c.reader.ReadString('\n')
	require.NoError(c.t, err)
	message, err := protocol.Decode([]byte(strings.TrimSpace(line)))
	require.NoError(c.t, err)
	return message
}

func (c *testClient) envelope(kind protocol.Kind) protocol.Envelope {
	return protocol.NewEnvelope(kind, c.playerID, time.Now())
}

func (c *testClient) connect(name string) {
	c.send(&protocol.ConnectRequest{
		Envelope:   c.envelope(protocol.KindConnectRequest),
		PlayerName: name,
	})
	response, ok := c.read().(*protocol.ConnectResponse)
	require.True(c.t, ok)
	require.True(c.t, response.Success)
	require.Equal(c.t, c.playerID, response.PlayerID)
}

func (c *testClient) close() {
	_ = c.conn.Close()
}

func (s *ServerSuite) TestFullMatch() {
	alice := s.dial()
	defer alice.close()
	alice.connect("alice")

	alice.send(&protocol.CreateRoomRequest{
		Envelope: alice.envelope(protocol.KindCreateRoomRequest),
		RoomName: "alice's table",
		GameType: "chinese-chess",
	})
	created, ok := alice.read().(*protocol.CreateRoomResponse)
	s.Require().True(ok)
	s.Require().True(created.Success)
	roomID := created.RoomID

	bob := s.dial()
	defer bob.close()
	bob.connect("bob")

	bob.send(&protocol.JoinRoomRequest{
		Envelope: bob.envelope(protocol.KindJoinRoomRequest),
		RoomID:   roomID,
	})

	// The joiner sees the game start broadcast before its join response.
	bobStart, ok := bob.read().(*protocol.GameStart)
	s.Require().True(ok)
	s.Require().Equal(protocol.ColorBlack, bobStart.YourColor)
	s.Require().Equal("alice", bobStart.RedPlayer)
	s.Require().Equal("bob", bobStart.BlackPlayer)

	joined, ok := bob.read().(*protocol.JoinRoomResponse)
	s.Require().True(ok)
	s.Require().True(joined.Success)
	s.Require().Equal("alice", joined.OpponentName)

	aliceStart, ok := alice.read().(*protocol.GameStart)
	s.Require().True(ok)
	s.Require().Equal(protocol.ColorRed, aliceStart.YourColor)

	// Moves are relayed untouched in both directions.
	alice.send(&protocol.Move{
		Envelope: alice.envelope(protocol.KindMove),
		FromRow:  9, FromCol: 4, ToRow: 8, ToCol: 4,
		MoveNotation: "K10-9",
	})
	relayed, ok := bob.read().(*protocol.Move)
	s.Require().True(ok)
	s.Require().Equal(alice.playerID, relayed.SenderID)
	s.Require().Equal(9, relayed.FromRow)
	s.Require().Equal(4, relayed.ToCol)
	s.Require().Equal("K10-9", relayed.MoveNotation)

	bob.send(&protocol.Move{
		Envelope: bob.envelope(protocol.KindMove),
		FromRow:  0, FromCol: 4, ToRow: 1, ToCol: 4,
	})
	relayed, ok = alice.read().(*protocol.Move)
	s.Require().True(ok)
	s.Require().Equal(bob.playerID, relayed.SenderID)

	// A third seat does not exist.
	carol := s.dial()
	defer carol.close()
	carol.connect("carol")
	carol.send(&protocol.JoinRoomRequest{
		Envelope: carol.envelope(protocol.KindJoinRoomRequest),
		RoomID:   roomID,
	})
	rejected, ok := carol.read().(*protocol.JoinRoomResponse)
	s.Require().True(ok)
	s.Require().False(rejected.Success)
	s.Require().Contains(rejected.ErrorMessage, "room is full")

	// An abrupt drop unseats the player and tells the opponent.
	bob.close()
	notice, ok := alice.read().(*protocol.Disconnect)
	s.Require().True(ok)
	s.Require().Equal(bob.playerID, notice.SenderID)

	s.Require().Eventually(func() bool {
		rooms := s.server.Registry().RoomList("")
		return len(rooms) == 1 && rooms[0].CurrentPlayers == 1
	}, time.Second, 10*time.Millisecond)

	// Once the host drops too, the room is deleted.
	alice.close()
	s.Require().Eventually(func() bool {
		return len(s.server.Registry().RoomList("")) == 0
	}, time.Second, 10*time.Millisecond)
}

func (s *ServerSuite) TestSyncAfterReconnect() {
	alice := s.dial()
	defer alice.close()
	alice.connect("alice")

	alice.send(&protocol.CreateRoomRequest{
		Envelope: alice.envelope(protocol.KindCreateRoomRequest),
		RoomName: "table",
		GameType: "chinese-chess",
	})
	created, ok := alice.read().(*protocol.CreateRoomResponse)
	s.Require().True(ok)
	roomID := created.RoomID

	bob := s.dial()
	defer bob.close()
	bob.connect("bob")
	bob.send(&protocol.JoinRoomRequest{
		Envelope: bob.envelope(protocol.KindJoinRoomRequest),
		RoomID:   roomID,
	})
	_, ok = bob.read().(*protocol.GameStart)
	s.Require().True(ok)
	_, ok = bob.read().(*protocol.JoinRoomResponse)
	s.Require().True(ok)
	_, ok = alice.read().(*protocol.GameStart)
	s.Require().True(ok)

	// A client that missed the broadcast can rebuild the table state.
	bob.send(&protocol.GameStateSyncRequest{
		Envelope: bob.envelope(protocol.KindGameStateSyncRequest),
		RoomID:   roomID,
		Reason:   "client_reconnected",
	})
	sync, ok := bob.read().(*protocol.GameStateSyncResponse)
	s.Require().True(ok)
	s.Require().True(sync.Success)
	s.Require().Equal(protocol.ColorBlack, sync.YourColor)
	s.Require().True(sync.IsGameStarted)
	s.Require().False(sync.IsGameOver)
}

func (s *ServerSuite) TestStopDisconnectsClients() {
	alice := s.dial()
	defer alice.close()
	alice.connect("alice")

	s.server.Stop()

	s.Require().NoError(alice.conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, err := alice.reader.ReadString('\n')
	s.Require().Error(err)
}
