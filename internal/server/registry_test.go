package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockserver "chesslink/internal/server/mock"
	"chesslink/internal/testcommon"
	"chesslink/internal/testcommon/matchers"
	"chesslink/pkg/protocol"
)

func TestRegistry(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

type RegistrySuite struct {
	testcommon.Suite

	ctrl     *gomock.Controller
	clock    clockwork.FakeClock
	registry *Registry
}

func (s *RegistrySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clock = clockwork.NewFakeClock()
	s.registry = NewRegistry(
		WithRegistryLogger(s.Logger),
		WithRegistryClock(s.clock),
	)
}

func (s *RegistrySuite) newSession(name string) (*mockserver.MockSession, string) {
	playerID := gofakeit.UUID()
	session := mockserver.NewMockSession(s.ctrl)
	session.EXPECT().PlayerID().Return(playerID).AnyTimes()
	session.EXPECT().PlayerName().Return(name).AnyTimes()
	s.registry.RegisterClient(session)
	return session, playerID
}

func (s *RegistrySuite) TestCreateRoomRequiresRegisteredHost() {
	roomID, err := s.registry.CreateRoom(gofakeit.UUID(), "ghost room", "", "chinese-chess")
	s.Require().ErrorIs(err, ErrPlayerNotRegistered)
	s.Require().Empty(roomID)
}

func (s *RegistrySuite) TestCreateRoomSeatsHost() {
	_, hostID := s.newSession("alice")

	roomID, err := s.registry.CreateRoom(hostID, "alice's room", "", "chinese-chess")
	s.Require().NoError(err)
	s.Require().Equal("room_1000", roomID)

	rooms := s.registry.RoomList("")
	s.Require().Len(rooms, 1)
	s.Require().Equal(1, rooms[0].CurrentPlayers)
	s.Require().Equal(protocol.MaxRoomPlayers, rooms[0].MaxPlayers)
	s.Require().Equal(string(protocol.GameStateWaiting), rooms[0].GameStatus)
	s.Require().Equal("alice", rooms[0].HostName)
}

func (s *RegistrySuite) TestRoomIDsNeverReused() {
	_, hostID := s.newSession("alice")

	first, err := s.registry.CreateRoom(hostID, "first", "", "chinese-chess")
	s.Require().NoError(err)

	s.registry.LeaveRoom(hostID, first)
	s.Require().Empty(s.registry.RoomList(""))

	second, err := s.registry.CreateRoom(hostID, "second", "", "chinese-chess")
	s.Require().NoError(err)
	s.Require().NotEqual(first, second)
	s.Require().Equal("room_1001", second)
}

func (s *RegistrySuite) TestJoinFillsRoomAndStartsGame() {
	host, hostID := s.newSession("alice")
	guest, guestID := s.newSession("bob")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	hostStart := matchers.NewMessageMatcher(s.T(), protocol.KindGameStart)
	guestStart := matchers.NewMessageMatcher(s.T(), protocol.KindGameStart)
	host.EXPECT().Send(hostStart).Times(1)
	guest.EXPECT().Send(guestStart).Times(1)

	opponentName, err := s.registry.JoinRoom(guestID, roomID, "")
	s.Require().NoError(err)
	s.Require().Equal("alice", opponentName)

	toHost := hostStart.Message().(*protocol.GameStart)
	toGuest := guestStart.Message().(*protocol.GameStart)

	// The host always plays red.
	s.Require().Equal(protocol.ColorRed, toHost.YourColor)
	s.Require().Equal(protocol.ColorBlack, toGuest.YourColor)
	s.Require().Equal(toHost.RedPlayer, toGuest.RedPlayer)
	s.Require().Equal("alice", toHost.RedPlayer)
	s.Require().Equal("bob", toHost.BlackPlayer)

	rooms := s.registry.RoomList("")
	s.Require().Len(rooms, 1)
	s.Require().Equal(string(protocol.GameStatePlaying), rooms[0].GameStatus)
}

func (s *RegistrySuite) TestJoinWrongPassword() {
	_, hostID := s.newSession("alice")
	_, guestID := s.newSession("bob")

	roomID, err := s.registry.CreateRoom(hostID, "secret", "hunter2", "chinese-chess")
	s.Require().NoError(err)

	_, err = s.registry.JoinRoom(guestID, roomID, "wrong")
	s.Require().ErrorIs(err, ErrWrongPassword)

	rooms := s.registry.RoomList("")
	s.Require().Equal(1, rooms[0].CurrentPlayers)
	s.Require().True(rooms[0].HasPassword)
}

func (s *RegistrySuite) TestJoinUnknownRoomOrPlayer() {
	_, hostID := s.newSession("alice")
	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	_, err = s.registry.JoinRoom(gofakeit.UUID(), roomID, "")
	s.Require().ErrorIs(err, ErrPlayerNotRegistered)

	_, guestID := s.newSession("bob")
	_, err = s.registry.JoinRoom(guestID, "room_404", "")
	s.Require().ErrorIs(err, ErrRoomNotFound)
}

func (s *RegistrySuite) TestJoinFullRoom() {
	host, hostID := s.newSession("alice")
	guest, guestID := s.newSession("bob")
	_, thirdID := s.newSession("carol")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	host.EXPECT().Send(gomock.Any()).AnyTimes()
	guest.EXPECT().Send(gomock.Any()).AnyTimes()

	_, err = s.registry.JoinRoom(guestID, roomID, "")
	s.Require().NoError(err)

	_, err = s.registry.JoinRoom(thirdID, roomID, "")
	s.Require().ErrorIs(err, ErrRoomFull)

	rooms := s.registry.RoomList("")
	s.Require().Equal(protocol.MaxRoomPlayers, rooms[0].CurrentPlayers)
}

func (s *RegistrySuite) TestJoinSameRoomTwice() {
	_, hostID := s.newSession("alice")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	_, err = s.registry.JoinRoom(hostID, roomID, "")
	s.Require().ErrorIs(err, ErrAlreadyInRoom)
}

func (s *RegistrySuite) TestConcurrentJoinsSingleSeat() {
	host, hostID := s.newSession("alice")
	guest1, guest1ID := s.newSession("bob")
	guest2, guest2ID := s.newSession("carol")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	host.EXPECT().Send(gomock.Any()).AnyTimes()
	guest1.EXPECT().Send(gomock.Any()).AnyTimes()
	guest2.EXPECT().Send(gomock.Any()).AnyTimes()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []string{guest1ID, guest2ID} {
		wg.Add(1)
		go func(playerID string) {
			defer wg.Done()
			_, joinErr := s.registry.JoinRoom(playerID, roomID, "")
			errs <- joinErr
		}(id)
	}
	wg.Wait()
	close(errs)

	failures := 0
	for joinErr := range errs {
		if joinErr != nil {
			s.Require().ErrorIs(joinErr, ErrRoomFull)
			failures++
		}
	}
	s.Require().Equal(1, failures, "exactly one of two concurrent joins must fail")

	rooms := s.registry.RoomList("")
	s.Require().Equal(protocol.MaxRoomPlayers, rooms[0].CurrentPlayers)
	s.Require().Equal(string(protocol.GameStatePlaying), rooms[0].GameStatus)
}

func (s *RegistrySuite) TestLeaveRoomIdempotent() {
	host, hostID := s.newSession("alice")
	guest, guestID := s.newSession("bob")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	host.EXPECT().Send(gomock.Any()).AnyTimes()
	guest.EXPECT().Send(gomock.Any()).AnyTimes()

	_, err = s.registry.JoinRoom(guestID, roomID, "")
	s.Require().NoError(err)

	s.registry.LeaveRoom(guestID, roomID)
	s.registry.LeaveRoom(guestID, roomID) // no-op
	s.Require().Equal(1, s.registry.RoomList("")[0].CurrentPlayers)

	s.registry.LeaveRoom(hostID, roomID)
	s.Require().Empty(s.registry.RoomList(""))

	s.registry.LeaveRoom(hostID, roomID) // room already gone
}

func (s *RegistrySuite) TestLeaveRoomNotifiesRemaining() {
	host, hostID := s.newSession("alice")
	guest, guestID := s.newSession("bob")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	guest.EXPECT().Send(gomock.Any()).AnyTimes()
	notice := matchers.NewMessageMatcher(s.T(), protocol.KindDisconnect)
	gomock.InOrder(
		host.EXPECT().Send(gomock.Any()), // game start
		host.EXPECT().Send(notice),
	)

	_, err = s.registry.JoinRoom(guestID, roomID, "")
	s.Require().NoError(err)

	s.registry.LeaveRoom(guestID, roomID)
	s.Require().Equal(guestID, notice.Message().Base().SenderID)
}

func (s *RegistrySuite) TestRemoveClientUnseatsPlayer() {
	host, hostID := s.newSession("alice")
	guest, guestID := s.newSession("bob")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	host.EXPECT().Send(gomock.Any()).AnyTimes()
	guest.EXPECT().Send(gomock.Any()).AnyTimes()

	_, err = s.registry.JoinRoom(guestID, roomID, "")
	s.Require().NoError(err)

	// Abrupt teardown path: no LEAVE_ROOM was ever sent.
	s.registry.RemoveClient(guestID)
	s.Require().Nil(s.registry.Client(guestID))
	s.Require().Equal(1, s.registry.RoomList("")[0].CurrentPlayers)

	s.registry.RemoveClient(hostID)
	s.Require().Empty(s.registry.RoomList(""))
}

func (s *RegistrySuite) TestRoomListFilter() {
	_, hostID := s.newSession("alice")
	_, otherID := s.newSession("bob")

	_, err := s.registry.CreateRoom(hostID, "xiangqi", "", "chinese-chess")
	s.Require().NoError(err)
	_, err = s.registry.CreateRoom(otherID, "go", "", "gomoku")
	s.Require().NoError(err)

	s.Require().Len(s.registry.RoomList(""), 2)

	filtered := s.registry.RoomList("gomoku")
	s.Require().Len(filtered, 1)
	s.Require().Equal("go", filtered[0].RoomName)
}

func (s *RegistrySuite) TestForwardMove() {
	host, hostID := s.newSession("alice")
	guest, guestID := s.newSession("bob")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	move := &protocol.Move{
		Envelope: protocol.NewEnvelope(protocol.KindMove, hostID, s.clock.Now()),
		FromRow:  9, FromCol: 4, ToRow: 8, ToCol: 4,
	}

	// Room still WAITING: the move is dropped.
	s.registry.ForwardMove(hostID, move)

	host.EXPECT().Send(gomock.Any()).AnyTimes()
	guest.EXPECT().Send(matchers.NewMessageMatcher(s.T(), protocol.KindGameStart)).Times(1)
	_, err = s.registry.JoinRoom(guestID, roomID, "")
	s.Require().NoError(err)

	forwarded := matchers.NewMessageMatcher(s.T(), protocol.KindMove)
	guest.EXPECT().Send(forwarded).Times(1)
	s.registry.ForwardMove(hostID, move)
	s.Require().Equal(move, forwarded.Message(), "the move payload is relayed verbatim")

	// A sender without a room is dropped silently.
	_, strayID := s.newSession("carol")
	s.registry.ForwardMove(strayID, move)
}

func (s *RegistrySuite) TestBuildSyncResponseFailures() {
	_, hostID := s.newSession("alice")

	response := s.registry.BuildSyncResponse(hostID, "room_404")
	s.Require().False(response.Success)
	s.Require().Equal("room does not exist", response.ErrorMessage)

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	_, outsiderID := s.newSession("bob")
	response = s.registry.BuildSyncResponse(outsiderID, roomID)
	s.Require().False(response.Success)
	s.Require().Equal("player is not in this room", response.ErrorMessage)

	// Seated in a room that never started: no color assigned yet.
	response = s.registry.BuildSyncResponse(hostID, roomID)
	s.Require().False(response.Success)
	s.Require().Equal("only participants can sync", response.ErrorMessage)
}

func (s *RegistrySuite) TestBuildSyncResponseForParticipant() {
	host, hostID := s.newSession("alice")
	guest, guestID := s.newSession("bob")

	roomID, err := s.registry.CreateRoom(hostID, "match", "", "chinese-chess")
	s.Require().NoError(err)

	host.EXPECT().Send(gomock.Any()).AnyTimes()
	guest.EXPECT().Send(gomock.Any()).AnyTimes()
	_, err = s.registry.JoinRoom(guestID, roomID, "")
	s.Require().NoError(err)

	response := s.registry.BuildSyncResponse(guestID, roomID)
	s.Require().True(response.Success)
	s.Require().Equal(protocol.ColorBlack, response.YourColor)
	s.Require().Equal("alice", response.RedPlayer)
	s.Require().Equal("bob", response.BlackPlayer)
	s.Require().Equal(protocol.GameStatePlaying, response.GameState)
	s.Require().True(response.IsGameStarted)

	// The server does not track turns or outcomes.
	s.Require().Equal(protocol.ColorRed, response.CurrentPlayer)
	s.Require().False(response.IsGameOver)
	s.Require().Empty(response.Winner)
}

func (s *RegistrySuite) TestDisconnectAll() {
	for i := 0; i < 3; i++ {
		session, _ := s.newSession(fmt.Sprintf("player-%d", i))
		session.EXPECT().Disconnect(StopReason).Times(1)
	}
	s.registry.DisconnectAll(StopReason)
}
