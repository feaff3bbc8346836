package protocol

import (
	"bytes"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func testEnvelope(t *testing.T, kind Kind) Envelope {
	t.Helper()
	envelope := NewEnvelope(kind, gofakeit.UUID(), time.Now())
	require.NotEmpty(t, envelope.ID)
	require.NotEmpty(t, envelope.Timestamp)
	return envelope
}

func roundTrip(t *testing.T, sent Message) Message {
	t.Helper()

	payload, err := Encode(sent)
	require.NoError(t, err)
	require.False(t, bytes.ContainsRune(payload, '\n'), "encoded message must stay on one line")

	received, err := Decode(payload)
	require.NoError(t, err)
	require.Equal(t, sent, received)

	return received
}

func TestRoundTripAllKinds(t *testing.T) {
	name := gofakeit.Username()
	opponent := gofakeit.Username()

	messages := []Message{
		&ConnectRequest{Envelope: testEnvelope(t, KindConnectRequest), PlayerName: name, ClientVersion: Version},
		&ConnectResponse{Envelope: testEnvelope(t, KindConnectResponse), Success: true, PlayerID: gofakeit.UUID(), ServerVersion: Version},
		&Disconnect{Envelope: testEnvelope(t, KindDisconnect), Reason: "client_disconnect"},
		&CreateRoomRequest{Envelope: testEnvelope(t, KindCreateRoomRequest), RoomName: "friendly match", MaxPlayers: MaxRoomPlayers, GameType: "chinese-chess"},
		&CreateRoomResponse{Envelope: testEnvelope(t, KindCreateRoomResponse), Success: true, RoomID: "room_1000"},
		&JoinRoomRequest{Envelope: testEnvelope(t, KindJoinRoomRequest), RoomID: "room_1000", Password: gofakeit.Password(true, true, true, false, false, 8)},
		&JoinRoomResponse{Envelope: testEnvelope(t, KindJoinRoomResponse), Success: true, RoomID: "room_1000", OpponentName: opponent},
		&LeaveRoom{Envelope: testEnvelope(t, KindLeaveRoom), RoomID: "room_1000"},
		&RoomListRequest{Envelope: testEnvelope(t, KindRoomListRequest), GameType: "chinese-chess"},
		&RoomListResponse{Envelope: testEnvelope(t, KindRoomListResponse), Rooms: []RoomInfo{{
			RoomID:         "room_1001",
			RoomName:       "open table",
			HostName:       name,
			CurrentPlayers: 1,
			MaxPlayers:     MaxRoomPlayers,
			GameStatus:     string(GameStateWaiting),
			GameType:       "chinese-chess",
		}}},
		&GameStart{Envelope: testEnvelope(t, KindGameStart), RedPlayer: name, BlackPlayer: opponent, YourColor: ColorRed},
		&GameEnd{Envelope: testEnvelope(t, KindGameEnd), Winner: string(ColorBlack), Reason: "checkmate"},
		&Move{Envelope: testEnvelope(t, KindMove), FromRow: 9, FromCol: 4, ToRow: 8, ToCol: 4, MoveNotation: "K5+1"},
		&GameStateUpdate{Envelope: testEnvelope(t, KindGameStateUpdate), GameState: "check", CurrentPlayer: ColorBlack},
		&GameStateSyncRequest{Envelope: testEnvelope(t, KindGameStateSyncRequest), RoomID: "room_1000", Reason: "reconnect"},
		&GameStateSyncResponse{
			Envelope:      testEnvelope(t, KindGameStateSyncReply),
			RoomID:        "room_1000",
			Success:       true,
			RedPlayer:     name,
			BlackPlayer:   opponent,
			YourColor:     ColorBlack,
			CurrentPlayer: ColorRed,
			GameState:     GameStatePlaying,
			IsGameStarted: true,
		},
		&Heartbeat{Envelope: testEnvelope(t, KindHeartbeat), ClientTime: time.Now().UnixMilli()},
		&Error{Envelope: testEnvelope(t, KindError), ErrorCode: "INVALID_MESSAGE", ErrorMessage: "bad payload"},
		&Chat{Envelope: testEnvelope(t, KindChat), Content: "good game", TargetType: "room", TargetID: "room_1000"},
	}

	require.Len(t, messages, 19, "every message kind must be covered")

	for _, sent := range messages {
		roundTrip(t, sent)
	}
}

func TestRoundTripBoundaryPayloads(t *testing.T) {
	// Empty password and omitted optional fields survive the trip.
	roundTrip(t, &CreateRoomRequest{Envelope: testEnvelope(t, KindCreateRoomRequest), RoomName: "no password", Password: ""})
	roundTrip(t, &JoinRoomResponse{Envelope: testEnvelope(t, KindJoinRoomResponse), Success: false, ErrorMessage: "room is full"})
	roundTrip(t, &RoomListRequest{Envelope: testEnvelope(t, KindRoomListRequest)})
	roundTrip(t, &GameStateSyncResponse{Envelope: testEnvelope(t, KindGameStateSyncReply), RoomID: "room_1000", Success: false, ErrorMessage: "only participants can sync"})
}

func TestDecodeUnknownKind(t *testing.T) {
	message, err := Decode([]byte(`{"type":"TELEPORT","messageId":"msg_1","senderId":"p1"}`))
	require.Nil(t, message)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, Kind("TELEPORT"), decodeErr.Kind)
	require.Contains(t, decodeErr.Raw, "TELEPORT")
}

func TestDecodeMalformedLine(t *testing.T) {
	message, err := Decode([]byte(`{"type":`))
	require.Nil(t, message)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Empty(t, decodeErr.Kind)
}

func TestDecodeMalformedPayload(t *testing.T) {
	message, err := Decode([]byte(`{"type":"MOVE","fromRow":"not a number"}`))
	require.Nil(t, message)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, KindMove, decodeErr.Kind)
}

func TestEnvelopeIDsAreUnique(t *testing.T) {
	now := time.Now()
	first := NewEnvelope(KindHeartbeat, "p1", now)
	second := NewEnvelope(KindHeartbeat, "p1", now)
	require.NotEqual(t, first.ID, second.ID)
}
