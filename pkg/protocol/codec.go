package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// DecodeError reports a line that could not be turned into a message.
// It always carries the offending kind (empty if the tag itself was
// unreadable) and the raw text.
type DecodeError struct {
	Kind Kind
	Raw  string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("failed to decode message: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode %s message: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encode serializes a message to a single line of JSON. encoding/json
// escapes control characters, so the output never contains a raw line
// break and is safe for the newline-delimited transport.
func Encode(m Message) ([]byte, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}
	return payload, nil
}

// Decode reads the kind tag of a line and unmarshals the matching
// payload shape. Unknown tags and malformed payloads yield a
// *DecodeError, never a partial message.
func Decode(data []byte) (Message, error) {
	var tag struct {
		Kind Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, &DecodeError{Raw: string(data), Err: err}
	}

	message := newMessage(tag.Kind)
	if message == nil {
		return nil, &DecodeError{
			Kind: tag.Kind,
			Raw:  string(data),
			Err:  errors.Errorf("unknown message type %q", tag.Kind),
		}
	}

	if err := json.Unmarshal(data, message); err != nil {
		return nil, &DecodeError{Kind: tag.Kind, Raw: string(data), Err: err}
	}

	return message, nil
}

func newMessage(kind Kind) Message {
	switch kind {
	case KindConnectRequest:
		return &ConnectRequest{}
	case KindConnectResponse:
		return &ConnectResponse{}
	case KindDisconnect:
		return &Disconnect{}
	case KindCreateRoomRequest:
		return &CreateRoomRequest{}
	case KindCreateRoomResponse:
		return &CreateRoomResponse{}
	case KindJoinRoomRequest:
		return &JoinRoomRequest{}
	case KindJoinRoomResponse:
		return &JoinRoomResponse{}
	case KindLeaveRoom:
		return &LeaveRoom{}
	case KindRoomListRequest:
		return &RoomListRequest{}
	case KindRoomListResponse:
		return &RoomListResponse{}
	case KindGameStart:
		return &GameStart{}
	case KindGameEnd:
		return &GameEnd{}
	case KindMove:
		return &Move{}
	case KindGameStateUpdate:
		return &GameStateUpdate{}
	case KindGameStateSyncRequest:
		return &GameStateSyncRequest{}
	case KindGameStateSyncReply:
		return &GameStateSyncResponse{}
	case KindHeartbeat:
		return &Heartbeat{}
	case KindError:
		return &Error{}
	case KindChat:
		return &Chat{}
	}
	return nil
}
