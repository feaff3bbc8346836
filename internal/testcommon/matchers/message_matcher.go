package matchers

import (
	"fmt"
	"testing"

	"chesslink/pkg/protocol"
)

// MessageMatcher matches any gomock argument that is a protocol message
// of the given kind, keeping the last matched message for inspection.
type MessageMatcher struct {
	*Matcher
	kind    protocol.Kind
	message protocol.Message
}

func NewMessageMatcher(t *testing.T, kind protocol.Kind) *MessageMatcher {
	return &MessageMatcher{
		Matcher: NewMatcher(t),
		kind:    kind,
	}
}

func (m *MessageMatcher) Matches(x interface{}) bool {
	message, ok := x.(protocol.Message)
	if !ok {
		return false
	}
	if message.Base().Kind != m.kind {
		return false
	}
	m.message = message
	m.Trigger(message)
	return true
}

func (m *MessageMatcher) Message() protocol.Message {
	return m.message
}

func (m *MessageMatcher) String() string {
	return fmt.Sprintf("is a %s message", m.kind)
}
