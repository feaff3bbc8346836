package states

// AppState is the high level screen the UI is on.
type AppState int

const (
	Connecting AppState = iota
	InputPlayerName
	Lobby
	InGame
)

func (s AppState) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case InputPlayerName:
		return "InputPlayerName"
	case Lobby:
		return "Lobby"
	case InGame:
		return "InGame"
	}
	return "Unknown"
}
