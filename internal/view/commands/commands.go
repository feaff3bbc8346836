package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"chesslink/internal/config"
)

// Client is the slice of the broker client the UI drives. *client.Client
// satisfies it.
type Client interface {
	Connect(address, playerName string)
	CreateRoom(roomName, password, gameType string)
	JoinRoom(roomID, password string)
	LeaveRoom(roomID string)
	RequestRoomList(gameType string)
	SendMove(fromRow, fromCol, toRow, toCol int)
	SendChat(content, targetType, targetID string)
	RequestGameStateSync(roomID, reason string)
	Shutdown()
}

// Every client call here is fire-and-forget: the response comes back
// asynchronously through the listener forwarder, never as a tea.Msg
// returned from the command itself.

func Connect(c Client, playerName string) tea.Cmd {
	return func() tea.Msg {
		c.Connect(config.ServerAddress(), playerName)
		return nil
	}
}

func CreateRoom(c Client, roomName, password string) tea.Cmd {
	return func() tea.Msg {
		c.CreateRoom(roomName, password, config.DefaultGameType)
		return nil
	}
}

func JoinRoom(c Client, roomID, password string) tea.Cmd {
	return func() tea.Msg {
		c.JoinRoom(roomID, password)
		return nil
	}
}

func LeaveRoom(c Client, roomID string) tea.Cmd {
	return func() tea.Msg {
		c.LeaveRoom(roomID)
		return nil
	}
}

func RefreshRooms(c Client) tea.Cmd {
	return func() tea.Msg {
		c.RequestRoomList(config.DefaultGameType)
		return nil
	}
}

func SendMove(c Client, fromRow, fromCol, toRow, toCol int) tea.Cmd {
	return func() tea.Msg {
		c.SendMove(fromRow, fromCol, toRow, toCol)
		return nil
	}
}

func SendChat(c Client, content, targetType, targetID string) tea.Cmd {
	return func() tea.Msg {
		c.SendChat(content, targetType, targetID)
		return nil
	}
}

func SyncGameState(c Client, roomID string) tea.Cmd {
	return func() tea.Msg {
		c.RequestGameStateSync(roomID, "client_requested")
		return nil
	}
}

func Quit(c Client) tea.Cmd {
	return func() tea.Msg {
		c.Shutdown()
		return tea.Quit()
	}
}
