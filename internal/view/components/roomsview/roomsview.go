package roomsview

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chesslink/internal/view/messages"
	"chesslink/pkg/protocol"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

// Model renders the lobby room list.
type Model struct {
	rooms []protocol.RoomInfo
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case messages.RoomListMessage:
		m.rooms = msg.Rooms
	}
	return m
}

func (m Model) View() string {
	if len(m.rooms) == 0 {
		return dimStyle.Render("No open rooms. Create one with: new <room name>")
	}

	lines := []string{headerStyle.Render("Open rooms:")}
	for _, room := range m.rooms {
		locked := ""
		if room.HasPassword {
			locked = " [locked]"
		}
		lines = append(lines, fmt.Sprintf("  %s  %s (%d/%d, %s)%s",
			idStyle.Render(room.RoomID),
			room.RoomName,
			room.CurrentPlayers,
			room.MaxPlayers,
			room.GameStatus,
			locked,
		))
	}
	return lipgloss.JoinVertical(lipgloss.Top, lines...)
}
