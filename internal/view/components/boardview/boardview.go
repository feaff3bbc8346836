package boardview

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chesslink/internal/view/messages"
	"chesslink/pkg/protocol"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C3423F"))
	blackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

const moveLogLimit = 8

// Model tracks the running match as seen from this client: who plays
// which color and the tail of relayed moves. The board itself lives in
// both players' heads; the broker never sees it.
type Model struct {
	redPlayer   string
	blackPlayer string
	yourColor   protocol.Color
	moves       []string
	finished    bool
	winner      string
	endReason   string
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case messages.GameStartedMessage:
		m = Model{
			redPlayer:   msg.RedPlayer,
			blackPlayer: msg.BlackPlayer,
			yourColor:   msg.YourColor,
		}
	case messages.MoveMessage:
		move := fmt.Sprintf("(%d,%d) -> (%d,%d)", msg.FromRow, msg.FromCol, msg.ToRow, msg.ToCol)
		m.moves = append(m.moves, move)
		if len(m.moves) > moveLogLimit {
			m.moves = m.moves[len(m.moves)-moveLogLimit:]
		}
	case messages.GameEndedMessage:
		m.finished = true
		m.winner = msg.Winner
		m.endReason = msg.Reason
	}
	return m
}

func (m Model) View() string {
	if m.redPlayer == "" && m.blackPlayer == "" {
		return ""
	}

	lines := []string{
		fmt.Sprintf("%s vs %s",
			redStyle.Render(m.redPlayer+" (RED)"),
			blackStyle.Render(m.blackPlayer+" (BLACK)"),
		),
		fmt.Sprintf("You play %s", string(m.yourColor)),
	}

	if len(m.moves) > 0 {
		lines = append(lines, boldStyle.Render("Opponent moves:"))
		for _, move := range m.moves {
			lines = append(lines, "  "+move)
		}
	}

	if m.finished {
		lines = append(lines, boldStyle.Render(
			fmt.Sprintf("Game over: %s wins (%s)", m.winner, m.endReason),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Top, lines...)
}
