package view

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"chesslink/internal/config"
	"chesslink/internal/view/states"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(config.UserColor)
	statusStyle = lipgloss.NewStyle().Foreground(config.ForegroundShadeColor)
)

func (m model) View() string {
	if m.fatalError != nil {
		return fmt.Sprintf("FATAL: %s\n", m.fatalError)
	}
	if m.quitReason != "" {
		return fmt.Sprintf("Disconnected: %s\n", m.quitReason)
	}

	sections := []string{
		titleStyle.Render("ChessLink"),
		m.renderStatus(),
	}

	switch m.state {
	case states.Connecting:
		sections = append(sections, m.spinner.View()+" Connecting to server...")
	case states.InputPlayerName:
		sections = append(sections, "What's your name?", m.input.View())
	case states.Lobby:
		sections = append(sections, m.roomsView.View(), m.renderRoomStatus(), m.input.View())
	case states.InGame:
		sections = append(sections, m.boardView.View(), m.input.View())
	}

	sections = append(sections, m.errorView.View())
	return lipgloss.JoinVertical(lipgloss.Top, sections...) + "\n"
}

func (m model) renderStatus() string {
	status := fmt.Sprintf("player: %s", m.playerName)
	if m.roomID != "" {
		status += fmt.Sprintf(" | room: %s", m.roomID)
	}
	return statusStyle.Render(status)
}

func (m model) renderRoomStatus() string {
	if m.roomID == "" {
		return ""
	}
	if m.opponent == "" {
		return m.spinner.View() + " Waiting for an opponent..."
	}
	return fmt.Sprintf("Joined %s, playing against %s", m.roomID, m.opponent)
}
