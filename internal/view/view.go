package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"chesslink/internal/storage"
	"chesslink/internal/view/commands"
)

// Run blocks until the UI exits and returns the process exit code. The
// forwarder must be the one registered as the client's listener.
func Run(client commands.Client, playerStorage *storage.Storage, forwarder *Forwarder, logger *zap.Logger) int {
	m := initialModel(client, playerStorage, logger)
	program := tea.NewProgram(m)
	forwarder.Attach(program)

	if _, err := program.Run(); err != nil {
		logger.Error("error running program", zap.Error(err))
		return 1
	}
	return 0
}
