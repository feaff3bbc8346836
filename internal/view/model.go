package view

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"chesslink/internal/config"
	"chesslink/internal/storage"
	"chesslink/internal/view/commands"
	"chesslink/internal/view/components/boardview"
	"chesslink/internal/view/components/errorview"
	"chesslink/internal/view/components/roomsview"
	"chesslink/internal/view/components/userinput"
	"chesslink/internal/view/messages"
	"chesslink/internal/view/states"
)

type model struct {
	client  commands.Client
	storage *storage.Storage
	logger  *zap.Logger

	state      states.AppState
	playerName string
	roomID     string
	opponent   string
	fatalError error
	quitReason string

	input     userinput.Model
	errorView errorview.Model
	roomsView roomsview.Model
	boardView boardview.Model
	spinner   spinner.Model
}

func initialModel(client commands.Client, playerStorage *storage.Storage, logger *zap.Logger) model {
	playerName := config.PlayerName()
	if playerName == "" && playerStorage != nil {
		playerName = playerStorage.PlayerName()
	}

	state := states.Connecting
	if playerName == "" {
		state = states.InputPlayerName
	}

	return model{
		client:     client,
		storage:    playerStorage,
		logger:     logger,
		state:      state,
		playerName: playerName,
		input:      userinput.New(),
		errorView:  errorview.New(),
		roomsView:  roomsview.New(),
		boardView:  boardview.New(),
		spinner:    createSpinner(),
	}
}

func createSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return s
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.input.Init(),
		m.spinner.Tick,
		appStateCmd(m.state),
	}
	if m.state == states.Connecting {
		cmds = append(cmds, commands.Connect(m.client, m.playerName))
	}
	return tea.Batch(cmds...)
}

func appStateCmd(state states.AppState) tea.Cmd {
	return func() tea.Msg {
		return messages.AppStateMessage{State: state}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, commands.Quit(m.client)
		case tea.KeyEnter:
			cmds = append(cmds, processInput(&m))
		}

	case messages.FatalErrorMessage:
		m.fatalError = msg.Err
		return m, tea.Quit

	case messages.ConnectedMessage:
		m.state = states.Lobby
		cmds = append(cmds,
			appStateCmd(m.state),
			commands.RefreshRooms(m.client),
		)

	case messages.DisconnectedMessage:
		m.quitReason = msg.Reason
		return m, tea.Quit

	case messages.RoomCreatedMessage:
		m.roomID = msg.RoomID
		m.opponent = ""

	case messages.RoomJoinedMessage:
		m.roomID = msg.RoomID
		m.opponent = msg.OpponentName

	case messages.GameStartedMessage:
		m.state = states.InGame
		cmds = append(cmds, appStateCmd(m.state))

	case messages.GameEndedMessage:
		cmds = append(cmds, commands.RefreshRooms(m.client))

	case messages.ChatReceivedMessage:
		m.logger.Info("chat received",
			zap.String("sender", msg.SenderID),
			zap.String("content", msg.Content),
		)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	m.errorView = m.errorView.Update(msg)
	m.roomsView = m.roomsView.Update(msg)
	m.boardView = m.boardView.Update(msg)

	return m, tea.Batch(cmds...)
}
