package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"chesslink/internal/view/commands"
	"chesslink/internal/view/messages"
	"chesslink/internal/view/states"
)

type Action string

const (
	New   Action = "new"
	Join  Action = "join"
	Rooms Action = "rooms"
	Move  Action = "move"
	Chat  Action = "chat"
	Leave Action = "leave"
	Sync  Action = "sync"
	Exit  Action = "exit"
)

type actionFunc func(m *model, args []string) tea.Cmd

var actions = map[Action]actionFunc{
	New:   runNewAction,
	Join:  runJoinAction,
	Rooms: runRoomsAction,
	Move:  runMoveAction,
	Chat:  runChatAction,
	Leave: runLeaveAction,
	Sync:  runSyncAction,
	Exit:  runExitAction,
}

// Board dimensions of chinese chess: 10 ranks by 9 files.
const (
	boardRows = 10
	boardCols = 9
)

func processInput(m *model) tea.Cmd {
	defer m.input.Reset()

	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return nil
	}

	if m.state == states.InputPlayerName {
		return processPlayerNameInput(m, value)
	}
	return processAction(m, value)
}

func processPlayerNameInput(m *model, playerName string) tea.Cmd {
	m.playerName = playerName
	m.state = states.Connecting

	if m.storage != nil {
		if err := m.storage.SetPlayerName(playerName); err != nil {
			return errorCmd(errors.Wrap(err, "failed to store player name"))
		}
	}

	return tea.Batch(
		appStateCmd(m.state),
		commands.Connect(m.client, playerName),
	)
}

func processAction(m *model, action string) tea.Cmd {
	args := strings.Fields(action)
	if len(args) == 0 {
		return nil
	}

	commandRoot := Action(args[0])
	commandFn, ok := actions[commandRoot]
	if !ok {
		return errorCmd(fmt.Errorf("unknown action: %s", commandRoot))
	}

	return commandFn(m, args[1:])
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return messages.NewErrorMessage(err)
	}
}

func runNewAction(m *model, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd(errors.New("usage: new <room name> [password]"))
	}

	password := ""
	if len(args) > 1 {
		password = args[1]
	}
	return commands.CreateRoom(m.client, args[0], password)
}

func runJoinAction(m *model, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd(errors.New("usage: join <room id> [password]"))
	}

	password := ""
	if len(args) > 1 {
		password = args[1]
	}
	return commands.JoinRoom(m.client, args[0], password)
}

func runRoomsAction(m *model, _ []string) tea.Cmd {
	return commands.RefreshRooms(m.client)
}

func runMoveAction(m *model, args []string) tea.Cmd {
	if m.state != states.InGame {
		return errorCmd(errors.New("no game in progress"))
	}
	if len(args) != 4 {
		return errorCmd(errors.New("usage: move <from row> <from col> <to row> <to col>"))
	}

	coords := make([]int, 4)
	for i, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			return errorCmd(errors.Wrapf(err, "bad coordinate %q", arg))
		}
		limit := boardRows
		if i%2 == 1 {
			limit = boardCols
		}
		if value < 0 || value >= limit {
			return errorCmd(fmt.Errorf("coordinate %d out of range", value))
		}
		coords[i] = value
	}

	return commands.SendMove(m.client, coords[0], coords[1], coords[2], coords[3])
}

func runChatAction(m *model, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd(errors.New("usage: chat <message>"))
	}
	if m.roomID == "" {
		return errorCmd(errors.New("not in a room"))
	}
	return commands.SendChat(m.client, strings.Join(args, " "), "room", m.roomID)
}

func runLeaveAction(m *model, _ []string) tea.Cmd {
	if m.roomID == "" {
		return errorCmd(errors.New("not in a room"))
	}

	roomID := m.roomID
	m.roomID = ""
	m.opponent = ""
	m.state = states.Lobby

	return tea.Batch(
		appStateCmd(m.state),
		commands.LeaveRoom(m.client, roomID),
		commands.RefreshRooms(m.client),
	)
}

func runSyncAction(m *model, _ []string) tea.Cmd {
	if m.roomID == "" {
		return errorCmd(errors.New("not in a room"))
	}
	return commands.SyncGameState(m.client, m.roomID)
}

func runExitAction(m *model, _ []string) tea.Cmd {
	return commands.Quit(m.client)
}
