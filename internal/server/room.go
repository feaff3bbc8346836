package server

import (
	"sync"

	"chesslink/pkg/protocol"
)

// Room pairs up to two seated players. All seat mutations run under the
// room's own mutex, including the fill-and-start decision, so two
// concurrent joins can never both conclude they completed the pair.
type Room struct {
	id       string
	name     string
	password string
	hostID   string
	hostName string
	gameType string

	mu          sync.Mutex
	playerIDs   []string
	playerNames []string
	state       protocol.GameState
	redID       string
	blackID     string
}

func newRoom(id, name, password, hostID, hostName, gameType string) *Room {
	room := &Room{
		id:       id,
		name:     name,
		password: password,
		hostID:   hostID,
		hostName: hostName,
		gameType: gameType,
		state:    protocol.GameStateWaiting,
	}
	// The host occupies seat 0 by construction.
	room.playerIDs = append(room.playerIDs, hostID)
	room.playerNames = append(room.playerNames, hostName)
	return room
}

// AddPlayer seats a player. started reports that this exact join filled
// the room and transitioned it to PLAYING; the transition happens at
// most once, with the host assigned RED.
func (r *Room) AddPlayer(playerID, playerName string) (joined, started bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.playerIDs) >= protocol.MaxRoomPlayers || r.indexOf(playerID) >= 0 {
		return false, false
	}

	r.playerIDs = append(r.playerIDs, playerID)
	r.playerNames = append(r.playerNames, playerName)

	if len(r.playerIDs) == protocol.MaxRoomPlayers && r.state == protocol.GameStateWaiting {
		r.state = protocol.GameStatePlaying
		r.redID = r.hostID
		for _, id := range r.playerIDs {
			if id != r.hostID {
				r.blackID = id
				break
			}
		}
		return true, true
	}

	return true, false
}

// RemovePlayer unseats a player. Removing an absent player is a no-op.
func (r *Room) RemovePlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(playerID)
	if index < 0 {
		return false
	}

	r.playerIDs = append(r.playerIDs[:index], r.playerIDs[index+1:]...)
	r.playerNames = append(r.playerNames[:index], r.playerNames[index+1:]...)
	return true
}

func (r *Room) indexOf(playerID string) int {
	for i, id := range r.playerIDs {
		if id == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) HasPlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexOf(playerID) >= 0
}

// PlayerIDs returns a snapshot copy, safe to iterate while other
// connections mutate the seats.
func (r *Room) PlayerIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.playerIDs))
	copy(ids, r.playerIDs)
	return ids
}

// OpponentName returns the display name of the seat not occupied by
// playerID.
func (r *Room) OpponentName(playerID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, id := range r.playerIDs {
		if id != playerID {
			return r.playerNames[i]
		}
	}
	return ""
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.playerIDs)
}

func (r *Room) IsEmpty() bool {
	return r.PlayerCount() == 0
}

func (r *Room) State() protocol.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Colors returns the red and black player ids, empty until the room
// transitioned to PLAYING.
func (r *Room) Colors() (redID, blackID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redID, r.blackID
}

func (r *Room) Info() protocol.RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return protocol.RoomInfo{
		RoomID:         r.id,
		RoomName:       r.name,
		HostName:       r.hostName,
		CurrentPlayers: len(r.playerIDs),
		MaxPlayers:     protocol.MaxRoomPlayers,
		HasPassword:    r.password != "",
		GameStatus:     string(r.state),
		GameType:       r.gameType,
	}
}
