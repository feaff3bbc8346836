package storage

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"go.uber.org/zap"

	"chesslink/internal/config"
	"chesslink/pkg/client"
)

const playerStorageFileName = "player.json"

// Storage persists the local player identity, so a reconnecting client
// keeps the same player id across sessions.
type Storage struct {
	logger *zap.Logger
	player playerStorage

	configDirs configdir.ConfigDir
	mutex      sync.RWMutex
}

type playerStorage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewStorage opens the identity store. An empty localPath means the
// platform's global config directory; tests pass a temp dir.
func NewStorage(localPath string, logger *zap.Logger) (*Storage, error) {
	configDirs := configdir.New(config.VendorName, config.ApplicationName)
	configDirs.LocalPath = localPath

	s := &Storage{
		logger:     logger,
		configDirs: configDirs,
	}
	return s, s.initialize()
}

func (s *Storage) initialize() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	err := s.readPlayer()
	s.logger.Info("storage initialized", zap.Any("player", s.player))
	return err
}

func (s *Storage) readPlayer() error {
	folder := s.configDirs.QueryFolderContainsFile(playerStorageFileName)
	if folder == nil {
		s.logger.Info("no player identity found, creating a new one")
		return s.createPlayerID()
	}

	data, err := folder.ReadFile(playerStorageFileName)
	if err != nil {
		return errors.Wrap(err, "failed to read player data")
	}

	err = json.Unmarshal(data, &s.player)
	if err == nil {
		return nil
	}

	s.logger.Error("failed to parse player storage, creating a new one", zap.Error(err))
	return s.createPlayerID()
}

func (s *Storage) createPlayerID() error {
	s.player.ID = client.GeneratePlayerID()
	s.player.Name = ""
	return s.savePlayerStorage()
}

func (s *Storage) savePlayerStorage() error {
	data, err := json.Marshal(s.player)
	if err != nil {
		return errors.Wrap(err, "failed to marshal player data")
	}

	err = s.folder().WriteFile(playerStorageFileName, data)
	if err != nil {
		return errors.Wrap(err, "failed to write player data")
	}

	return nil
}

func (s *Storage) folder() *configdir.Config {
	if s.configDirs.LocalPath != "" {
		return s.configDirs.QueryFolders(configdir.Local)[0]
	}
	return s.configDirs.QueryFolders(configdir.Global)[0]
}

func (s *Storage) PlayerID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.player.ID
}

func (s *Storage) PlayerName() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.player.Name
}

func (s *Storage) SetPlayerName(name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.player.Name = name
	return s.savePlayerStorage()
}
