package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/minaorangina/tray"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrUnknownGameID     = errors.New("unknown game ID")
	ErrNilGame           = errors.New("game is nil")
	ErrFnDuplicateGameID = func(gameID string) error {
		return fmt.Errorf("game with id \"%s\" already exists", gameID)
	}
)

// NewID constructs a game ID
func NewID() string {
	return uuid.NewV4().String()
}

type GameStore interface {
	FindGame(gameID string) (*tray.Session, error)
	AddGame(game *tray.Session) error
	RemoveGame(gameID string) error
	GameIDs() []string
}

// InMemoryGameStore maps game id to session
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*tray.Session
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]*tray.Session{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) (*tray.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	return game, nil
}

func (s *InMemoryGameStore) AddGame(game *tray.Session) error {
	if game == nil {
		return ErrNilGame
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return ErrFnDuplicateGameID(game.ID())
	}
	s.games[game.ID()] = game
	return nil
}

func (s *InMemoryGameStore) RemoveGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	delete(s.games, gameID)
	return nil
}

// GameIDs lists the stored games in sorted order
func (s *InMemoryGameStore) GameIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
