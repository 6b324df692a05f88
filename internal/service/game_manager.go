// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/duelchess/internal/model"
	"github.com/benbeisheim/duelchess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// Store persists game state between server runs.
type Store interface {
	SaveGame(id string, state model.GameState) error
	LoadGame(id string) (model.GameState, error)
	ListGames() ([]string, error)
	DeleteGame(id string) error
}

type GameManager struct {
	games   map[string]*model.Game
	queue   *model.Queue
	matches map[string]model.MatchFoundEvent // playerID -> game found for them
	store   Store
	mu      sync.RWMutex
}

// NewGameManager creates a manager. store may be nil, in which case games
// live only in memory.
func NewGameManager(store Store) *GameManager {
	return &GameManager{
		games:   make(map[string]*model.Game),
		queue:   model.NewQueue(),
		matches: make(map[string]model.MatchFoundEvent),
		store:   store,
	}
}

// Run drains the matchmaking queue every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := gm.matchPlayers(); n > 0 {
				log.Infof("matchmaking created %d game(s)", n)
			}
		}
	}
}

// matchPlayers pairs queued players two at a time and returns how many
// games it created.
func (gm *GameManager) matchPlayers() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	created := 0
	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return created
		}

		gameID := uuid.New().String()
		game := model.NewGame(gameID)
		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Errorf("adding player %s to game %s: %v", player1.ID, gameID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Errorf("adding player %s to game %s: %v", player2.ID, gameID, err)
			continue
		}
		gm.games[gameID] = game
		gm.persist(game)

		gm.matches[player1.ID] = model.MatchFoundEvent{GameID: gameID, Color: p1Color}
		gm.matches[player2.ID] = model.MatchFoundEvent{GameID: gameID, Color: p2Color}
		created++
	}
}

// MatchStatus returns the game matchmaking found for the player, if any.
// The match is forgotten once it has been read.
func (gm *GameManager) MatchStatus(playerID string) (model.MatchFoundEvent, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	event, ok := gm.matches[playerID]
	if ok {
		delete(gm.matches, playerID)
	}
	return event, ok
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	game := model.NewGame(gameID)
	gm.games[gameID] = game
	gm.persist(game)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	gm.persist(game)
	return color, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return fmt.Errorf("join matchmaking: %w", err)
	}
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// MakeMove plays text for the player. Only the game's own lock is held while
// the move is checked and applied, so different games never wait on each
// other.
func (gm *GameManager) MakeMove(gameID string, playerID string, text string) (model.Ply, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Ply{}, err
	}

	ply, err := game.MakeMove(playerID, text)
	if err != nil {
		return model.Ply{}, err
	}
	gm.persist(game)
	return ply, nil
}

func (gm *GameManager) Quit(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.Quit(playerID); err != nil {
		return err
	}
	gm.persist(game)
	return nil
}

// DeleteGame discards a finished game. Only one of its players may do so.
func (gm *GameManager) DeleteGame(gameID string, playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	game, exists := gm.games[gameID]
	if !exists {
		return ErrGameNotFound
	}
	if !game.IsPlayerInGame(playerID) {
		return model.ErrNotInGame
	}
	if !game.IsOver() {
		return model.ErrGameNotOver
	}

	err := game.Discard(func() error {
		if gm.store == nil {
			return nil
		}
		return gm.store.DeleteGame(gameID)
	})
	if err != nil {
		return fmt.Errorf("delete stored game %s: %w", gameID, err)
	}
	delete(gm.games, gameID)
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Notify(gameID string, playerID string, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Notify(playerID, msg)
}

// Restore loads every stored game that is not already in memory and
// returns how many were loaded.
func (gm *GameManager) Restore() (int, error) {
	if gm.store == nil {
		return 0, nil
	}
	ids, err := gm.store.ListGames()
	if err != nil {
		return 0, fmt.Errorf("list stored games: %w", err)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	restored := 0
	for _, id := range ids {
		if _, exists := gm.games[id]; exists {
			continue
		}
		state, err := gm.store.LoadGame(id)
		if err != nil {
			return restored, fmt.Errorf("load game %s: %w", id, err)
		}
		gm.games[id] = model.RestoreGame(id, state)
		restored++
	}
	return restored, nil
}

func (gm *GameManager) persist(game *model.Game) {
	if gm.store == nil {
		return
	}
	err := game.Save(func(state model.GameState) error {
		return gm.store.SaveGame(game.ID, state)
	})
	if err != nil {
		log.Errorf("saving game %s: %v", game.ID, err)
	}
}
