package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/duelchess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	sendMu      sync.Mutex // serialises writes; a websocket.Conn allows one writer
}

// Game owns one board and is the only thing allowed to mutate it. Every
// check-then-apply sequence runs under mu so two players cannot interleave.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState

	// saveMu orders saves; discarded stops them once the game is deleted.
	saveMu    sync.Mutex
	discarded bool

	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Board          Board          `json:"board"`
	FEN            string         `json:"fen"`
	ToMove         PlayerColor    `json:"toMove"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *Ply           `json:"lastMove"`
	Resolve        *string        `json:"resolve"`
	Players        Players        `json:"players"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// CapturedPieces lists the pieces each color has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string) *Game {
	return RestoreGame(id, newGameState())
}

// RestoreGame rebuilds a game from a previously saved state. Clocks restart
// from the recorded totals.
func RestoreGame(id string, state GameState) *Game {
	if state.CapturedPieces.White == nil {
		state.CapturedPieces.White = make([]Piece, 0)
	}
	if state.CapturedPieces.Black == nil {
		state.CapturedPieces.Black = make([]Piece, 0)
	}
	if !state.ToMove.Valid() {
		state.ToMove = White
	}
	state.FEN = state.Board.FEN()
	g := &Game{
		ID:          id,
		state:       state,
		connections: NewGameConnections(),
		whiteClock:  NewClock(),
		blackClock:  NewClock(),
	}
	g.whiteClock.used = msToDuration(state.Players.White.TimeUsed)
	g.blackClock.used = msToDuration(state.Players.Black.TimeUsed)
	if g.bothSeated() && state.Resolve == nil {
		g.clockFor(state.ToMove).Start()
	}
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func newGameState() GameState {
	return GameState{
		Board:  *NewBoard(),
		ToMove: White,
		CapturedPieces: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		Players: Players{
			White: ClientPlayer{Color: White},
			Black: ClientPlayer{Color: Black},
		},
	}
}

// AddPlayer seats the player in the first free color.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("adding player %s to game %s", playerID, g.ID)

	if color, ok := g.seatOf(playerID); ok {
		return color, nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White.ID = playerID
		g.startIfSeated()
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black.ID = playerID
		g.startIfSeated()
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) startIfSeated() {
	if g.bothSeated() {
		g.clockFor(g.state.ToMove).Start()
	}
}

func (g *Game) bothSeated() bool {
	return g.state.Players.White.ID != "" && g.state.Players.Black.ID != ""
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// snapshot copies the state so it can leave the lock.
func (g *Game) snapshot() GameState {
	s := g.state
	s.CapturedPieces = CapturedPieces{
		White: append([]Piece(nil), g.state.CapturedPieces.White...),
		Black: append([]Piece(nil), g.state.CapturedPieces.Black...),
	}
	s.Players.White.TimeUsed = g.whiteClock.Used().Milliseconds()
	s.Players.Black.TimeUsed = g.blackClock.Used().Milliseconds()
	return s
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) seatOf(playerID string) (PlayerColor, bool) {
	if playerID == "" {
		return "", false
	}
	if g.state.Players.White.ID == playerID {
		return White, true
	}
	if g.state.Players.Black.ID == playerID {
		return Black, true
	}
	return "", false
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// MakeMove parses text, checks it for the player's color and applies it.
func (g *Game) MakeMove(playerID string, text string) (Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("game %s: player %s plays %q", g.ID, playerID, text)

	if g.state.Resolve != nil {
		return Ply{}, ErrGameOver
	}
	color, ok := g.seatOf(playerID)
	if !ok {
		return Ply{}, ErrNotInGame
	}
	if color != g.state.ToMove {
		return Ply{}, ErrNotYourTurn
	}

	move, err := ParseMove(text)
	if err != nil {
		return Ply{}, err
	}
	if err := CheckMove(&g.state.Board, move, color); err != nil {
		return Ply{}, err
	}

	g.clockFor(color).Stop()
	piece := g.state.Board.At(move.From)
	captured := Apply(&g.state.Board, move)
	if captured.Color == color {
		// A knight may land on its own piece; that piece is gone, not taken.
		captured = Empty
	}
	ply := makePly(piece, captured, move)

	if !captured.IsEmpty() {
		switch color {
		case White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, captured)
		case Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, captured)
		}
	}
	g.state.LastMove = &ply
	g.state.FEN = g.state.Board.FEN()
	g.switchTurn()
	g.clockFor(g.state.ToMove).Start()

	go g.broadcastState(g.snapshot())

	return ply, nil
}

// Quit ends the game on behalf of one of its players.
func (g *Game) Quit(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return ErrGameOver
	}
	color, ok := g.seatOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	result := fmt.Sprintf("Program exited by Player %d.", color.Number())
	g.state.Resolve = &result
	g.whiteClock.Stop()
	g.blackClock.Stop()

	go g.broadcastState(g.snapshot())
	return nil
}

// Save passes the current state to save. Calls are serialised and the
// snapshot is taken after waiting, so the last save always holds the newest
// state. Nothing is saved once the game has been discarded.
func (g *Game) Save(save func(GameState) error) error {
	g.saveMu.Lock()
	defer g.saveMu.Unlock()

	if g.discarded {
		return nil
	}
	return save(g.GetState())
}

// Discard waits for any save in progress, runs remove and stops all later
// saves.
func (g *Game) Discard(remove func() error) error {
	g.saveMu.Lock()
	defer g.saveMu.Unlock()

	if err := remove(); err != nil {
		return err
	}
	g.discarded = true
	return nil
}

// IsOver reports whether the game has been resolved.
func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Resolve != nil
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
}

func (g *Game) clockFor(color PlayerColor) *Clock {
	if color == White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Debugf("registering connection %s for player %s", connID, playerID)

	g.mu.Lock()
	_, seated := g.seatOf(playerID)
	isAuthorized := seated || g.canSpectate()
	state := g.snapshot()
	g.mu.Unlock()

	if !isAuthorized {
		return fmt.Errorf("not authorized to join game %s: %w", g.ID, ErrNotInGame)
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and turn the new one away.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugf("registered connection %s for player %s", connID, playerID)

	go g.broadcastState(state)
	return nil
}

// UnregisterConnection forgets conn if it is still the player's current one.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Debugf("unregistering connection %p for player %s", conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

// Notify sends a single message to one connected player.
func (g *Game) Notify(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return ErrNotInGame
	}

	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	return conn.WriteJSON(msg)
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("failed to marshal state of game %s: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	// Copy the connections so no lock is held while writing.
	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	g.connections.sendMu.Lock()
	var failed []string
	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state of game %s to player %s: %v", g.ID, playerID, err)
			failed = append(failed, playerID)
		}
	}
	g.connections.sendMu.Unlock()

	if len(failed) == 0 {
		return
	}
	g.connections.mu.Lock()
	for _, playerID := range failed {
		if g.connections.connections[playerID] == activeConnections[playerID] {
			delete(g.connections.connections, playerID)
		}
	}
	g.connections.mu.Unlock()
}
