package model

// Player is someone waiting in the matchmaking queue.
type Player struct {
	ID string
}

type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    PlayerColor `json:"color"`
	TimeUsed int64       `json:"timeUsed"` // milliseconds spent thinking
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

// White and Black are the short names used throughout the rules code.
const (
	White = PlayerColorWhite
	Black = PlayerColorBlack
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == White {
		return Black
	}
	return White
}

// Label is how the turn loop addresses the player owning this color.
func (c PlayerColor) Label() string {
	if c == White {
		return "Player 1 (White)"
	}
	return "Player 2 (Black)"
}

// Number returns 1 for White and 2 for Black.
func (c PlayerColor) Number() int {
	if c == White {
		return 1
	}
	return 2
}

// forward is the row delta of a pawn step for this color.
func (c PlayerColor) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// homeRow is the row this color's pawns start on.
func (c PlayerColor) homeRow() int {
	if c == White {
		return 1
	}
	return 6
}

func (c PlayerColor) Valid() bool {
	return c == White || c == Black
}

// MatchFoundEvent is handed to a queued player once matchmaking pairs them.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
