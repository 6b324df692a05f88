package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// Piece is the occupant of a square. The zero value is an empty square.
type Piece struct {
	Type  PieceType   `json:"type,omitempty"`
	Color PlayerColor `json:"color,omitempty"`
}

// Empty marks a square with nothing on it.
var Empty = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

// GlyphStyle selects how pieces are drawn by Render.
type GlyphStyle string

const (
	GlyphsUnicode GlyphStyle = "unicode"
	GlyphsASCII   GlyphStyle = "ascii"
)

var unicodeGlyphs = map[Piece]string{
	{King, White}:   "♔",
	{Queen, White}:  "♕",
	{Rook, White}:   "♖",
	{Bishop, White}: "♗",
	{Knight, White}: "♘",
	{Pawn, White}:   "♙",
	{King, Black}:   "♚",
	{Queen, Black}:  "♛",
	{Rook, Black}:   "♜",
	{Bishop, Black}: "♝",
	{Knight, Black}: "♞",
	{Pawn, Black}:   "♟",
}

// Glyph returns the printable symbol for the piece, or "" for Empty.
// ASCII glyphs are upper case for white and lower case for black.
func (p Piece) Glyph(style GlyphStyle) string {
	if p.IsEmpty() {
		return ""
	}
	if style == GlyphsASCII {
		letter := p.Type.getPieceNotation()
		if p.Color == Black {
			return string(letter[0] + ('a' - 'A'))
		}
		return letter
	}
	return unicodeGlyphs[p]
}

// Board is an 8x8 grid indexed [row][col]; row 0 is rank 1 and col 0 is file a.
type Board [8][8]Piece

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board in the standard opening position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset puts every piece back on its starting square.
func (b *Board) Reset() {
	*b = Board{}
	for col := 0; col < 8; col++ {
		b[0][col] = Piece{Type: backRank[col], Color: White}
		b[1][col] = Piece{Type: Pawn, Color: White}
		b[6][col] = Piece{Type: Pawn, Color: Black}
		b[7][col] = Piece{Type: backRank[col], Color: Black}
	}
}

func (b *Board) At(p Position) Piece {
	return b[p.Row][p.Col]
}

func (b *Board) Set(p Position, piece Piece) {
	b[p.Row][p.Col] = piece
}

// Count returns how many squares hold the given piece.
func (b *Board) Count(piece Piece) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == piece {
				n++
			}
		}
	}
	return n
}
