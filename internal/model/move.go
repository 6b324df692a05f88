package model

import "fmt"

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.Col+'a', p.Row+1)
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return p.getSquareNotation()
}

// Move is a single origin/destination pair as typed by a player.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) InBounds() bool {
	return m.From.InBounds() && m.To.InBounds()
}

func (m Move) String() string {
	return m.From.String() + " " + m.To.String()
}

// delta returns the row and column distance travelled, signed.
func (m Move) delta() (int, int) {
	return m.To.Row - m.From.Row, m.To.Col - m.From.Col
}

// Ply records an applied move for clients.
type Ply struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
	Notation      string   `json:"notation"`
}

func makePly(piece, captured Piece, move Move) Ply {
	ply := Ply{
		Piece:    piece,
		From:     move.From,
		To:       move.To,
		Notation: getNotation(piece, captured, move),
	}
	if !captured.IsEmpty() {
		ply.CapturedPiece = &captured
	}
	return ply
}

// getNotation renders a long algebraic form such as "Ng1-f3" or "Pe4xd5".
func getNotation(piece, captured Piece, move Move) string {
	sep := "-"
	if !captured.IsEmpty() {
		sep = "x"
	}
	return fmt.Sprintf("%s%s%s%s", piece.Type.getPieceNotation(), move.From.getSquareNotation(), sep, move.To.getSquareNotation())
}
