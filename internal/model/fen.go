package model

import "github.com/corentings/chess/v2"

var fenPieces = map[Piece]chess.Piece{
	{King, White}:   chess.WhiteKing,
	{Queen, White}:  chess.WhiteQueen,
	{Rook, White}:   chess.WhiteRook,
	{Bishop, White}: chess.WhiteBishop,
	{Knight, White}: chess.WhiteKnight,
	{Pawn, White}:   chess.WhitePawn,
	{King, Black}:   chess.BlackKing,
	{Queen, Black}:  chess.BlackQueen,
	{Rook, Black}:   chess.BlackRook,
	{Bishop, Black}: chess.BlackBishop,
	{Knight, Black}: chess.BlackKnight,
	{Pawn, Black}:   chess.BlackPawn,
}

// FEN returns the piece placement field of a FEN record for the board,
// e.g. "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" for the opening.
func (b *Board) FEN() string {
	squares := make(map[chess.Square]chess.Piece)
	for row := range b {
		for col, piece := range b[row] {
			if piece.IsEmpty() {
				continue
			}
			squares[chess.Square(col+8*row)] = fenPieces[piece]
		}
	}
	return chess.NewBoard(squares).String()
}
