package model

// Apply moves the piece on move.From to move.To and empties move.From. It
// does not validate; call CheckMove first. The previous occupant of the
// destination is returned (Empty if there was none). A move whose origin and
// destination coincide leaves the board unchanged.
func Apply(board *Board, move Move) Piece {
	if move.From == move.To {
		return Empty
	}
	captured := board.At(move.To)
	board.Set(move.To, board.At(move.From))
	board.Set(move.From, Empty)
	return captured
}
