package model

import (
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/exp/constraints"
)

// IsLegal reports whether color may play move on board.
func IsLegal(board *Board, move Move, color PlayerColor) bool {
	return CheckMove(board, move, color) == nil
}

// CheckMove validates move for the player owning color. It returns nil when
// the move obeys the movement rule of the piece on the origin square, and a
// *RuleError describing the first rule broken otherwise. The board is only
// read.
func CheckMove(board *Board, move Move, color PlayerColor) error {
	if !move.InBounds() {
		err := reject(move, Empty, ErrOutOfBounds, "Input coordinates are invalid. Please type them again, in the form 'a6 to c4'.")
		log.Debugf("rejected %v: %s", move, err.Reason)
		return err
	}

	piece := board.At(move.From)
	if piece.IsEmpty() || piece.Color != color {
		err := reject(move, piece, ErrWrongColor, "Non-%s piece selected during Player %d's turn. Try again.", color, color.Number())
		log.Debugf("rejected %v: %s", move, err.Reason)
		return err
	}
	log.Debugf("%s selected", piece)

	var err *RuleError
	switch piece.Type {
	case Pawn:
		err = checkPawn(board, move, piece)
	case Knight:
		err = checkKnight(move, piece)
	case Rook:
		err = checkRook(board, move, piece)
	case Bishop:
		err = checkBishop(board, move, piece)
	case Queen:
		err = checkQueen(board, move, piece)
	case King:
		err = checkKing(board, move, piece)
	default:
		err = reject(move, piece, ErrInvalidPattern, "Unknown piece selected. Try again.")
	}
	if err != nil {
		log.Debugf("rejected %v: %s", move, err.Reason)
		return err
	}
	return nil
}

// checkPawn accepts, in order: a single step onto an empty square, a
// diagonal capture of an enemy piece, or a one or two square advance from
// the home row with both squares ahead empty.
func checkPawn(board *Board, move Move, piece Piece) *RuleError {
	dir := piece.Color.forward()
	dRow, dCol := move.delta()
	dest := board.At(move.To)

	if dRow == dir && dCol == 0 && dest.IsEmpty() {
		return nil
	}
	if dRow == dir && abs(dCol) == 1 && !dest.IsEmpty() && dest.Color != piece.Color {
		return nil
	}
	if move.From.Row == piece.Color.homeRow() && (dRow == dir || dRow == 2*dir) && dCol == 0 {
		one := Position{Row: move.From.Row + dir, Col: move.From.Col}
		two := Position{Row: move.From.Row + 2*dir, Col: move.From.Col}
		// The single step from home also needs the second square clear.
		if board.At(one).IsEmpty() && board.At(two).IsEmpty() {
			return nil
		}
	}
	return reject(move, piece, ErrInvalidPattern, "Not a valid pawn move. Try again.")
}

// checkKnight looks at the jump shape only; occupancy is not consulted.
func checkKnight(move Move, piece Piece) *RuleError {
	dRow, dCol := move.delta()
	dRow, dCol = abs(dRow), abs(dCol)
	if (dRow == 2 && dCol == 1) || (dRow == 1 && dCol == 2) {
		return nil
	}
	return reject(move, piece, ErrInvalidPattern, "Not a valid knight move. Try again.")
}

func checkRook(board *Board, move Move, piece Piece) *RuleError {
	if err := checkSlideTarget(board, move, piece); err != nil {
		return err
	}
	if move.From.Row != move.To.Row && move.From.Col != move.To.Col {
		return reject(move, piece, ErrInvalidPattern, "Not a valid move for a rook. Try again.")
	}
	return checkPath(board, move, piece)
}

func checkBishop(board *Board, move Move, piece Piece) *RuleError {
	if err := checkSlideTarget(board, move, piece); err != nil {
		return err
	}
	dRow, dCol := move.delta()
	if abs(dRow) != abs(dCol) {
		return reject(move, piece, ErrInvalidPattern, "Not a valid move for a bishop. Try again.")
	}
	return checkPath(board, move, piece)
}

func checkQueen(board *Board, move Move, piece Piece) *RuleError {
	if err := checkSlideTarget(board, move, piece); err != nil {
		return err
	}
	dRow, dCol := move.delta()
	if abs(dRow) != abs(dCol) && dRow != 0 && dCol != 0 {
		return reject(move, piece, ErrInvalidPattern, "Not a valid move for a queen. Try again.")
	}
	return checkPath(board, move, piece)
}

func checkKing(board *Board, move Move, piece Piece) *RuleError {
	dRow, dCol := move.delta()
	if abs(dRow) > 1 || abs(dCol) > 1 || (dRow == 0 && dCol == 0) {
		return reject(move, piece, ErrInvalidPattern, "Not a valid move for a king. Try again.")
	}
	if dest := board.At(move.To); !dest.IsEmpty() && dest.Color == piece.Color {
		return reject(move, piece, ErrFriendlyOccupied, "Destination cell is already occupied by a %s piece. Try again.", piece.Color)
	}
	return nil
}

// checkSlideTarget holds the two rejections shared by rook, bishop and queen.
func checkSlideTarget(board *Board, move Move, piece Piece) *RuleError {
	if move.From == move.To {
		return reject(move, piece, ErrSameSquare, "Attempt to move to the same cell not allowed. Try again.")
	}
	if dest := board.At(move.To); !dest.IsEmpty() && dest.Color == piece.Color {
		return reject(move, piece, ErrFriendlyOccupied, "Destination cell is already occupied by a %s piece. Try again.", piece.Color)
	}
	return nil
}

// checkPath walks the squares strictly between origin and destination. The
// move must already be known to be straight or diagonal.
func checkPath(board *Board, move Move, piece Piece) *RuleError {
	dRow, dCol := move.delta()
	stepRow, stepCol := sign(dRow), sign(dCol)

	pos := Position{Row: move.From.Row + stepRow, Col: move.From.Col + stepCol}
	for pos != move.To {
		if !board.At(pos).IsEmpty() {
			return reject(move, piece, ErrPathBlocked, "Something is in the way of your %s. Try again.", piece.Type)
		}
		pos = Position{Row: pos.Row + stepRow, Col: pos.Col + stepCol}
	}
	return nil
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func sign[T constraints.Signed](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
