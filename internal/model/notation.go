package model

import (
	"fmt"
	"strings"
)

// InvalidIndex is stored in any coordinate the parser could not read. It is
// outside [0,7], so a Move carrying it never passes the bounds check.
const InvalidIndex = 10

// ParseCoordinates reads text such as "a2 a4" or "a2 to a4" and returns the
// zero-indexed origin and destination. The first token is the origin and the
// last token the destination; anything in between is ignored. Components that
// cannot be read come back as InvalidIndex.
func ParseCoordinates(text string) (fromRow, fromCol, toRow, toCol int) {
	move, _ := ParseMove(text)
	return move.From.Row, move.From.Col, move.To.Row, move.To.Col
}

// ParseMove is ParseCoordinates with an explicit failure. On error the
// returned Move still holds InvalidIndex in the unreadable components.
func ParseMove(text string) (Move, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		invalid := Position{Row: InvalidIndex, Col: InvalidIndex}
		return Move{From: invalid, To: invalid}, fmt.Errorf("%w: empty input", ErrMalformedMove)
	}

	origin, dest := fields[0], fields[len(fields)-1]
	from, fromOK := parseSquare(origin)
	to, toOK := parseSquare(dest)
	move := Move{From: from, To: to}

	switch {
	case !fromOK:
		return move, fmt.Errorf("%w: bad origin square %q", ErrMalformedMove, origin)
	case !toOK:
		return move, fmt.Errorf("%w: bad destination square %q", ErrMalformedMove, dest)
	case len(fields) == 1:
		return move, fmt.Errorf("%w: expected an origin and a destination square", ErrMalformedMove)
	}
	return move, nil
}

// parseSquare reads the first two characters of token as file then rank.
// Anything after the second character is ignored.
func parseSquare(token string) (Position, bool) {
	if len(token) < 2 {
		return Position{Row: InvalidIndex, Col: InvalidIndex}, false
	}
	col := fileIndex(token[0])
	row := rankIndex(token[1])
	return Position{Row: row, Col: col}, row != InvalidIndex && col != InvalidIndex
}

func fileIndex(c byte) int {
	switch {
	case c >= 'a' && c <= 'h':
		return int(c - 'a')
	case c >= 'A' && c <= 'H':
		return int(c - 'A')
	}
	return InvalidIndex
}

func rankIndex(c byte) int {
	if c >= '1' && c <= '8' {
		return int(c - '1')
	}
	return InvalidIndex
}

// IsQuit reports whether the line is the quit command.
func IsQuit(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "exit")
}
