package model

import (
	"errors"
	"testing"
)

// sq converts "e4" into a Position, failing the test on bad input.
func sq(t *testing.T, name string) Position {
	t.Helper()
	p, ok := parseSquare(name)
	if !ok {
		t.Fatalf("bad square %q", name)
	}
	return p
}

func mv(t *testing.T, from, to string) Move {
	t.Helper()
	return Move{From: sq(t, from), To: sq(t, to)}
}

// place builds an otherwise empty board holding the given pieces.
func place(t *testing.T, pieces map[string]Piece) *Board {
	t.Helper()
	b := &Board{}
	for name, p := range pieces {
		b.Set(sq(t, name), p)
	}
	return b
}

var (
	wP = Piece{Pawn, White}
	wN = Piece{Knight, White}
	wB = Piece{Bishop, White}
	wR = Piece{Rook, White}
	wQ = Piece{Queen, White}
	wK = Piece{King, White}
	bP = Piece{Pawn, Black}
	bN = Piece{Knight, Black}
	bB = Piece{Bishop, Black}
	bR = Piece{Rook, Black}
	bQ = Piece{Queen, Black}
	bK = Piece{King, Black}
)

func TestCheckMove_OpeningScenarios(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		color   PlayerColor
		wantErr error
	}{
		{"white double step", "e2 e4", White, nil},
		{"white single step", "e2 e3", White, nil},
		{"rook blocked by own pawn", "a1 a3", White, ErrPathBlocked},
		{"black knight jump", "b8 a6", Black, nil},
		{"white knight jump", "g1 f3", White, nil},
		{"king onto own pawn", "e1 e2", White, ErrFriendlyOccupied},
		{"black double step", "d7 d5", Black, nil},
		{"white moves black piece", "e7 e5", White, ErrWrongColor},
		{"black moves white piece", "e2 e4", Black, ErrWrongColor},
		{"empty origin", "e4 e5", White, ErrWrongColor},
		{"bishop boxed in", "c1 e3", White, ErrPathBlocked},
		{"queen boxed in", "d1 d3", White, ErrPathBlocked},
		{"pawn triple step", "e2 e5", White, ErrInvalidPattern},
		{"pawn sideways", "e2 f2", White, ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			move, err := ParseMove(tt.input)
			if err != nil {
				t.Fatalf("ParseMove(%q) error: %v", tt.input, err)
			}

			err = CheckMove(board, move, tt.color)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CheckMove(%q, %s) = %v, want legal", tt.input, tt.color, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckMove(%q, %s) = %v, want %v", tt.input, tt.color, err, tt.wantErr)
			}
			if !errors.Is(err, ErrIllegalMove) {
				t.Errorf("CheckMove(%q) error does not match ErrIllegalMove", tt.input)
			}
		})
	}
}

func TestCheckMove_RookBlockedIsRejectedOnPath(t *testing.T) {
	// a1 a3 from the opening: a3 is empty so the rejection comes from the
	// pawn standing on a2.
	board := NewBoard()
	err := CheckMove(board, mv(t, "a1", "a3"), White)
	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("CheckMove(a1 a3) = %v, want *RuleError", err)
	}
	if !errors.Is(err, ErrPathBlocked) {
		t.Errorf("CheckMove(a1 a3) = %v, want ErrPathBlocked", err)
	}
	if ruleErr.Piece != wR {
		t.Errorf("RuleError.Piece = %v, want %v", ruleErr.Piece, wR)
	}
	if want := "Something is in the way of your rook. Try again."; ruleErr.Reason != want {
		t.Errorf("RuleError.Reason = %q, want %q", ruleErr.Reason, want)
	}
}

func TestCheckMove_MalformedInputIsBoundsRejection(t *testing.T) {
	for _, input := range []string{"xyz", "", "   ", "a9 a4", "i2 i4", "a2 a", "2a 4a"} {
		t.Run(input, func(t *testing.T) {
			move, _ := ParseMove(input)
			err := CheckMove(NewBoard(), move, White)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("CheckMove(%q) = %v, want ErrOutOfBounds", input, err)
			}
		})
	}
}

func TestCheckMove_Pawn(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[string]Piece
		move   [2]string
		color  PlayerColor
		legal  bool
	}{
		{"white step onto piece", map[string]Piece{"e4": wP, "e5": bP}, [2]string{"e4", "e5"}, White, false},
		{"white capture left", map[string]Piece{"e4": wP, "d5": bN}, [2]string{"e4", "d5"}, White, true},
		{"white capture right", map[string]Piece{"e4": wP, "f5": bQ}, [2]string{"e4", "f5"}, White, true},
		{"white capture own piece", map[string]Piece{"e4": wP, "f5": wN}, [2]string{"e4", "f5"}, White, false},
		{"white diagonal onto empty", map[string]Piece{"e4": wP}, [2]string{"e4", "f5"}, White, false},
		{"white backwards", map[string]Piece{"e4": wP}, [2]string{"e4", "e3"}, White, false},
		{"white double step off home row", map[string]Piece{"e3": wP}, [2]string{"e3", "e5"}, White, false},
		{"white double step blocked near", map[string]Piece{"e2": wP, "e3": bP}, [2]string{"e2", "e4"}, White, false},
		{"white double step blocked far", map[string]Piece{"e2": wP, "e4": bP}, [2]string{"e2", "e4"}, White, false},
		{"black step", map[string]Piece{"e5": bP}, [2]string{"e5", "e4"}, Black, true},
		{"black backwards", map[string]Piece{"e5": bP}, [2]string{"e5", "e6"}, Black, false},
		{"black capture", map[string]Piece{"e5": bP, "d4": wB}, [2]string{"e5", "d4"}, Black, true},
		{"black capture own piece", map[string]Piece{"e5": bP, "d4": bB}, [2]string{"e5", "d4"}, Black, false},
		{"black double step", map[string]Piece{"c7": bP}, [2]string{"c7", "c5"}, Black, true},
		{"black double step blocked", map[string]Piece{"c7": bP, "c6": wP}, [2]string{"c7", "c5"}, Black, false},
		{"black capture two files away", map[string]Piece{"e5": bP, "c4": wP}, [2]string{"e5", "c4"}, Black, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := place(t, tt.pieces)
			got := IsLegal(board, mv(t, tt.move[0], tt.move[1]), tt.color)
			if got != tt.legal {
				t.Errorf("IsLegal(%s %s) = %v, want %v", tt.move[0], tt.move[1], got, tt.legal)
			}
		})
	}
}

// The home-row branch demands both squares ahead be empty even for a single
// step; the plain step rule still lets a one-square advance through.
func TestCheckMove_PawnHomeRowNeedsTwoClearSquares(t *testing.T) {
	board := place(t, map[string]Piece{"d2": wP, "d4": bP})
	if !IsLegal(board, mv(t, "d2", "d3"), White) {
		t.Errorf("IsLegal(d2 d3) with d4 occupied = false, want true")
	}
	if IsLegal(board, mv(t, "d2", "d4"), White) {
		t.Errorf("IsLegal(d2 d4) onto occupied square = true, want false")
	}

	board = place(t, map[string]Piece{"d7": bP, "d5": wP})
	if !IsLegal(board, mv(t, "d7", "d6"), Black) {
		t.Errorf("IsLegal(d7 d6) with d5 occupied = false, want true")
	}
}

func TestCheckMove_KnightIgnoresBoard(t *testing.T) {
	from := Position{Row: 3, Col: 3}
	crowded := NewBoard()
	for row := 2; row <= 4; row++ {
		for col := 2; col <= 4; col++ {
			crowded[row][col] = bP
		}
	}
	crowded[from.Row][from.Col] = wN

	lonely := &Board{}
	lonely[from.Row][from.Col] = wN

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			move := Move{From: from, To: Position{Row: row, Col: col}}
			dRow, dCol := abs(row-from.Row), abs(col-from.Col)
			want := (dRow == 1 && dCol == 2) || (dRow == 2 && dCol == 1)

			if got := IsLegal(crowded, move, White); got != want {
				t.Errorf("crowded IsLegal(%v) = %v, want %v", move, got, want)
			}
			if got := IsLegal(lonely, move, White); got != want {
				t.Errorf("lonely IsLegal(%v) = %v, want %v", move, got, want)
			}
		}
	}
}

func TestCheckMove_KnightMayLandOnOwnPiece(t *testing.T) {
	board := NewBoard()
	if !IsLegal(board, mv(t, "g1", "e2"), White) {
		t.Errorf("IsLegal(g1 e2) = false, want true (knights do not check occupancy)")
	}
}

func TestCheckMove_Sliders(t *testing.T) {
	tests := []struct {
		name    string
		pieces  map[string]Piece
		move    [2]string
		wantErr error
	}{
		{"rook file", map[string]Piece{"a1": wR}, [2]string{"a1", "a8"}, nil},
		{"rook rank", map[string]Piece{"a1": wR}, [2]string{"a1", "h1"}, nil},
		{"rook leftwards", map[string]Piece{"h4": wR}, [2]string{"h4", "a4"}, nil},
		{"rook capture", map[string]Piece{"a1": wR, "a7": bP}, [2]string{"a1", "a7"}, nil},
		{"rook through enemy", map[string]Piece{"a1": wR, "a4": bP}, [2]string{"a1", "a7"}, ErrPathBlocked},
		{"rook diagonal", map[string]Piece{"a1": wR}, [2]string{"a1", "b2"}, ErrInvalidPattern},
		{"rook same square", map[string]Piece{"a1": wR}, [2]string{"a1", "a1"}, ErrSameSquare},
		{"rook onto own", map[string]Piece{"a1": wR, "a5": wN}, [2]string{"a1", "a5"}, ErrFriendlyOccupied},
		{"bishop long diagonal", map[string]Piece{"a1": wB}, [2]string{"a1", "h8"}, nil},
		{"bishop anti diagonal", map[string]Piece{"h1": wB}, [2]string{"h1", "a8"}, nil},
		{"bishop down left", map[string]Piece{"f6": wB}, [2]string{"f6", "c3"}, nil},
		{"bishop blocked", map[string]Piece{"a1": wB, "d4": bP}, [2]string{"a1", "h8"}, ErrPathBlocked},
		{"bishop capture", map[string]Piece{"a1": wB, "h8": bR}, [2]string{"a1", "h8"}, nil},
		{"bishop straight", map[string]Piece{"c1": wB}, [2]string{"c1", "c5"}, ErrInvalidPattern},
		{"bishop knight shape", map[string]Piece{"c1": wB}, [2]string{"c1", "d3"}, ErrInvalidPattern},
		{"bishop same square", map[string]Piece{"c1": wB}, [2]string{"c1", "c1"}, ErrSameSquare},
		{"queen diagonal", map[string]Piece{"d1": wQ}, [2]string{"d1", "h5"}, nil},
		{"queen straight", map[string]Piece{"d1": wQ}, [2]string{"d1", "d8"}, nil},
		{"queen sideways", map[string]Piece{"d1": wQ}, [2]string{"d1", "a1"}, nil},
		{"queen blocked diagonal", map[string]Piece{"d1": wQ, "f3": wP}, [2]string{"d1", "h5"}, ErrPathBlocked},
		{"queen blocked straight", map[string]Piece{"d1": wQ, "d4": bK}, [2]string{"d1", "d8"}, ErrPathBlocked},
		{"queen knight shape", map[string]Piece{"d1": wQ}, [2]string{"d1", "e3"}, ErrInvalidPattern},
		{"queen onto own", map[string]Piece{"d1": wQ, "d2": wP}, [2]string{"d1", "d2"}, ErrFriendlyOccupied},
		{"queen same square", map[string]Piece{"d1": wQ}, [2]string{"d1", "d1"}, ErrSameSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := place(t, tt.pieces)
			err := CheckMove(board, mv(t, tt.move[0], tt.move[1]), White)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CheckMove(%s %s) = %v, want legal", tt.move[0], tt.move[1], err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckMove(%s %s) = %v, want %v", tt.move[0], tt.move[1], err, tt.wantErr)
			}
		})
	}
}

// Any occupied square strictly between origin and destination on the line
// makes a sliding move illegal, whatever stands on the destination.
func TestCheckMove_SliderPathProperty(t *testing.T) {
	destinations := []Piece{Empty, bP, wP}
	for _, slider := range []Piece{wR, wQ} {
		for _, dest := range destinations {
			for blocker := 1; blocker < 7; blocker++ {
				board := &Board{}
				board[0][0] = slider
				board[blocker][0] = bN
				board[7][0] = dest
				if IsLegal(board, Move{From: Position{0, 0}, To: Position{7, 0}}, White) {
					t.Errorf("%v a1-a8 with blocker on row %d and %v on a8: legal, want illegal", slider, blocker, dest)
				}
			}
		}
	}
	for _, slider := range []Piece{wB, wQ} {
		for _, dest := range destinations {
			for blocker := 1; blocker < 7; blocker++ {
				board := &Board{}
				board[0][0] = slider
				board[blocker][blocker] = bN
				board[7][7] = dest
				if IsLegal(board, Move{From: Position{0, 0}, To: Position{7, 7}}, White) {
					t.Errorf("%v a1-h8 with blocker on diagonal %d and %v on h8: legal, want illegal", slider, blocker, dest)
				}
			}
		}
	}
}

func TestCheckMove_King(t *testing.T) {
	from := Position{Row: 4, Col: 4}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			board := &Board{}
			board[from.Row][from.Col] = bK
			move := Move{From: from, To: Position{Row: row, Col: col}}
			dRow, dCol := abs(row-from.Row), abs(col-from.Col)
			want := dRow <= 1 && dCol <= 1 && !(dRow == 0 && dCol == 0)
			if got := IsLegal(board, move, Black); got != want {
				t.Errorf("IsLegal(king %v) = %v, want %v", move, got, want)
			}
		}
	}

	board := place(t, map[string]Piece{"e8": bK, "d7": bP, "f7": wP})
	if IsLegal(board, mv(t, "e8", "d7"), Black) {
		t.Errorf("IsLegal(e8 d7) onto own pawn = true, want false")
	}
	if !IsLegal(board, mv(t, "e8", "f7"), Black) {
		t.Errorf("IsLegal(e8 f7) capturing = false, want true")
	}
}

func TestCheckMove_ColorsAreMirrored(t *testing.T) {
	mirror := func(p Position) Position { return Position{Row: 7 - p.Row, Col: p.Col} }
	flip := func(p Piece) Piece {
		if p.IsEmpty() {
			return p
		}
		return Piece{Type: p.Type, Color: p.Color.Opponent()}
	}

	board := NewBoard()
	Apply(board, mv(t, "e2", "e4"))
	Apply(board, mv(t, "d7", "d5"))
	Apply(board, mv(t, "g1", "f3"))

	var mirrored Board
	for row := range board {
		for col := range board[row] {
			pos := Position{Row: row, Col: col}
			mirrored.Set(mirror(pos), flip(board.At(pos)))
		}
	}

	for fr := 0; fr < 8; fr++ {
		for fc := 0; fc < 8; fc++ {
			for tr := 0; tr < 8; tr++ {
				for tc := 0; tc < 8; tc++ {
					move := Move{From: Position{fr, fc}, To: Position{tr, tc}}
					mirroredMove := Move{From: mirror(move.From), To: mirror(move.To)}
					white := IsLegal(board, move, White)
					black := IsLegal(&mirrored, mirroredMove, Black)
					if white != black {
						t.Fatalf("IsLegal(%v, white) = %v but mirrored IsLegal(%v, black) = %v", move, white, mirroredMove, black)
					}
				}
			}
		}
	}
}

func TestCheckMove_IsPure(t *testing.T) {
	board := NewBoard()
	Apply(board, mv(t, "e2", "e4"))
	before := *board

	for fr := 0; fr < 8; fr++ {
		for fc := 0; fc < 8; fc++ {
			for tr := 0; tr < 8; tr++ {
				for tc := 0; tc < 8; tc++ {
					move := Move{From: Position{fr, fc}, To: Position{tr, tc}}
					for _, color := range []PlayerColor{White, Black} {
						first := IsLegal(board, move, color)
						second := IsLegal(board, move, color)
						if first != second {
							t.Fatalf("IsLegal(%v, %s) not deterministic", move, color)
						}
					}
				}
			}
		}
	}
	if *board != before {
		t.Errorf("CheckMove mutated the board")
	}
}

func TestCheckMove_WrongColorMessage(t *testing.T) {
	err := CheckMove(NewBoard(), mv(t, "e7", "e5"), White)
	if want := "Non-white piece selected during Player 1's turn. Try again."; err == nil || err.Error() != want {
		t.Errorf("CheckMove(e7 e5, white) = %v, want %q", err, want)
	}
	err = CheckMove(NewBoard(), mv(t, "e2", "e4"), Black)
	if want := "Non-black piece selected during Player 2's turn. Try again."; err == nil || err.Error() != want {
		t.Errorf("CheckMove(e2 e4, black) = %v, want %q", err, want)
	}
}
