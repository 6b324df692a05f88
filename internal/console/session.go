// Package console runs a two-player game over a line-oriented terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/duelchess/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// Session is the turn loop. It owns the board; nothing else mutates it.
type Session struct {
	board  model.Board
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
	style  model.GlyphStyle
	toMove model.PlayerColor
}

func NewSession(in io.Reader, out, errOut io.Writer, style model.GlyphStyle) *Session {
	return &Session{
		board:  *model.NewBoard(),
		in:     bufio.NewScanner(in),
		out:    out,
		errOut: errOut,
		style:  style,
		toMove: model.White,
	}
}

// Board returns a copy of the current position.
func (s *Session) Board() model.Board {
	return s.board
}

// ToMove returns the color whose prompt comes next.
func (s *Session) ToMove() model.PlayerColor {
	return s.toMove
}

// Run prints the board and alternates the two players until one of them
// types exit, the input ends, or ctx is cancelled. A rejected move reprompts
// the same player.
func (s *Session) Run(ctx context.Context) error {
	if err := model.Render(s.out, &s.board, s.style); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(s.out, "%s move:\n", s.toMove.Label())
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("read move: %w", err)
			}
			log.Debugf("input closed during %s's turn", s.toMove)
			return nil
		}
		line := s.in.Text()

		if model.IsQuit(line) {
			fmt.Fprintf(s.out, "Program exited by Player %d.\n", s.toMove.Number())
			return nil
		}

		if err := s.play(line); err != nil {
			fmt.Fprintln(s.errOut, err)
			continue
		}
		if err := model.Render(s.out, &s.board, s.style); err != nil {
			return err
		}
		s.toMove = s.toMove.Opponent()
	}
}

// play checks and applies one line of input for the player to move.
func (s *Session) play(line string) error {
	move, err := model.ParseMove(line)
	if err != nil {
		log.Debugf("unreadable move %q: %v", line, err)
	}
	if move.InBounds() {
		if piece := s.board.At(move.From); !piece.IsEmpty() && piece.Color == s.toMove {
			fmt.Fprintf(s.out, "%s selected.\n", capitalize(piece.String()))
		}
	}
	// A malformed move still carries out-of-range coordinates, so the
	// checker rejects it with the coordinate message.
	if err := model.CheckMove(&s.board, move, s.toMove); err != nil {
		return err
	}
	model.Apply(&s.board, move)
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
