package model

import (
	"fmt"
	"io"
	"strings"
)

const fileHeader = "\ta\tb\tc\td\te\tf\tg\th\n\n"

// Render writes the board with files across the top and bottom and ranks 8
// down to 1 on the left. Empty squares are blank.
func Render(w io.Writer, board *Board, style GlyphStyle) error {
	var sb strings.Builder
	sb.WriteString(fileHeader)
	for row := 7; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d.\t", row+1)
		for col := 0; col < 8; col++ {
			sb.WriteString(board[row][col].Glyph(style))
			sb.WriteByte('\t')
		}
		sb.WriteString("\n\n\n")
	}
	sb.WriteString(fileHeader)

	_, err := io.WriteString(w, sb.String())
	return err
}
