// Package render draws board diagrams as SVG.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	gm "github.com/Aprax14/bitchess/chessmg"
)

const (
	DefaultSquareSize = 48

	lightFill     = "fill:#f0d9b5"
	darkFill      = "fill:#b58863"
	highlightFill = "fill:#cdd26a"
)

var glyphs = [2][gm.KindCount]string{
	gm.White: {"♙", "♘", "♗", "♖", "♕", "♔"},
	gm.Black: {"♟", "♞", "♝", "♜", "♛", "♚"},
}

// Options controls the diagram.
type Options struct {
	SquareSize int
	// Flip draws the board from Black's side.
	Flip bool
	// Highlight marks the origin and destination of a move.
	Highlight gm.Move
}

// Board writes an SVG diagram of b to w.
func Board(w io.Writer, b gm.Board, opts Options) {
	size := opts.SquareSize
	if size <= 0 {
		size = DefaultSquareSize
	}
	canvas := svg.New(w)
	canvas.Start(8*size, 8*size)

	marked := gm.Empty
	if !opts.Highlight.IsZero() {
		marked = opts.Highlight.From.Bitboard() | opts.Highlight.To.Bitboard()
	}
	for sq := gm.Square(0); sq < gm.NoSquare; sq++ {
		x, y := origin(sq, size, opts.Flip)
		fill := darkFill
		if (sq.File()+sq.Rank())%2 == 1 {
			fill = lightFill
		}
		if marked.Has(sq) {
			fill = highlightFill
		}
		canvas.Rect(x, y, size, size, fill)
	}

	canvas.Gstyle(fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central", size*4/5))
	for sq := gm.Square(0); sq < gm.NoSquare; sq++ {
		pc, ok := b.PieceAt(sq)
		if !ok {
			continue
		}
		x, y := origin(sq, size, opts.Flip)
		canvas.Text(x+size/2, y+size/2, glyphs[pc.Color][pc.Kind])
	}
	canvas.Gend()
	canvas.End()
}

// origin is the top-left corner of sq on the canvas.
func origin(sq gm.Square, size int, flip bool) (x, y int) {
	file, rank := sq.File(), 7-sq.Rank()
	if flip {
		file, rank = 7-file, 7-rank
	}
	return file * size, rank * size
}
