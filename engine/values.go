package engine

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"

	gm "github.com/Aprax14/bitchess/chessmg"
)

// Score is a centipawn-like evaluation. At the package API it is always from
// White's point of view; inside the tree search it is relative to the side to move.
type Score = int32

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	Infinity  Score = math.MaxInt32
	MateScore Score = math.MaxInt32 - 1
	DrawScore Score = 0
)

// PieceValue is the material value of each kind. The king value is a sentinel
// that makes any capture by the king look terrible unless the victim is undefended.
var PieceValue = [gm.KindCount]int32{
	gm.Pawn:   1000,
	gm.Knight: 3000,
	gm.Bishop: 3100,
	gm.Rook:   5000,
	gm.Queen:  9000,
	gm.King:   1_000_000_000,
}

// AttackedValue scores a piece of each kind standing on an attacked square.
var AttackedValue = [gm.KindCount]int32{
	gm.Pawn:   100,
	gm.Knight: 300,
	gm.Bishop: 310,
	gm.Rook:   500,
	gm.Queen:  900,
	gm.King:   1000,
}

const (
	// AttackedEmptySquareValue scores each empty square a piece covers.
	AttackedEmptySquareValue int32 = 10
	// CastlingValue is the ordering score of a castle move.
	CastlingValue int32 = 600
)

// CentralMask covers c3-f6.
const CentralMask gm.Bitboard = 0x00003C3C3C3C0000

// SquareValue is the occupancy bonus for the central squares; zero elsewhere.
var SquareValue = [64]int32{
	// c3 d3 e3 f3
	18: 20, 19: 25, 20: 25, 21: 20,
	// c4 d4 e4 f4
	26: 25, 27: 60, 28: 60, 29: 25,
	// c5 d5 e5 f5
	34: 25, 35: 60, 36: 60, 37: 25,
	// c6 d6 e6 f6
	42: 20, 43: 25, 44: 25, 45: 20,
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// IsMate reports whether s is a checkmate score for either side.
func IsMate(s Score) bool { return abs(s) == MateScore }

// sideSign converts between White's point of view and the side to move.
func sideSign(c gm.Color) Score {
	if c == gm.White {
		return 1
	}
	return -1
}

// FormatScore renders s the way the console prints it.
func FormatScore(s Score) string {
	switch {
	case s == MateScore:
		return "mate white"
	case s == -MateScore:
		return "mate black"
	}
	return strconv.FormatInt(int64(s), 10)
}
