package engine

import (
	"testing"

	gm "github.com/Aprax14/bitchess/chessmg"
)

func TestMvvLva(t *testing.T) {
	tests := []struct {
		victim, attacker gm.Kind
		defended         bool
		want             int64
	}{
		{gm.Queen, gm.Pawn, true, 8000},
		{gm.Queen, gm.Pawn, false, 8000},
		{gm.Knight, gm.Knight, true, 0},
		{gm.Pawn, gm.Queen, true, -12000},
		{gm.Pawn, gm.Queen, false, 1000},
		{gm.Knight, gm.Bishop, true, -150},
	}
	for _, tt := range tests {
		if got := mvvLva(tt.victim, tt.attacker, tt.defended); got != tt.want {
			t.Errorf("mvvLva(%v, %v, %v) = %d want %d", tt.victim, tt.attacker, tt.defended, got, tt.want)
		}
	}
}

func TestOrderedMovesAreLegalAndComplete(t *testing.T) {
	for _, fen := range []string{gm.StartFEN, italianFEN, tacticalFEN, endgameFEN, foolsMateFEN} {
		b := gm.MustParseFEN(fen)
		ordered := OrderedMoves(b, false, gm.NoMove)
		legal := b.LegalMoves()
		if len(ordered) != len(legal) {
			t.Fatalf("%q: %d ordered moves, %d legal", fen, len(ordered), len(legal))
		}
		seen := map[gm.Move]bool{}
		for _, m := range ordered {
			if seen[m] || !b.IsLegal(m) {
				t.Fatalf("%q: duplicate or illegal %s", fen, m)
			}
			seen[m] = true
		}
	}
}

func TestScoreMovesClassesAndOrder(t *testing.T) {
	for _, fen := range []string{italianFEN, tacticalFEN, hangingPawnFEN, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"} {
		b := gm.MustParseFEN(fen)
		scored := ScoreMoves(b, false, gm.NoMove)
		for i, sm := range scored {
			if i > 0 && scored[i-1].key() < sm.key() {
				t.Fatalf("%q: %s sorted after a weaker move", fen, sm.Move)
			}
			var want MoveClass
			switch {
			case sm.Move.Kind == gm.MovePromote:
				want = ClassPromotion
			case b.GivesCheck(sm.Move):
				want = ClassCheck
			case b.IsCapture(sm.Move):
				want = ClassCapture
			default:
				want = ClassQuiet
			}
			if sm.Class != want {
				t.Fatalf("%q: %s has class %s want %s", fen, sm.Move, sm.Class, want)
			}
			if sm.Next != b.Apply(sm.Move) {
				t.Fatalf("%q: stored board for %s differs", fen, sm.Move)
			}
		}
	}
}

func TestPromotionsPreferTheQueen(t *testing.T) {
	b := gm.MustParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	moves := OrderedMoves(b, false, gm.NoMove)
	want := []gm.Kind{gm.Queen, gm.Rook, gm.Bishop, gm.Knight}
	for i, k := range want {
		if moves[i].Kind != gm.MovePromote || moves[i].Promotion != k {
			t.Fatalf("move %d is %s, want promotion to %v", i, moves[i], k)
		}
	}
}

func TestEveryMoveIsAnEvasionInCheck(t *testing.T) {
	b := gm.MustParseFEN("4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	if !b.InCheck() {
		t.Fatalf("fixture should be check")
	}
	all := ScoreMoves(b, false, gm.NoMove)
	critical := ScoreMoves(b, true, gm.NoMove)
	if len(all) == 0 || len(all) != len(critical) {
		t.Fatalf("%d evasions, %d critical", len(all), len(critical))
	}
	for _, sm := range all {
		if sm.Class != ClassEvasion {
			t.Fatalf("%s has class %s in check", sm.Move, sm.Class)
		}
	}
}

func TestOnlyCriticalDropsQuietMoves(t *testing.T) {
	b := gm.MustParseFEN(tacticalFEN)
	var want []gm.Move
	for _, sm := range ScoreMoves(b, false, gm.NoMove) {
		if sm.Class != ClassQuiet {
			want = append(want, sm.Move)
		}
	}
	got := OrderedMoves(b, true, gm.NoMove)
	if len(got) == 0 || len(got) != len(want) {
		t.Fatalf("got %d critical moves want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("critical move %d is %s want %s", i, got[i], want[i])
		}
	}

	if n := len(OrderedMoves(gm.NewBoard(), true, gm.NoMove)); n != 0 {
		t.Fatalf("start position has %d critical moves", n)
	}
}

func TestPVHintComesFirst(t *testing.T) {
	b := gm.NewBoard()
	hint := mustMove(t, b, "a2a3")
	scored := ScoreMoves(b, false, hint)
	if scored[0].Move != hint || scored[0].Class != ClassPV {
		t.Fatalf("first move %s (%s), want hint %s", scored[0].Move, scored[0].Class, hint)
	}
	// A quiet hint is not promoted into a critical-only list.
	if n := len(OrderedMoves(b, true, hint)); n != 0 {
		t.Fatalf("quiet hint leaked into %d critical moves", n)
	}
	// An illegal hint is ignored.
	bogus := gm.NewStandard(gm.NewPiece(gm.White, gm.Queen), gm.D1, gm.NewSquare(7, 4))
	if got := OrderedMoves(b, false, bogus); len(got) != 20 || got[0] == bogus {
		t.Fatalf("illegal hint changed the move list")
	}
}

func TestCastleScore(t *testing.T) {
	b := gm.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	found := 0
	for _, sm := range ScoreMoves(b, false, gm.NoMove) {
		if sm.Move.Kind == gm.MoveCastle {
			found++
			if sm.Score != int64(CastlingValue) {
				t.Fatalf("%s scored %d want %d", sm.Move, sm.Score, CastlingValue)
			}
		}
	}
	if found != 2 {
		t.Fatalf("found %d castle moves", found)
	}
}
