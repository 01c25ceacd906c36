package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func runConsole(t *testing.T, input string) (*console, string) {
	t.Helper()
	var out bytes.Buffer
	c := newConsole(&out, zerolog.Nop())
	c.workers = 2
	c.run(strings.NewReader(input))
	return c, out.String()
}

func TestConsoleHandshake(t *testing.T) {
	_, out := runConsole(t, "uci\nisready\nquit\nisready\n")
	if !strings.Contains(out, "uciok") || strings.Count(out, "readyok") != 1 {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestConsolePositionWithMoves(t *testing.T) {
	c, out := runConsole(t, "position startpos moves e2e4 e7e5 g1f3\n")
	if out != "" {
		t.Fatalf("unexpected output:\n%s", out)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := c.board.FEN(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	c, _ = runConsole(t, "position fen 7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1 moves g6e8\n")
	if !c.board.InCheckmate() {
		t.Fatalf("fen with moves not applied: %s", c.board.FEN())
	}
}

func TestConsoleRejectsBadInput(t *testing.T) {
	c, out := runConsole(t, "position fen nonsense\nposition startpos moves e2e5\nmove e7e5\nfoo\n")
	for _, want := range []string{"Invalid fen position", "not played", "Illegal move", "Unknown command: foo"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if c.board.FEN() != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" {
		t.Fatalf("board changed after rejected input: %s", c.board.FEN())
	}
}

func TestConsoleGoFindsMate(t *testing.T) {
	_, out := runConsole(t, "position fen 7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1\ngo depth 2 qdepth 1\n")
	if !strings.Contains(out, "score mate white") {
		t.Fatalf("no mate score in:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if last != "bestmove g6e8" && last != "bestmove g6g7" {
		t.Fatalf("last line %q", last)
	}
	if !strings.Contains(out, "info string pv 1. Q") {
		t.Fatalf("no SAN line in:\n%s", out)
	}
	if strings.Count(out, "info currmove") == 0 {
		t.Fatalf("no root results streamed:\n%s", out)
	}
}

func TestConsoleGoWithoutMoves(t *testing.T) {
	_, out := runConsole(t, "position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1\ngo depth 2\n")
	if !strings.Contains(out, "bestmove 0000") {
		t.Fatalf("stalemate output:\n%s", out)
	}
}

func TestConsoleMoveEvalAndDisplay(t *testing.T) {
	c, out := runConsole(t, "move e2e4\neval\nd\nmoves\n")
	if c.board.FEN() != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1" {
		t.Fatalf("move not played: %s", c.board.FEN())
	}
	if !strings.Contains(out, "info string eval white") {
		t.Fatalf("no eval line:\n%s", out)
	}
	if !strings.Contains(out, c.board.FEN()) {
		t.Fatalf("display lacks fen:\n%s", out)
	}
	if n := strings.Count(out, "quiet"); n != 20 {
		t.Fatalf("listed %d quiet moves want 20:\n%s", n, out)
	}
}
