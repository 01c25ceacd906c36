package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Aprax14/bitchess/annotate"
	gm "github.com/Aprax14/bitchess/chessmg"
	"github.com/Aprax14/bitchess/engine"
)

func main() {
	depth := flag.Int("depth", engine.DefaultDepth, "default search depth for go")
	qdepth := flag.Int("qdepth", engine.DefaultQuiescenceDepth, "default quiescence depth for go")
	workers := flag.Int("workers", 0, "parallel root workers (0 = GOMAXPROCS)")
	logLevel := flag.String("loglevel", "info", "log level: debug, info, warn, error, disabled")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -loglevel:", err)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	c := newConsole(os.Stdout, logger)
	c.depth, c.qdepth, c.workers = *depth, *qdepth, *workers
	c.run(os.Stdin)
}

// console is the line protocol front end. Replies go to out; diagnostics go
// to the logger.
type console struct {
	board   gm.Board
	out     io.Writer
	log     zerolog.Logger
	depth   int
	qdepth  int
	workers int
	// pv is the last principal variation, reused as a hint while it still
	// starts from the current position.
	pv    []gm.Move
	pvFEN string
}

func newConsole(out io.Writer, log zerolog.Logger) *console {
	return &console{
		board:  gm.NewBoard(),
		out:    out,
		log:    log,
		depth:  engine.DefaultDepth,
		qdepth: engine.DefaultQuiescenceDepth,
	}
}

func (c *console) println(a ...any) { fmt.Fprintln(c.out, a...) }

// run reads commands until quit or end of input.
func (c *console) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			c.println("id name bitchess")
			c.println("id author bitchess authors")
			c.println("uciok")
		case "isready":
			c.println("readyok")
		case "ucinewgame":
			c.board = gm.NewBoard()
			c.pv = nil
		case "quit":
			return
		case "position":
			c.position(tokens[1:])
		case "go":
			c.goSearch(tokens[1:])
		case "moves":
			c.moves()
		case "move":
			c.move(tokens[1:])
		case "eval":
			eval := engine.Evaluate(c.board)
			c.println("info string eval white", eval.White, "black", eval.Black, "value", engine.FormatScore(eval.Value()))
		case "d":
			fmt.Fprint(c.out, c.board.String())
		default:
			c.println("info string Unknown command:", line)
		}
	}
	if err := scanner.Err(); err != nil {
		c.log.Error().Err(err).Msg("reading commands")
	}
}

// position handles "startpos [moves ...]" and "fen <6 fields> [moves ...]".
func (c *console) position(args []string) {
	if len(args) == 0 {
		c.println("info string Malformed position command")
		return
	}
	var (
		board gm.Board
		rest  []string
	)
	switch strings.ToLower(args[0]) {
	case "startpos":
		board, rest = gm.NewBoard(), args[1:]
	case "fen":
		end := len(args)
		for i, tok := range args {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		b, err := gm.ParseFEN(strings.Join(args[1:end], " "))
		if err != nil {
			c.println("info string Invalid fen position:", err)
			return
		}
		board, rest = b, args[end:]
	default:
		c.println("info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, s := range rest[1:] {
			next, err := board.Play(strings.ToLower(s))
			if err != nil {
				c.println("info string Move", s, "not played:", err)
				return
			}
			board = next
		}
	}
	c.board = board
}

// goSearch parses "[depth N] [qdepth M]" and runs a parallel search,
// printing every root result as it completes.
func (c *console) goSearch(args []string) {
	depth, qdepth := c.depth, c.qdepth
	for i := 0; i < len(args); i++ {
		switch tok := strings.ToLower(args[i]); tok {
		case "depth", "qdepth":
			if i+1 >= len(args) {
				c.println("info string Malformed go command option", tok)
				return
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				c.println("info string Malformed go command option; could not convert", tok)
				return
			}
			if tok == "depth" {
				depth = n
			} else {
				qdepth = n
			}
			i++
		default:
			c.println("info string Unknown go subcommand", tok)
		}
	}

	opts := []engine.Option{
		engine.WithDepth(depth),
		engine.WithQuiescenceDepth(qdepth),
		engine.WithLogger(c.log),
	}
	if c.workers > 0 {
		opts = append(opts, engine.WithWorkers(c.workers))
	}
	if c.pvFEN == c.board.FEN() && len(c.pv) > 0 {
		opts = append(opts, engine.WithPrincipalVariation(c.pv))
	}

	results, wait := engine.NewSearcher(opts...).Stream(context.Background(), c.board)
	for r := range results {
		c.println("info currmove", r.Move, "currmovenumber", r.Index+1, "score", engine.FormatScore(r.Score), "pv", engine.PVLine{Moves: r.PV})
	}
	res, err := wait()
	if err != nil {
		c.println("info string Search failed:", err)
		return
	}
	if res.Move.IsZero() {
		c.println("info string No legal moves, score", engine.FormatScore(res.Score))
		c.println("bestmove 0000")
		return
	}

	c.pv, c.pvFEN = res.PV, c.board.FEN()
	c.println("info depth", depth, "score", engine.FormatScore(res.Score), "nodes", res.Stats.Nodes+res.Stats.QuiescenceNodes, "pv", engine.PVLine{Moves: res.PV})
	if san, err := annotate.Line(c.board, res.PV); err == nil {
		c.println("info string pv", san)
	} else {
		c.log.Warn().Err(err).Msg("annotating principal variation")
	}
	res.Stats.Dump(c.out)
	c.println("bestmove", res.Move)
}

func (c *console) moves() {
	for _, sm := range engine.ScoreMoves(c.board, false, gm.NoMove) {
		c.println(sm.Move, sm.Class, sm.Score)
	}
}

// move plays a single user move after full validation.
func (c *console) move(args []string) {
	if len(args) != 1 {
		c.println("info string Usage: move <from><to>[promotion]")
		return
	}
	next, err := c.board.Play(strings.ToLower(args[0]))
	if err != nil {
		c.println("info string Illegal move:", err)
		return
	}
	c.board = next
	switch {
	case c.board.InCheckmate():
		c.println("info string Checkmate")
	case c.board.InStalemate():
		c.println("info string Stalemate")
	case c.board.IsDrawBy50():
		c.println("info string Fifty-move limit reached")
	}
}
