package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	gm "github.com/Aprax14/bitchess/chessmg"
	"github.com/Aprax14/bitchess/perftcheck"
)

func main() {
	fen := flag.String("fen", gm.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check every node against dragontoothmg and report the first difference")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := gm.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		if d := perftcheck.Check(board, *depth); d != nil {
			fmt.Println("MISMATCH", d)
			os.Exit(1)
		}
		fmt.Printf("ok: %d nodes at depth %d agree with dragontoothmg\n", gm.Perft(board, *depth), *depth)
		return
	}

	// Divide output, with the reference count next to any differing move.
	if *divide {
		div := gm.PerftDivide(board, *depth)
		ref := perftcheck.Divide(board.FEN(), *depth)
		type kv struct {
			m string
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m.String(), n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m < arr[j].m })
		for _, x := range arr {
			if want, ok := ref[x.m]; !ok || want != x.n {
				fmt.Printf("%s: %d (dragontoothmg %d)\n", x.m, x.n, want)
				continue
			}
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		for m, n := range ref {
			if _, ok := div[lookup(board, m)]; !ok {
				fmt.Printf("%s: missing (dragontoothmg %d)\n", m, n)
			}
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += gm.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// lookup maps a reference move string to a chessmg move, or NoMove.
func lookup(b gm.Board, s string) gm.Move {
	m, err := b.ParseMove(s)
	if err != nil {
		return gm.NoMove
	}
	return m
}
