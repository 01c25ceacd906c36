package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	gm "github.com/Aprax14/bitchess/chessmg"
	"github.com/Aprax14/bitchess/engine"
)

func main() {
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	qdepthFlag := flag.Int("qdepth", engine.DefaultQuiescenceDepth, "quiescence depth in plies")
	workersFlag := flag.Int("workers", runtime.GOMAXPROCS(0), "parallel root workers; 0 runs the sequential search")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", gm.StartFEN, "FEN to search")
	logLevel := flag.String("loglevel", "info", "log level")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -loglevel:", err)
		os.Exit(2)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}
	board, err := gm.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing fen")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	opts := []engine.Option{
		engine.WithDepth(*depthFlag),
		engine.WithQuiescenceDepth(*qdepthFlag),
		engine.WithLogger(log),
	}
	if *workersFlag > 0 {
		opts = append(opts, engine.WithWorkers(*workersFlag))
	}
	searcher := engine.NewSearcher(opts...)

	fmt.Printf("searchbench: fen=%q depth=%d qdepth=%d workers=%d repeat=%d\n",
		board.FEN(), *depthFlag, *qdepthFlag, *workersFlag, *repeatFlag)

	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		iterStart := time.Now()
		var res engine.Result
		if *workersFlag > 0 {
			res, err = searcher.SearchParallel(context.Background(), board)
		} else {
			res, err = searcher.Search(board)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("search failed")
		}
		iterElapsed := time.Since(iterStart)
		nodes := res.Stats.Nodes + res.Stats.QuiescenceNodes
		fmt.Printf("iteration %d: bestmove %v score %s nodes %d time=%v nps=%.0f\n",
			i+1, res.Move, engine.FormatScore(res.Score), nodes, iterElapsed, float64(nodes)/iterElapsed.Seconds())
	}
	fmt.Printf("total time: %v\n", time.Since(startAll))

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
