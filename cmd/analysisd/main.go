package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	maxDepth := flag.Int("depth", 6, "largest search depth a client may request")
	maxQDepth := flag.Int("qdepth", 6, "largest quiescence depth a client may request")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "parallel root workers per search")
	logLevel := flag.String("loglevel", "info", "log level: debug, info, warn, error, disabled")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -loglevel:", err)
		os.Exit(2)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *maxDepth < 1 || *maxQDepth < 0 || *workers < 1 {
		log.Fatal().Int("depth", *maxDepth).Int("qdepth", *maxQDepth).Int("workers", *workers).Msg("invalid limits")
	}

	app := NewApplication(Config{
		MaxDepth:  *maxDepth,
		MaxQDepth: *maxQDepth,
		Workers:   *workers,
		AccessLog: os.Stdout,
	}, log)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Str("addr", *addr).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
