package engine

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	gm "github.com/Aprax14/bitchess/chessmg"
)

const (
	DefaultDepth           = 4
	DefaultQuiescenceDepth = 4
)

var ErrInvalidOptions = errors.New("invalid search options")

// Options configures a Searcher.
type Options struct {
	// Depth is the full-width search depth in plies, root move included.
	Depth int
	// QuiescenceDepth caps the critical-move extension beyond Depth.
	QuiescenceDepth int
	// Workers bounds the parallel root fan-out.
	Workers int
	// PrincipalVariation is tried first along the matching line.
	PrincipalVariation []gm.Move
	// Alpha and Beta are the initial root window from White's point of view.
	Alpha, Beta Score
	Logger      zerolog.Logger
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Depth:           DefaultDepth,
		QuiescenceDepth: DefaultQuiescenceDepth,
		Workers:         runtime.GOMAXPROCS(0),
		Alpha:           -Infinity,
		Beta:            Infinity,
		Logger:          zerolog.Nop(),
	}
}

func WithDepth(depth int) Option {
	return func(o *Options) { o.Depth = depth }
}

func WithQuiescenceDepth(depth int) Option {
	return func(o *Options) { o.QuiescenceDepth = depth }
}

func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithPrincipalVariation seeds move ordering with a previously found line.
func WithPrincipalVariation(pv []gm.Move) Option {
	return func(o *Options) { o.PrincipalVariation = pv }
}

// WithWindow narrows the root window. Scores are from White's point of view.
func WithWindow(alpha, beta Score) Option {
	return func(o *Options) { o.Alpha, o.Beta = alpha, beta }
}

func (o Options) validate() error {
	if o.Depth < 1 {
		return fmt.Errorf("%w: depth %d, want at least 1", ErrInvalidOptions, o.Depth)
	}
	if o.QuiescenceDepth < 0 {
		return fmt.Errorf("%w: quiescence depth %d, want 0 or more", ErrInvalidOptions, o.QuiescenceDepth)
	}
	if o.Workers < 1 {
		return fmt.Errorf("%w: %d workers, want at least 1", ErrInvalidOptions, o.Workers)
	}
	if o.Alpha >= o.Beta {
		return fmt.Errorf("%w: empty window [%d, %d]", ErrInvalidOptions, o.Alpha, o.Beta)
	}
	return nil
}

// rootWindow converts the White-relative window to the side to move.
func (o Options) rootWindow(turn gm.Color) (alpha, beta Score) {
	if turn == gm.White {
		return o.Alpha, o.Beta
	}
	return -o.Beta, -o.Alpha
}
