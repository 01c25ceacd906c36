package engine

import (
	"time"

	"github.com/rs/zerolog"

	gm "github.com/Aprax14/bitchess/chessmg"
)

// Result is the outcome of a search. Score is from White's point of view.
type Result struct {
	Move  gm.Move
	Score Score
	PV    []gm.Move
	Stats Stats
}

// Searcher runs fixed-depth searches. It holds no per-search state and may be
// used from several goroutines.
type Searcher struct {
	opts Options
	log  zerolog.Logger
}

// NewSearcher applies opts over the defaults: depth 4, quiescence depth 4,
// one worker per GOMAXPROCS and a discarding logger.
func NewSearcher(opts ...Option) *Searcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Searcher{opts: o, log: o.Logger.With().Str("component", "search").Logger()}
}

// Options returns the effective configuration.
func (s *Searcher) Options() Options { return s.opts }

// Search runs a single-threaded alpha-beta search from b.
func (s *Searcher) Search(b gm.Board) (Result, error) {
	if err := s.opts.validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	stats := &cutStatistics{}
	w := s.newWorker(stats)

	alpha, beta := s.opts.rootWindow(b.Turn)
	var pv PVLine
	score := w.alphaBeta(NewScenario(b), s.opts.Depth, alpha, beta, &pv, s.opts.PrincipalVariation)

	res := Result{
		Move:  pv.GetPVMove(),
		Score: sideSign(b.Turn) * score,
		PV:    pv.Clone().Moves,
		Stats: stats.snapshot(),
	}
	s.log.Debug().
		Str("fen", b.FEN()).
		Str("move", res.Move.String()).
		Int32("score", res.Score).
		Dur("took", time.Since(start)).
		Object("stats", res.Stats).
		Msg("search finished")
	return res, nil
}

// worker carries the per-branch search configuration. Workers never share
// boards; only the counters are shared.
type worker struct {
	qdepth int
	stats  *cutStatistics
}

func (s *Searcher) newWorker(stats *cutStatistics) *worker {
	return &worker{qdepth: s.opts.QuiescenceDepth, stats: stats}
}

// alphaBeta is a fail-soft negamax search; scores are relative to the side to move.
func (w *worker) alphaBeta(sc Scenario, depth int, alpha, beta Score, pvLine *PVLine, hint []gm.Move) Score {
	w.stats.nodes.Add(1)

	if depth <= 0 {
		return w.quiescence(sc, 0, alpha, beta, pvLine)
	}

	moves, anyLegal := scoreMoves(sc.Board, false, firstHint(hint))
	if !anyLegal {
		return sc.terminalScore()
	}

	bestScore := -Infinity
	var childPVLine PVLine
	for _, sm := range moves {
		childPVLine.Clear()
		score := -w.alphaBeta(Scenario{Board: sm.Next}, depth-1, -beta, -alpha, &childPVLine, hintAfter(hint, sm.Move))

		if score > bestScore {
			bestScore = score
			pvLine.Update(sm.Move, childPVLine)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			w.stats.betaCutoffs.Add(1)
			break
		}
	}
	return bestScore
}

// quiescence follows only critical moves until none remain or qply reaches
// the configured cap. A side not in check may stand pat on the static score.
func (w *worker) quiescence(sc Scenario, qply int, alpha, beta Score, pvLine *PVLine) Score {
	w.stats.quiescenceNodes.Add(1)

	if qply >= w.qdepth {
		if !sc.Board.HasLegalMoves() {
			return sc.terminalScore()
		}
		return sc.relativeEval()
	}

	moves, anyLegal := scoreMoves(sc.Board, true, gm.NoMove)
	if !anyLegal {
		return sc.terminalScore()
	}

	standpat := sc.relativeEval()
	inCheck := sc.SideToMoveInCheck()

	bestScore := -Infinity
	if !inCheck {
		if standpat >= beta {
			w.stats.qStandPatCutoffs.Add(1)
			return standpat
		}
		bestScore = standpat
		if standpat > alpha {
			alpha = standpat
		}
	}

	var childPVLine PVLine
	for _, sm := range moves {
		childPVLine.Clear()
		score := -w.quiescence(Scenario{Board: sm.Next}, qply+1, -beta, -alpha, &childPVLine)

		if score > bestScore {
			bestScore = score
			pvLine.Update(sm.Move, childPVLine)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			w.stats.qBetaCutoffs.Add(1)
			break
		}
	}
	return bestScore
}
