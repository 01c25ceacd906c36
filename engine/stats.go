package engine

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Stats is a snapshot of search counters.
type Stats struct {
	Nodes            uint64
	QuiescenceNodes  uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	RootMovesSkipped uint64
}

// cutStatistics is shared by every worker of one search.
type cutStatistics struct {
	nodes            atomic.Uint64
	quiescenceNodes  atomic.Uint64
	betaCutoffs      atomic.Uint64
	qStandPatCutoffs atomic.Uint64
	qBetaCutoffs     atomic.Uint64
	rootMovesSkipped atomic.Uint64
}

func (c *cutStatistics) snapshot() Stats {
	return Stats{
		Nodes:            c.nodes.Load(),
		QuiescenceNodes:  c.quiescenceNodes.Load(),
		BetaCutoffs:      c.betaCutoffs.Load(),
		QStandPatCutoffs: c.qStandPatCutoffs.Load(),
		QBetaCutoffs:     c.qBetaCutoffs.Load(),
		RootMovesSkipped: c.rootMovesSkipped.Load(),
	}
}

// MarshalZerologObject lets Stats be logged with Object("stats", s).
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("qnodes", s.QuiescenceNodes).
		Uint64("beta_cutoffs", s.BetaCutoffs).
		Uint64("qstandpat_cutoffs", s.QStandPatCutoffs).
		Uint64("qbeta_cutoffs", s.QBetaCutoffs).
		Uint64("root_skipped", s.RootMovesSkipped)
}

// Dump prints the counters as console info lines.
func (s Stats) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", s.Nodes)
	fmt.Fprintf(w, "info string   Quiescence nodes: %d\n", s.QuiescenceNodes)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", s.BetaCutoffs)
	fmt.Fprintf(w, "info string   QStandPat cutoffs: %d\n", s.QStandPatCutoffs)
	fmt.Fprintf(w, "info string   QBeta cutoffs: %d\n", s.QBetaCutoffs)
	fmt.Fprintf(w, "info string   Root moves skipped: %d\n", s.RootMovesSkipped)
}
