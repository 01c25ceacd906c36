package engine

import gm "github.com/Aprax14/bitchess/chessmg"

// Scenario pairs a Board with the queries the search asks of every node.
type Scenario struct {
	Board gm.Board
}

func NewScenario(b gm.Board) Scenario { return Scenario{Board: b} }

func (s Scenario) WhiteInCheck() bool { return s.Board.Position.InCheck(gm.White) }

func (s Scenario) BlackInCheck() bool { return s.Board.Position.InCheck(gm.Black) }

// SideToMoveInCheck reports whether the player on move is in check.
func (s Scenario) SideToMoveInCheck() bool { return s.Board.InCheck() }

// Next returns the scenario after m.
func (s Scenario) Next(m gm.Move) Scenario { return Scenario{Board: s.Board.Apply(m)} }

// Evaluate is the static evaluation from White's point of view.
func (s Scenario) Evaluate() Score { return Evaluate(s.Board).Value() }

// relativeEval is the static evaluation from the side to move's point of view.
func (s Scenario) relativeEval() Score { return sideSign(s.Board.Turn) * s.Evaluate() }

// terminalScore scores a node without legal moves for the side to move:
// mated is the worst possible score, stalemate is a draw.
func (s Scenario) terminalScore() Score {
	if s.SideToMoveInCheck() {
		return -MateScore
	}
	return DrawScore
}
