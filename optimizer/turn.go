// Package optimizer - TurnOptimizer: binary-search refinement of one
// strafe-yaw turn.
package optimizer

import (
	"github.com/katalvlaran/tasopt/script"
	"github.com/katalvlaran/tasopt/search"
)

// TurnSearchRange bounds how far (degrees) the searcher explores from the
// original yaw of the picked turn.
const TurnSearchRange = 15.0

// TurnOptimizer picks a pair of consecutive strafe-yaw blocks - the value
// being refined and the turn following it - and runs a search.BinSearcher
// over the first block's yaw in a narrow range around its original value.
// The search spans multiple iterations; WantsToContinue claims them until
// the searcher finishes.
type TurnOptimizer struct {
	turnIndex     int
	strafeIndex   int
	origStrafeYaw float64
	searchMax     float64
	searcher      search.BinSearcher
}

// NewTurnOptimizer returns an idle turn optimizer.
func NewTurnOptimizer() *TurnOptimizer {
	return &TurnOptimizer{turnIndex: -1, strafeIndex: -1}
}

// WantsToRun requires at least two strafe-yaw blocks in a row to refine
// between.
func (t *TurnOptimizer) WantsToRun(s *script.Script) bool {
	return len(strafeBlockIndices(s)) >= 2
}

// WantsToContinue claims the next iteration while a search is in flight.
func (t *TurnOptimizer) WantsToContinue() bool {
	return t.searcher.Initialized() && t.searcher.State != search.Finished
}

// IterationsExpected covers the mapping probes plus the refinement tail.
func (t *TurnOptimizer) IterationsExpected() int { return 10 }

// init picks the turn pair and primes the searcher: the search starts at
// the block's original yaw (whose efficacy is the current best) and
// extends TurnSearchRange degrees in a randomly chosen direction.
func (t *TurnOptimizer) init(s *script.Script, opt *Optimizer) bool {
	strafes := strafeBlockIndices(s)
	if len(strafes) < 2 {
		return false
	}
	pick := opt.RandomInt(0, len(strafes)-2)
	t.strafeIndex = strafes[pick]
	t.turnIndex = strafes[pick+1]

	yaw, _ := s.Blocks[t.strafeIndex].Convars.Get(ConvarStrafeYaw)
	t.origStrafeYaw = yaw
	direction := 1.0
	if opt.Random(0, 1) < 0.5 {
		direction = -1.0
	}
	t.searchMax = yaw + direction*TurnSearchRange
	t.searcher.Init(yaw, opt.CurrentBest.Efficacy, t.searchMax, search.DefaultEpsilon)

	return true
}

// Mutate applies the searcher's next proposal to the picked block,
// initializing the search on first use.
func (t *TurnOptimizer) Mutate(s *script.Script, opt *Optimizer) {
	if !t.searcher.Initialized() {
		if !t.init(s, opt) {
			return
		}
	}
	if t.strafeIndex < 0 || t.strafeIndex >= len(s.Blocks) {
		t.Reset()

		return
	}
	s.Blocks[t.strafeIndex].Convars.Set(ConvarStrafeYaw, t.searcher.GetValue())
}

// ReportResult advances the searcher; once it finishes the algorithm goes
// idle so the scheduler can pick a fresh turn next time.
func (t *TurnOptimizer) ReportResult(efficacy float64) {
	if !t.searcher.Initialized() {
		return
	}
	t.searcher.Report(efficacy)
	if t.searcher.State == search.Finished {
		t.Reset()
	}
}

// Reset clears the picked turn and the search state.
func (t *TurnOptimizer) Reset() {
	t.turnIndex = -1
	t.strafeIndex = -1
	t.origStrafeYaw = 0
	t.searchMax = 0
	t.searcher.Reset()
}
