// Package optimizer - the mutation strategy contract and scheduling
// helpers.
package optimizer

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tasopt/script"
)

// Algorithm is one pluggable mutation strategy. The driver calls Mutate at
// the start of an iteration, replays the script externally, and hands the
// resulting efficacy back through ReportResult; Reset clears any
// multi-iteration state (in-flight searches, remembered block indices).
//
// WantsToRun gates selection on the script's structure (no point running
// the shot inserter on a script that never fires); WantsToContinue claims
// the next iteration unconditionally while a multi-iteration search is in
// flight. IterationsExpected weights the scheduler's random draw.
type Algorithm interface {
	Mutate(s *script.Script, opt *Optimizer)
	ReportResult(efficacy float64)
	Reset()
	WantsToRun(s *script.Script) bool
	WantsToContinue() bool
	IterationsExpected() int
}

// NewAlgorithm instantiates one built-in strategy.
func NewAlgorithm(id AlgorithmID) (Algorithm, error) {
	switch id {
	case AlgoTurnOptimizer:
		return NewTurnOptimizer(), nil
	case AlgoRNGStrafer:
		return &RNGStrafer{}, nil
	case AlgoRNGBlockMover:
		return &RNGBlockMover{}, nil
	case AlgoRNGShooter:
		return &RNGShooter{}, nil
	case AlgoStrafeAdjuster:
		return NewStrafeAdjuster(), nil
	case AlgoFrameBlockMover:
		return NewFrameBlockMover(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, id)
	}
}

// NewAlgorithms instantiates the configured strategies in listed order.
func NewAlgorithms(settings *Settings) ([]Algorithm, error) {
	if len(settings.Algorithms) == 0 {
		return nil, ErrNoAlgorithms
	}
	out := make([]Algorithm, 0, len(settings.Algorithms))
	for _, id := range settings.Algorithms {
		alg, err := NewAlgorithm(id)
		if err != nil {
			return nil, err
		}
		out = append(out, alg)
	}

	return out, nil
}

// CompoundingProbs turns the per-algorithm iteration weights into a
// normalized prefix-sum over (0, 1]: entry i is the cumulative probability
// of picking any algorithm up to and including i, so a uniform draw maps
// onto an index with a single forward scan.
func CompoundingProbs(algorithms []Algorithm) []float64 {
	total := 0.0
	for _, alg := range algorithms {
		total += float64(alg.IterationsExpected())
	}
	if total == 0 {
		return nil
	}

	out := make([]float64, len(algorithms))
	running := 0.0
	for i, alg := range algorithms {
		running += float64(alg.IterationsExpected())
		out[i] = running / total
	}
	// Guard the top end against accumulated rounding.
	out[len(out)-1] = 1

	return out
}

// SelectIndex maps a uniform draw in [0, 1) onto the compounding
// probabilities: the first entry the draw falls under wins.
func SelectIndex(value float64, compoundingProbs []float64) int {
	for i, p := range compoundingProbs {
		if value < p {
			return i
		}
	}

	return len(compoundingProbs) - 1
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Shared structural probes
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// strafeBlockIndices returns the indices of blocks that set the strafe-yaw
// convar, in frame order.
func strafeBlockIndices(s *script.Script) []int {
	var out []int
	for i := range s.Blocks {
		if s.Blocks[i].HasConvar(ConvarStrafeYaw) {
			out = append(out, i)
		}
	}

	return out
}

// hasShooterBlock reports whether any block fires a weapon: an attack
// toggle switched on or a weapon impulse command.
func hasShooterBlock(s *script.Script) bool {
	for i := range s.Blocks {
		fb := &s.Blocks[i]
		if fb.HasToggleValue("attack", true) {
			return true
		}
		for _, cmd := range fb.Commands {
			if strings.Contains(cmd, "impulse") {
				return true
			}
		}
	}

	return false
}
