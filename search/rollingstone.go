// Package search - RollingStone: geometric step expansion along one axis.
package search

import "math"

// StoneMultiplicationFactor is the per-step growth of the stone's delta.
const StoneMultiplicationFactor = 2

// RollingStone accelerates along a direction that keeps paying off: every
// accepted step doubles the delta, and the walk stops at the first
// efficacy regression or once the value reaches the absolute bound.
//
// Protocol per iteration: the owner applies CurrentValue, measures the new
// efficacy, and asks ShouldContinue(newEfficacy); on true, the efficacy is
// recorded as the one to beat and NextValue advances the walk. The bound
// Max is interpreted as |Max|: the value stays within [-|Max|, +|Max|],
// clamping on the final step.
type RollingStone struct {
	MultiplicationFactor float64
	PrevEfficacy         float64
	CurrentValue         float64
	PrevDelta            float64
	Max                  float64
}

// Init positions the stone: efficacy is the score to beat (typically the
// current best), startValue the first value to try, startDelta the initial
// step, and maxValue the absolute bound on the value.
func (r *RollingStone) Init(efficacy, startValue, startDelta, maxValue float64) {
	r.MultiplicationFactor = StoneMultiplicationFactor
	r.PrevEfficacy = efficacy
	r.CurrentValue = startValue
	r.PrevDelta = startDelta
	r.Max = maxValue
}

// ShouldContinue reports whether the walk goes on: the new efficacy must
// strictly beat the previous one and the value must not have reached the
// bound yet. On acceptance the new efficacy becomes the one to beat.
func (r *RollingStone) ShouldContinue(newEfficacy float64) bool {
	if newEfficacy <= r.PrevEfficacy {
		return false
	}
	if r.PrevDelta == 0 {
		// A stone with no step can never move; stop instead of spinning.
		return false
	}
	if math.Abs(r.CurrentValue) >= math.Abs(r.Max) {
		return false
	}
	r.PrevEfficacy = newEfficacy

	return true
}

// NextValue doubles the step and advances the value, clamping into
// [-|Max|, +|Max|].
func (r *RollingStone) NextValue() {
	r.PrevDelta *= r.MultiplicationFactor
	r.CurrentValue += r.PrevDelta

	bound := math.Abs(r.Max)
	if r.CurrentValue > bound {
		r.CurrentValue = bound
	} else if r.CurrentValue < -bound {
		r.CurrentValue = -bound
	}
}
