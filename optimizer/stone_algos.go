// Package optimizer - the rolling-stone mutators: StrafeAdjuster walks in
// strafe-yaw space, FrameBlockMover in frame space. Both pick a random
// block, apply an initial random step, and - as long as the step keeps
// improving the run - double it and keep going through search.RollingStone.
package optimizer

import (
	"math"

	"github.com/katalvlaran/tasopt/script"
	"github.com/katalvlaran/tasopt/search"
)

// Rolling-stone bounds.
const (
	// StrafeYawBound is the absolute value bound of the yaw walk.
	StrafeYawBound = 360.0

	// adjusterIterations weights the scheduler draw for both stone
	// strategies: a productive walk spans several iterations.
	adjusterIterations = 5
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// StrafeAdjuster
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// StrafeAdjuster nudges one block's strafe yaw by a random amount drawn
// from the best run's strafe bounds, then rides a RollingStone along that
// direction while the efficacy keeps improving.
type StrafeAdjuster struct {
	// currentBlockIndex is non-negative only while a stone walk is in
	// flight over that block.
	currentBlockIndex int
	stone             search.RollingStone
	walking           bool
}

// NewStrafeAdjuster returns an idle adjuster.
func NewStrafeAdjuster() *StrafeAdjuster {
	return &StrafeAdjuster{currentBlockIndex: -1}
}

// WantsToRun requires at least one strafe-yaw block to adjust.
func (a *StrafeAdjuster) WantsToRun(s *script.Script) bool {
	return len(strafeBlockIndices(s)) > 0
}

// WantsToContinue claims the next iteration while the stone is rolling.
func (a *StrafeAdjuster) WantsToContinue() bool { return a.walking }

// IterationsExpected weights the scheduler draw.
func (a *StrafeAdjuster) IterationsExpected() int { return adjusterIterations }

// Mutate either starts a fresh walk (random strafe block, random initial
// step within the observed bounds) or applies the stone's next value to
// the remembered block.
func (a *StrafeAdjuster) Mutate(s *script.Script, opt *Optimizer) {
	if a.walking {
		if a.currentBlockIndex < 0 || a.currentBlockIndex >= len(s.Blocks) {
			a.Reset()

			return
		}
		s.Blocks[a.currentBlockIndex].Convars.Set(ConvarStrafeYaw, a.stone.CurrentValue)

		return
	}

	strafes := strafeBlockIndices(s)
	if len(strafes) == 0 {
		return
	}
	idx := strafes[opt.RandomInt(0, len(strafes)-1)]
	yaw, _ := s.Blocks[idx].Convars.Get(ConvarStrafeYaw)

	min, max := opt.CurrentBest.StrafeBounds(idx)
	delta := opt.Random(min, max)
	if delta == 0 {
		delta = 1
	}

	a.currentBlockIndex = idx
	a.stone.Init(opt.CurrentBest.Efficacy, yaw+delta, delta, StrafeYawBound)
	a.walking = true
	s.Blocks[idx].Convars.Set(ConvarStrafeYaw, a.stone.CurrentValue)
}

// ReportResult rides or stops the stone: an improving iteration doubles
// the step for the next one; the first regression (or the bound) ends the
// walk.
func (a *StrafeAdjuster) ReportResult(efficacy float64) {
	if !a.walking {
		return
	}
	if a.stone.ShouldContinue(efficacy) {
		a.stone.NextValue()

		return
	}
	a.Reset()
}

// Reset abandons the walk.
func (a *StrafeAdjuster) Reset() {
	a.currentBlockIndex = -1
	a.stone = search.RollingStone{}
	a.walking = false
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// FrameBlockMover
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// FrameBlockMover is the same walk in frame space: it shifts one block's
// frame and keeps shifting further in the same direction while that keeps
// paying off. Moves use ShiftSingleBlock semantics, so a walk that would
// collide with a neighbor simply ends there.
type FrameBlockMover struct {
	currentBlockIndex int
	stone             search.RollingStone
	walking           bool
}

// NewFrameBlockMover returns an idle mover.
func NewFrameBlockMover() *FrameBlockMover {
	return &FrameBlockMover{currentBlockIndex: -1}
}

// WantsToRun requires at least two blocks.
func (m *FrameBlockMover) WantsToRun(s *script.Script) bool { return len(s.Blocks) >= 2 }

// WantsToContinue claims the next iteration while the stone is rolling.
func (m *FrameBlockMover) WantsToContinue() bool { return m.walking }

// IterationsExpected weights the scheduler draw.
func (m *FrameBlockMover) IterationsExpected() int { return adjusterIterations }

// Mutate starts or continues the walk. The stone tracks the block's target
// frame as a float; each application rounds it and moves the block there,
// ending the walk when the clamped move goes nowhere.
func (m *FrameBlockMover) Mutate(s *script.Script, opt *Optimizer) {
	if m.walking {
		if !m.applyStone(s) {
			m.Reset()
		}

		return
	}

	if len(s.Blocks) < 2 {
		return
	}
	idx := opt.RandomizeIndex()
	delta := opt.RandomInt(-MaxBlockMoveDelta, MaxBlockMoveDelta)
	if delta == 0 {
		delta = 1
	}

	m.currentBlockIndex = idx
	start := float64(s.Blocks[idx].Frame + delta)
	bound := float64(opt.LastFrame())
	m.stone.Init(opt.CurrentBest.Efficacy, start, float64(delta), bound)
	m.walking = true
	if !m.applyStone(s) {
		m.Reset()
	}
}

// applyStone moves the tracked block to the stone's current value; false
// means the move clamped to nothing and the walk is over.
func (m *FrameBlockMover) applyStone(s *script.Script) bool {
	if m.currentBlockIndex < 0 || m.currentBlockIndex >= len(s.Blocks) {
		return false
	}
	target := int(math.Round(m.stone.CurrentValue))

	return s.ShiftSingleBlock(m.currentBlockIndex, target-s.Blocks[m.currentBlockIndex].Frame)
}

// ReportResult rides or stops the stone.
func (m *FrameBlockMover) ReportResult(efficacy float64) {
	if !m.walking {
		return
	}
	if m.stone.ShouldContinue(efficacy) {
		m.stone.NextValue()

		return
	}
	m.Reset()
}

// Reset abandons the walk.
func (m *FrameBlockMover) Reset() {
	m.currentBlockIndex = -1
	m.stone = search.RollingStone{}
	m.walking = false
}
