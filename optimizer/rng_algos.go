// Package optimizer - the single-shot RNG mutators: strafer, block mover,
// shooter. Each proposes one random edit per iteration and carries no
// state between iterations.
package optimizer

import (
	"github.com/katalvlaran/tasopt/script"
)

// Mutation magnitudes for the RNG strategies.
const (
	// MaxBlockMoveDelta bounds a random single-block frame shift.
	MaxBlockMoveDelta = 9

	// ShotTurnFrames is the width of the view-turn window AddShot places.
	ShotTurnFrames = 6

	// shotPitchRange bounds the random shot pitch (degrees either side).
	shotPitchRange = 89.0
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// RNGStrafer
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// RNGStrafer perturbs a random existing strafe-yaw convar, or inserts a
// fresh strafe block at a random frame within the window. The perturbation
// magnitude comes from the best run's strafe bounds for the picked block,
// so it is just large enough to change the trajectory.
type RNGStrafer struct{}

// WantsToRun always holds: the insertion path works on any script.
func (r *RNGStrafer) WantsToRun(*script.Script) bool { return true }

// WantsToContinue never holds: every mutation is independent.
func (r *RNGStrafer) WantsToContinue() bool { return false }

// IterationsExpected weights the scheduler draw.
func (r *RNGStrafer) IterationsExpected() int { return 1 }

// Mutate flips between perturbing an existing strafe block and inserting a
// new one at a uniformly drawn frame.
func (r *RNGStrafer) Mutate(s *script.Script, opt *Optimizer) {
	strafes := strafeBlockIndices(s)

	if len(strafes) > 0 && opt.Random(0, 1) < 0.5 {
		// Perturb an existing strafe value within its observed bounds.
		idx := strafes[opt.RandomInt(0, len(strafes)-1)]
		yaw, _ := s.Blocks[idx].Convars.Get(ConvarStrafeYaw)
		min, max := opt.CurrentBest.StrafeBounds(idx)
		s.Blocks[idx].Convars.Set(ConvarStrafeYaw, yaw+opt.Random(min, max))

		return
	}

	// Insert a fresh strafe block somewhere in the window.
	frame := opt.RandomInt(0, int(opt.LastFrame()))
	s.AddConvar(ConvarStrafeYaw, opt.Random(0, 360), frame)
}

// ReportResult is a no-op: the strategy keeps no cross-iteration state.
func (r *RNGStrafer) ReportResult(float64) {}

// Reset is a no-op.
func (r *RNGStrafer) Reset() {}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// RNGBlockMover
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// RNGBlockMover shifts one random block's frame by a bounded random delta
// with ShiftSingleBlock semantics: the move clamps against both neighbors
// and can never collide.
type RNGBlockMover struct{}

// WantsToRun requires at least two blocks - a single block has no relative
// timing to explore.
func (r *RNGBlockMover) WantsToRun(s *script.Script) bool { return len(s.Blocks) >= 2 }

// WantsToContinue never holds.
func (r *RNGBlockMover) WantsToContinue() bool { return false }

// IterationsExpected weights the scheduler draw.
func (r *RNGBlockMover) IterationsExpected() int { return 1 }

// Mutate draws a block and a non-zero delta in ±MaxBlockMoveDelta.
func (r *RNGBlockMover) Mutate(s *script.Script, opt *Optimizer) {
	if len(s.Blocks) == 0 {
		return
	}
	idx := opt.RandomizeIndex()
	delta := opt.RandomInt(-MaxBlockMoveDelta, MaxBlockMoveDelta)
	if delta == 0 {
		delta = 1
	}
	s.ShiftSingleBlock(idx, delta)
}

// ReportResult is a no-op.
func (r *RNGBlockMover) ReportResult(float64) {}

// Reset is a no-op.
func (r *RNGBlockMover) Reset() {}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// RNGShooter
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// RNGShooter inserts a scripted shot (view-override pair via AddShot) at a
// random frame with random pitch and yaw. It only applies to scripts that
// actually fire a weapon somewhere; aiming a script that never attacks is
// wasted work.
type RNGShooter struct{}

// WantsToRun requires a weapon-firing block in the script.
func (r *RNGShooter) WantsToRun(s *script.Script) bool { return hasShooterBlock(s) }

// WantsToContinue never holds.
func (r *RNGShooter) WantsToContinue() bool { return false }

// IterationsExpected weights the scheduler draw.
func (r *RNGShooter) IterationsExpected() int { return 1 }

// Mutate places the shot with uniformly drawn view angles.
func (r *RNGShooter) Mutate(s *script.Script, opt *Optimizer) {
	if !hasShooterBlock(s) {
		return
	}
	frame := opt.RandomInt(0, int(opt.LastFrame()))
	pitch := opt.Random(-shotPitchRange, shotPitchRange)
	yaw := opt.Random(0, 360)
	s.AddShot(pitch, yaw, frame, ShotTurnFrames)
}

// ReportResult is a no-op.
func (r *RNGShooter) ReportResult(float64) {}

// Reset is a no-op.
func (r *RNGShooter) Reset() {}
