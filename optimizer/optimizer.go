// Package optimizer - the session driver.
package optimizer

import (
	"math/rand"

	"github.com/katalvlaran/tasopt/playback"
	"github.com/katalvlaran/tasopt/script"
)

// State is the driver's answer to every simulated frame: keep feeding the
// current iteration, start replaying the (freshly mutated) script from
// frame zero, or stop the session entirely.
type State int

const (
	// ContinueIteration - the current run is still in flight.
	ContinueIteration State = iota
	// NewIteration - the run was scored; replay the mutated script.
	NewIteration
	// Stop - progress exhausted; the session is over.
	Stop
)

// defaultRNGSeed is the fixed seed Init applies, so a session is
// reproducible without an explicit Seed call.
const defaultRNGSeed = 1

// maxSelectAttempts bounds the weighted-draw retry loop before falling
// back to a deterministic scan of willing algorithms.
const maxSelectAttempts = 16

// Optimizer owns one search session: the working and best runs, the
// algorithm ensemble, the RNG, and the progress bookkeeping. One session
// is single-threaded; all randomness flows through its RNG.
type Optimizer struct {
	Algorithms       []Algorithm
	CurrentBest      Run
	CurrentRun       Run
	Settings         Settings
	CompoundingProbs []float64

	rng                       *rand.Rand
	currentAlgorithm          int
	lastFrame                 uint32
	iteration                 uint32
	iterationsWithoutProgress uint32
	conditions                Conditions
	initialized               bool
}

// Init prepares a session from the full playback: the optimizer extracts
// the relevant tail itself by time-shifting at the playback's cursor, then
// derives the optimization window (a fixed Frames count, or the script's
// last block plus EndOffset). The baseline becomes both the working run
// and the current best; the RNG is seeded deterministically.
//
// Configuration errors (invalid goal, empty algorithm list, bad window,
// empty baseline) fail Init; the caller must not drive iterations after a
// failed Init.
func (o *Optimizer) Init(info *playback.Info, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if info == nil || info.NumBlocks() == 0 {
		return ErrEmptyBaseline
	}

	shifted := info.TimeShifted(-1)

	var last int
	if settings.Frames > 0 {
		last = int(settings.Frames)
	} else {
		last = shifted.LastFrame() + int(settings.EndOffset)
	}
	if last <= 0 {
		return ErrBadFrameWindow
	}

	algorithms, err := NewAlgorithms(settings)
	if err != nil {
		return err
	}

	o.Settings = *settings
	o.Algorithms = algorithms
	o.CompoundingProbs = CompoundingProbs(algorithms)
	o.CurrentBest = NewRun(shifted)
	o.CurrentRun = o.CurrentBest.Clone()
	o.lastFrame = uint32(last)
	o.currentAlgorithm = -1
	o.iteration = 0
	o.iterationsWithoutProgress = 0
	o.conditions.Reset()
	o.rng = rand.New(rand.NewSource(defaultRNGSeed))
	o.initialized = true

	return nil
}

// Seed re-seeds the session RNG; call between Init and the first frame to
// vary the search deterministically.
func (o *Optimizer) Seed(value uint32) {
	o.rng = rand.New(rand.NewSource(int64(value)))
}

// Random returns a uniform double in [min, max).
func (o *Optimizer) Random(min, max float64) float64 {
	return min + o.rng.Float64()*(max-min)
}

// RandomInt returns a uniform int in [min, max] (inclusive).
func (o *Optimizer) RandomInt(min, max int) int {
	if max <= min {
		return min
	}

	return min + o.rng.Intn(max-min+1)
}

// RandomizeIndex returns a uniform block index into the working script.
func (o *Optimizer) RandomizeIndex() int {
	n := len(o.CurrentRun.Playback.Script.Blocks)
	if n == 0 {
		return 0
	}

	return o.rng.Intn(n)
}

// LastFrame reports the optimization window's final frame.
func (o *Optimizer) LastFrame() uint32 { return o.lastFrame }

// Iteration reports how many iterations have been scored.
func (o *Optimizer) Iteration() uint32 { return o.iteration }

// CurrentFrameBlock returns the working script's block sitting exactly on
// the frame about to be simulated, or nil.
func (o *Optimizer) CurrentFrameBlock() *script.FrameBlock {
	return o.CurrentRun.Playback.Script.BlockAtFrame(len(o.CurrentRun.Frames))
}

// ResetIteration discards the current run's telemetry (the working script
// is kept) so the caller can replay from frame zero.
func (o *Optimizer) ResetIteration() { o.CurrentRun.ResetIteration() }

// OnKill records a kill in the current run.
func (o *Optimizer) OnKill() { o.CurrentRun.Kills++ }

// OnSecret records a found secret in the current run.
func (o *Optimizer) OnSecret() { o.CurrentRun.Secrets++ }

// OnCenterPrint records a center-print message in the current run.
func (o *Optimizer) OnCenterPrint() { o.CurrentRun.CenterPrints++ }

// OnRunnerFrame ingests one simulated frame. While the iteration is in
// flight it answers ContinueIteration; once the run ends (death,
// intermission, or the window's final frame) the run is scored, the best
// updated, the acting algorithm informed, and the script mutated for the
// next attempt - then NewIteration (or Stop, when progress is exhausted)
// is returned.
func (o *Optimizer) OnRunnerFrame(data *ExtendedFrameData) State {
	if !o.initialized {
		return Stop
	}

	r := &o.CurrentRun
	r.Frames = append(r.Frames, data.FrameData)
	r.HP, r.AP = data.HP, data.AP

	end := false
	if data.Died {
		r.Died = true
		end = true
	}
	if data.Teleported && r.TeleportTime == NeverTeleported {
		r.TeleportTime = data.Time
	}
	if data.Intermission && !r.FinishedLevel {
		r.FinishedLevel = true
		r.LevelTime = data.Time
		end = true
	}
	if uint32(len(r.Frames)) > o.lastFrame {
		end = true
	}
	if !end {
		return ContinueIteration
	}

	state := NewIteration
	o.finishIteration(&state)

	return state
}

// finishIteration scores the run, advances the best/no-progress
// bookkeeping, and prepares the next iteration.
func (o *Optimizer) finishIteration(state *State) {
	r := &o.CurrentRun

	// Resolve an automatic goal from the very first run's movement.
	if o.Settings.Goal == Undetermined {
		if g := AutoGoalFromRun(r); g != Undetermined {
			o.Settings.Goal = g
		}
	}

	r.CalculateEfficacy(o.Settings.Goal, &o.conditions)

	if r.IsBetterThan(&o.CurrentBest) || o.iteration == 0 {
		o.CurrentBest = r.Clone()
		o.iterationsWithoutProgress = 0
		if !o.conditions.Initialized && (o.Settings.UseNodes || o.Settings.SecondaryGoals) {
			o.conditions.Init(&o.CurrentBest, &o.Settings)
		}
	} else {
		o.iterationsWithoutProgress++
	}

	if o.currentAlgorithm >= 0 {
		o.Algorithms[o.currentAlgorithm].ReportResult(r.Efficacy)
	}

	if o.iterationsWithoutProgress >= o.Settings.GiveUpAfterNoProgress {
		*state = Stop

		return
	}

	if o.iterationsWithoutProgress > 0 && o.Settings.ResetToBestIterations > 0 &&
		o.iterationsWithoutProgress%o.Settings.ResetToBestIterations == 0 {
		o.resetToBest()
	}

	o.selectAlgorithm()
	o.iteration++
	r.ResetIteration()
	o.Algorithms[o.currentAlgorithm].Mutate(&r.Playback.Script, o)
}

// resetToBest copies the best script back into the working run and clears
// every algorithm's in-flight state; from the caller's perspective the
// swap is atomic.
func (o *Optimizer) resetToBest() {
	o.CurrentRun.Playback = o.CurrentBest.Playback
	o.CurrentRun.Playback.Script = o.CurrentBest.Playback.Script.Clone()
	o.CurrentRun.Playback.Stacked = o.CurrentBest.Playback.Stacked.Clone()
	for _, alg := range o.Algorithms {
		alg.Reset()
	}
}

// selectAlgorithm picks who mutates next: an algorithm with unfinished
// multi-iteration work wins outright; otherwise a weighted draw over the
// compounding probabilities, retried past algorithms that decline this
// script, with a deterministic scan as the final fallback.
func (o *Optimizer) selectAlgorithm() {
	for i, alg := range o.Algorithms {
		if alg.WantsToContinue() {
			o.currentAlgorithm = i

			return
		}
	}

	s := &o.CurrentRun.Playback.Script
	for attempt := 0; attempt < maxSelectAttempts; attempt++ {
		idx := SelectIndex(o.rng.Float64(), o.CompoundingProbs)
		if o.Algorithms[idx].WantsToRun(s) {
			o.currentAlgorithm = idx

			return
		}
	}
	for i, alg := range o.Algorithms {
		if alg.WantsToRun(s) {
			o.currentAlgorithm = i

			return
		}
	}
	// Nothing is willing; fall back to the weighted pick and let its
	// Mutate no-op.
	o.currentAlgorithm = SelectIndex(o.rng.Float64(), o.CompoundingProbs)
}
