// Package optimizer - closed-loop simulation harness for benches, tests,
// and examples. The real game replays scripts through its physics engine;
// this harness substitutes a tiny memoryless kinematics stub so whole
// optimization sessions can run headless and deterministic.
package optimizer

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tasopt/playback"
	"github.com/katalvlaran/tasopt/script"
)

// Simulation constants.
const (
	// PlayerSpeed - units moved per frame while strafing (ground speed of
	// the stub world, scaled per frame).
	PlayerSpeed = 2.5

	// FramesPerSecond converts frame counts to simulated seconds.
	FramesPerSecond = 72.0

	// ConvarStrafe - strafing is active while this convar is 1.
	ConvarStrafe = "tas_strafe"
)

// Player is the kinematics stub: a position, the accumulated convar state,
// and the horizontal velocity angle of the last step.
type Player struct {
	Pos      r3.Vector
	Convars  map[string]float64
	VelTheta float64
}

// NewPlayer returns a player at the origin with no velocity.
func NewPlayer() Player {
	return Player{Convars: make(map[string]float64), VelTheta: InvalidVelTheta}
}

// Reset puts the player back at the origin and clears all state.
func (p *Player) Reset() {
	p.Pos = r3.Vector{}
	p.VelTheta = InvalidVelTheta
	for k := range p.Convars {
		delete(p.Convars, k)
	}
}

// ApplyBlock folds one frame block's convars into the player state.
func (p *Player) ApplyBlock(fb *script.FrameBlock) {
	if fb == nil {
		return
	}
	for _, pair := range fb.Convars.Pairs() {
		p.Convars[pair.Key] = pair.Value
	}
}

// MemorylessSim advances the player one frame with no inertia: while
// strafing, a PlayerSpeed step along the commanded strafe yaw; otherwise
// the player stands still with the no-velocity sentinel.
func MemorylessSim(p *Player) {
	if p.Convars[ConvarStrafe] != 1 {
		p.VelTheta = InvalidVelTheta

		return
	}
	yaw := p.Convars[ConvarStrafeYaw] * math.Pi / 180
	p.Pos.X += math.Cos(yaw) * PlayerSpeed
	p.Pos.Y += math.Sin(yaw) * PlayerSpeed
	p.VelTheta = NormalizeRad(yaw)
}

// SimFunc advances the player one frame. Bench scenarios wrap
// MemorylessSim with their world constraints (walls, pinholes).
type SimFunc func(*Player)

// Simulator drives one optimizer session against a SimFunc: it applies
// the working script's blocks to the player frame by frame, steps the
// world, and feeds the telemetry back into OnRunnerFrame.
type Simulator struct {
	Opt    *Optimizer
	Sim    SimFunc
	player Player
	frame  int
}

// NewSimulator couples a session with a world.
func NewSimulator(opt *Optimizer, sim SimFunc) *Simulator {
	return &Simulator{Opt: opt, Sim: sim, player: NewPlayer()}
}

// step simulates one frame and reports the driver's answer.
func (s *Simulator) step() State {
	s.player.ApplyBlock(s.Opt.CurrentFrameBlock())
	s.Sim(&s.player)

	data := NewExtendedFrameData()
	data.Pos = s.player.Pos
	data.VelTheta = s.player.VelTheta
	data.Time = float64(s.frame) / FramesPerSecond

	return s.Opt.OnRunnerFrame(&data)
}

// RunIterations drives the session until the given number of iterations
// have been scored, or the driver stops on its own. Returns the last
// driver state.
func (s *Simulator) RunIterations(iterations uint32) State {
	for s.Opt.Iteration() < iterations {
		switch s.step() {
		case ContinueIteration:
			s.frame++
		case NewIteration:
			s.frame = 0
			s.player.Reset()
		case Stop:
			return Stop
		}
	}

	return NewIteration
}

// BenchTest runs a full session: Init from the baseline playback, then the
// requested number of iterations against the world. Returns the session
// (whose CurrentBest holds the winning run).
func BenchTest(sim SimFunc, settings *Settings, info *playback.Info, iterations uint32) (*Optimizer, error) {
	var opt Optimizer
	if err := opt.Init(info, settings); err != nil {
		return nil, err
	}
	NewSimulator(&opt, sim).RunIterations(iterations)

	return &opt, nil
}

// BenchSeeds fans the same bench out over several RNG seeds, one
// independent session per seed, and returns the best run of each. Sessions
// share nothing, so they run concurrently; every individual session stays
// single-threaded.
func BenchSeeds(sim SimFunc, settings *Settings, info *playback.Info, iterations uint32, seeds []uint32) ([]Run, error) {
	runs := make([]Run, len(seeds))

	var g errgroup.Group
	for i, seed := range seeds {
		g.Go(func() error {
			var opt Optimizer
			if err := opt.Init(info, settings); err != nil {
				return err
			}
			opt.Seed(seed)
			NewSimulator(&opt, sim).RunIterations(iterations)
			runs[i] = opt.CurrentBest

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return runs, nil
}
