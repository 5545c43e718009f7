// Package optimizer_test verifies the session driver: initialization,
// iteration accounting, monotone best, determinism, and termination.
package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tasopt/optimizer"
	"github.com/katalvlaran/tasopt/playback"
)

// cornerBaseline is the two-block bench script: strafe east, turn north
// at frame 100.
func cornerBaseline() playback.Info {
	var info playback.Info
	info.Script.AddConvar("tas_strafe_yaw", 0, 0)
	info.Script.AddConvar("tas_strafe", 1, 0)
	info.Script.AddConvar("tas_strafe_yaw", 90, 100)

	return info
}

// benchSettings mirrors the original bench configuration.
func benchSettings() optimizer.Settings {
	s := optimizer.DefaultSettings()
	s.EndOffset = 37
	s.ResetToBestIterations = 1
	s.GiveUpAfterNoProgress = 999
	s.UseNodes = false

	return s
}

// cornerSim clamps northward progress until the player has cleared the
// corner: y <= 10 while x < 10.
func cornerSim(p *optimizer.Player) {
	optimizer.MemorylessSim(p)
	if p.Pos.X < 10 && p.Pos.Y > 10 {
		p.Pos.Y = 10
	}
}

// TestInitRejectsBadConfig covers every Init-time failure.
func TestInitRejectsBadConfig(t *testing.T) {
	var opt optimizer.Optimizer

	info := cornerBaseline()
	bad := benchSettings()
	bad.Algorithms = nil
	require.ErrorIs(t, opt.Init(&info, &bad), optimizer.ErrNoAlgorithms)

	var empty playback.Info
	good := benchSettings()
	require.ErrorIs(t, opt.Init(&empty, &good), optimizer.ErrEmptyBaseline)

	short := benchSettings()
	short.EndOffset = -500
	require.ErrorIs(t, opt.Init(&info, &short), optimizer.ErrBadFrameWindow)
}

// TestUninitializedSessionStops refuses frames before Init.
func TestUninitializedSessionStops(t *testing.T) {
	var opt optimizer.Optimizer
	data := optimizer.NewExtendedFrameData()
	require.Equal(t, optimizer.Stop, opt.OnRunnerFrame(&data))
}

// TestFirstIterationCapturesBaseline verifies iteration zero promotes the
// unmutated script and resolves the automatic goal.
func TestFirstIterationCapturesBaseline(t *testing.T) {
	info := cornerBaseline()
	settings := benchSettings()

	var opt optimizer.Optimizer
	require.NoError(t, opt.Init(&info, &settings))

	sim := optimizer.NewSimulator(&opt, cornerSim)
	require.Equal(t, optimizer.NewIteration, sim.RunIterations(1))

	require.EqualValues(t, 1, opt.Iteration())
	require.Equal(t, optimizer.PlusY, opt.Settings.Goal, "auto goal resolves from the first run")
	require.Greater(t, opt.CurrentBest.Efficacy, optimizer.LowestEfficacy)
	require.InDelta(t, 95, opt.CurrentBest.LastPosition().Y, 1e-9,
		"baseline turns at frame 100 and strafes north for the tail window")
}

// TestMonotoneBest drives many iterations and asserts the best efficacy
// never decreases.
func TestMonotoneBest(t *testing.T) {
	info := cornerBaseline()
	settings := benchSettings()

	var opt optimizer.Optimizer
	require.NoError(t, opt.Init(&info, &settings))
	opt.Seed(7)

	sim := optimizer.NewSimulator(&opt, cornerSim)
	prev := optimizer.LowestEfficacy
	for i := uint32(1); i <= 200; i++ {
		if sim.RunIterations(i) == optimizer.Stop {
			break
		}
		require.GreaterOrEqual(t, opt.CurrentBest.Efficacy, prev,
			"best efficacy regressed at iteration %d", i)
		prev = opt.CurrentBest.Efficacy
	}
}

// TestDeterminism runs two identical sessions against the same world and
// expects byte-identical winners.
func TestDeterminism(t *testing.T) {
	session := func() *optimizer.Optimizer {
		info := cornerBaseline()
		settings := benchSettings()

		var opt optimizer.Optimizer
		require.NoError(t, opt.Init(&info, &settings))
		opt.Seed(1234)
		optimizer.NewSimulator(&opt, cornerSim).RunIterations(300)

		return &opt
	}

	a := session()
	b := session()

	require.Equal(t, a.CurrentBest.Efficacy, b.CurrentBest.Efficacy)
	require.Equal(t, a.CurrentBest.Playback.Script.String(), b.CurrentBest.Playback.Script.String())
	require.Equal(t, a.Iteration(), b.Iteration())
}

// TestSeedChangesSearch sanity-checks that different seeds explore
// differently.
func TestSeedChangesSearch(t *testing.T) {
	session := func(seed uint32) string {
		info := cornerBaseline()
		settings := benchSettings()

		var opt optimizer.Optimizer
		require.NoError(t, opt.Init(&info, &settings))
		opt.Seed(seed)
		optimizer.NewSimulator(&opt, cornerSim).RunIterations(100)

		return opt.CurrentBest.Playback.Script.String()
	}

	require.NotEqual(t, session(1), session(2),
		"two seeds converging on identical scripts after 100 iterations is vanishingly unlikely")
}

// TestGiveUpStops returns Stop after the configured number of fruitless
// iterations in a world that never moves.
func TestGiveUpStops(t *testing.T) {
	frozen := func(p *optimizer.Player) { p.VelTheta = optimizer.InvalidVelTheta }

	info := cornerBaseline()
	settings := benchSettings()
	settings.GiveUpAfterNoProgress = 5

	var opt optimizer.Optimizer
	require.NoError(t, opt.Init(&info, &settings))

	sim := optimizer.NewSimulator(&opt, frozen)
	require.Equal(t, optimizer.Stop, sim.RunIterations(1000))
	require.LessOrEqual(t, opt.Iteration(), uint32(10), "the session must not grind on after giving up")
}

// TestDiedEndsIteration marks the run dead and starts a fresh iteration.
func TestDiedEndsIteration(t *testing.T) {
	info := cornerBaseline()
	settings := benchSettings()

	var opt optimizer.Optimizer
	require.NoError(t, opt.Init(&info, &settings))

	data := optimizer.NewExtendedFrameData()
	data.Died = true
	require.Equal(t, optimizer.NewIteration, opt.OnRunnerFrame(&data))
	require.EqualValues(t, 1, opt.Iteration())
}

// TestTeleporterGoalRecordsFirstTouch scores the negated first teleport
// time.
func TestTeleporterGoalRecordsFirstTouch(t *testing.T) {
	info := cornerBaseline()
	settings := benchSettings()
	settings.Goal = optimizer.Teleporter

	var opt optimizer.Optimizer
	require.NoError(t, opt.Init(&info, &settings))

	var state optimizer.State
	for frame := 0; ; frame++ {
		data := optimizer.NewExtendedFrameData()
		data.Time = float64(frame) / optimizer.FramesPerSecond
		data.Teleported = frame == 30 || frame == 60 // only the first touch counts
		if state = opt.OnRunnerFrame(&data); state != optimizer.ContinueIteration {
			break
		}
	}

	require.Equal(t, optimizer.NewIteration, state)
	require.InDelta(t, -30.0/optimizer.FramesPerSecond, opt.CurrentBest.Efficacy, 1e-9)
}

// TestKillCounters feeds kill/secret/print events into the current run.
func TestKillCounters(t *testing.T) {
	info := cornerBaseline()
	settings := benchSettings()
	settings.Goal = optimizer.Kills

	var opt optimizer.Optimizer
	require.NoError(t, opt.Init(&info, &settings))

	opt.OnKill()
	opt.OnKill()
	opt.OnSecret()
	opt.OnCenterPrint()

	var state optimizer.State
	for {
		data := optimizer.NewExtendedFrameData()
		if state = opt.OnRunnerFrame(&data); state != optimizer.ContinueIteration {
			break
		}
	}

	require.Equal(t, optimizer.NewIteration, state)
	require.EqualValues(t, 2, opt.CurrentBest.Kills)
	require.EqualValues(t, 1, opt.CurrentBest.Secrets)
	require.EqualValues(t, 1, opt.CurrentBest.CenterPrints)
}

// TestIntermissionFinishesLevel records the completion time under the
// Time goal.
func TestIntermissionFinishesLevel(t *testing.T) {
	info := cornerBaseline()
	settings := benchSettings()
	settings.Goal = optimizer.Time

	var opt optimizer.Optimizer
	require.NoError(t, opt.Init(&info, &settings))

	data := optimizer.NewExtendedFrameData()
	data.Time = 2.5
	data.Intermission = true
	require.Equal(t, optimizer.NewIteration, opt.OnRunnerFrame(&data))

	require.True(t, opt.CurrentBest.FinishedLevel)
	require.Equal(t, 2.5, opt.CurrentBest.LevelTime)
	require.Equal(t, optimizer.TimeToEfficacy(2.5), opt.CurrentBest.Efficacy)
}
