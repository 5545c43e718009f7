// Package optimizer_test - end-to-end benches: whole sessions against the
// stub worlds, mirroring the classic corner and pinhole scenarios.
package optimizer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tasopt/optimizer"
)

// benchIterations matches the classic bench budget.
const benchIterations = 5000

// pinholeSim blocks northward movement past y=50 unless the player passes
// through the narrow slot around x=0 while inside the band 50 < y < 52.
func pinholeSim(p *optimizer.Player) {
	optimizer.MemorylessSim(p)
	const pinSize = 1.0
	if p.Pos.Y > 50 && p.Pos.Y < 52 && math.Abs(p.Pos.X) > pinSize/2 {
		p.Pos.Y = 50
	}
}

// baselineRun scores the unmutated script: a single-iteration session.
func baselineRun(t *testing.T, sim optimizer.SimFunc) optimizer.Run {
	t.Helper()
	info := cornerBaseline()
	settings := benchSettings()

	opt, err := optimizer.BenchTest(sim, &settings, &info, 1)
	require.NoError(t, err)

	return opt.CurrentBest
}

// TestCornerBench replays the classic corner bench: with the standard mix the
// optimizer must beat the baseline's final northing within the budget.
func TestCornerBench(t *testing.T) {
	if testing.Short() {
		t.Skip("full bench session")
	}

	baseline := baselineRun(t, cornerSim)

	info := cornerBaseline()
	settings := benchSettings()
	opt, err := optimizer.BenchTest(cornerSim, &settings, &info, benchIterations)
	require.NoError(t, err)

	best := opt.CurrentBest
	require.Greater(t, best.LastPosition().Y, baseline.LastPosition().Y,
		"the search must improve on the baseline corner route")
	require.Equal(t, optimizer.PlusY, opt.Settings.Goal)

	// The winning script still honors the structural invariants.
	blocks := best.Playback.Script.Blocks
	for i := 1; i < len(blocks); i++ {
		require.Less(t, blocks[i-1].Frame, blocks[i].Frame)
	}
	require.GreaterOrEqual(t, blocks[0].Frame, 0)
}

// TestPinholeBench replays the pinhole bench: the best trajectory must end past
// the pinhole wall (y > 52) and beat the baseline.
func TestPinholeBench(t *testing.T) {
	if testing.Short() {
		t.Skip("full bench session")
	}

	baseline := baselineRun(t, pinholeSim)

	info := cornerBaseline()
	settings := benchSettings()
	opt, err := optimizer.BenchTest(pinholeSim, &settings, &info, benchIterations)
	require.NoError(t, err)

	best := opt.CurrentBest
	require.Greater(t, best.LastPosition().Y, 52.0, "the winner must thread the pinhole")
	require.GreaterOrEqual(t, best.LastPosition().Y, baseline.LastPosition().Y)
}

// TestBenchSeeds fans independent sessions over seeds; every session must
// produce a scored best and the results must be reproducible per seed.
func TestBenchSeeds(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-session bench")
	}

	info := cornerBaseline()
	settings := benchSettings()
	seeds := []uint32{1, 2, 3, 4}

	runs, err := optimizer.BenchSeeds(cornerSim, &settings, &info, 200, seeds)
	require.NoError(t, err)
	require.Len(t, runs, len(seeds))
	for i, run := range runs {
		require.Greater(t, run.Efficacy, optimizer.LowestEfficacy, "seed %d produced no run", seeds[i])
	}

	again, err := optimizer.BenchSeeds(cornerSim, &settings, &info, 200, seeds)
	require.NoError(t, err)
	for i := range runs {
		require.Equal(t, runs[i].Efficacy, again[i].Efficacy, "seed %d is not reproducible", seeds[i])
	}
}
