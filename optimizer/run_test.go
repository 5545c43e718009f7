// Package optimizer_test verifies run scoring: goal efficacies, auto-goal
// resolution, and condition floors.
package optimizer_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tasopt/optimizer"
	"github.com/katalvlaran/tasopt/playback"
)

// runWithPath builds a run observing the given positions.
func runWithPath(points ...r3.Vector) optimizer.Run {
	r := optimizer.NewRun(playback.Info{})
	for _, p := range points {
		r.Frames = append(r.Frames, optimizer.FrameData{Pos: p, VelTheta: optimizer.InvalidVelTheta})
	}

	return r
}

// TestAutoGoal pins the dominant-axis rule on known displacements.
func TestAutoGoal(t *testing.T) {
	require.Equal(t, optimizer.NegY,
		optimizer.AutoGoal(r3.Vector{}, r3.Vector{X: 3, Y: -5, Z: 0}))
	require.Equal(t, optimizer.PlusX,
		optimizer.AutoGoal(r3.Vector{}, r3.Vector{X: 10, Y: 0, Z: 0}))
	require.Equal(t, optimizer.PlusZ,
		optimizer.AutoGoal(r3.Vector{}, r3.Vector{X: 1, Y: -2, Z: 7}))
	require.Equal(t, optimizer.Undetermined,
		optimizer.AutoGoal(r3.Vector{X: 4, Y: 4, Z: 4}, r3.Vector{X: 4, Y: 4, Z: 4}))
}

// TestCalculateEfficacyAxes scores each positional goal off the final
// position.
func TestCalculateEfficacyAxes(t *testing.T) {
	r := runWithPath(r3.Vector{}, r3.Vector{X: 3, Y: -4, Z: 5})

	cases := []struct {
		goal optimizer.Goal
		want float64
	}{
		{optimizer.PlusX, 3},
		{optimizer.NegX, -3},
		{optimizer.PlusY, -4},
		{optimizer.NegY, 4},
		{optimizer.PlusZ, 5},
		{optimizer.NegZ, -5},
	}
	for _, c := range cases {
		r.CalculateEfficacy(c.goal, nil)
		require.Equal(t, c.want, r.Efficacy, "goal %v", c.goal)
	}
}

// TestCalculateEfficacyTime requires a finished level; otherwise the run
// keeps the sentinel low.
func TestCalculateEfficacyTime(t *testing.T) {
	r := runWithPath(r3.Vector{}, r3.Vector{X: 1})
	r.CalculateEfficacy(optimizer.Time, nil)
	require.Equal(t, optimizer.LowestEfficacy, r.Efficacy, "unfinished run under Time")

	r.FinishedLevel = true
	r.LevelTime = 12.5
	r.CalculateEfficacy(optimizer.Time, nil)
	require.Equal(t, optimizer.TimeToEfficacy(12.5), r.Efficacy)

	// Monotone: a faster finish scores strictly higher.
	require.Greater(t, optimizer.TimeToEfficacy(10), optimizer.TimeToEfficacy(12.5))
	require.Equal(t, 12.5, optimizer.EfficacyToTime(optimizer.TimeToEfficacy(12.5)))
}

// TestCalculateEfficacyKills prefers more kills, then earlier finishes.
func TestCalculateEfficacyKills(t *testing.T) {
	long := runWithPath(make([]r3.Vector, 100)...)
	long.Kills = 3
	long.CalculateEfficacy(optimizer.Kills, nil)

	short := runWithPath(make([]r3.Vector, 50)...)
	short.Kills = 3
	short.CalculateEfficacy(optimizer.Kills, nil)

	more := runWithPath(make([]r3.Vector, 100)...)
	more.Kills = 4
	more.CalculateEfficacy(optimizer.Kills, nil)

	require.True(t, short.IsBetterThan(&long), "same kills, shorter run wins")
	require.True(t, more.IsBetterThan(&short), "an extra kill beats any duration")
}

// TestCalculateEfficacyTeleporter scores the negated first-touch time.
func TestCalculateEfficacyTeleporter(t *testing.T) {
	r := runWithPath(r3.Vector{}, r3.Vector{X: 1})
	r.TeleportTime = 7.25
	r.CalculateEfficacy(optimizer.Teleporter, nil)
	require.Equal(t, -7.25, r.Efficacy)

	never := runWithPath(r3.Vector{}, r3.Vector{X: 1})
	never.CalculateEfficacy(optimizer.Teleporter, nil)
	require.True(t, r.IsBetterThan(&never), "touching beats never touching")
}

// TestConditionsSecondaryFloors enforces kills/secrets/prints/HP floors.
func TestConditionsSecondaryFloors(t *testing.T) {
	baseline := runWithPath(r3.Vector{}, r3.Vector{Y: 10})
	baseline.Kills = 2
	baseline.Secrets = 1
	baseline.HP = 50
	baseline.AP = 25

	settings := optimizer.DefaultSettings()
	settings.UseNodes = false
	settings.SecondaryGoals = true

	var cond optimizer.Conditions
	cond.Init(&baseline, &settings)
	require.True(t, cond.Initialized)

	good := runWithPath(r3.Vector{}, r3.Vector{Y: 20})
	good.Kills = 2
	good.Secrets = 1
	good.HP = 80
	good.CalculateEfficacy(optimizer.PlusY, &cond)
	require.Equal(t, 20.0, good.Efficacy)

	bad := runWithPath(r3.Vector{}, r3.Vector{Y: 30})
	bad.Kills = 1 // below the floor
	bad.Secrets = 1
	bad.HP = 80
	bad.CalculateEfficacy(optimizer.PlusY, &cond)
	require.Equal(t, optimizer.LowestEfficacy, bad.Efficacy, "floor violation forces the sentinel")
}

// TestConditionsNodePath requires approaching every captured node in
// order within the tolerance.
func TestConditionsNodePath(t *testing.T) {
	// A baseline long enough to sample more than one node.
	points := make([]r3.Vector, 80)
	for i := range points {
		points[i] = r3.Vector{X: float64(i * 10)}
	}
	baseline := runWithPath(points...)

	settings := optimizer.DefaultSettings()
	settings.UseNodes = true

	var cond optimizer.Conditions
	cond.Init(&baseline, &settings)
	require.True(t, len(cond.Nodes) >= 2)

	follow := runWithPath(points...)
	follow.CalculateEfficacy(optimizer.PlusX, &cond)
	require.NotEqual(t, optimizer.LowestEfficacy, follow.Efficacy, "the baseline path matches itself")

	stray := runWithPath(r3.Vector{}, r3.Vector{Y: 500}, r3.Vector{Y: 1000})
	stray.CalculateEfficacy(optimizer.PlusX, &cond)
	require.Equal(t, optimizer.LowestEfficacy, stray.Efficacy, "leaving the path forces the sentinel")
}

// TestConditionsExplicitInputNodes take precedence over sampling.
func TestConditionsExplicitInputNodes(t *testing.T) {
	baseline := runWithPath(r3.Vector{}, r3.Vector{X: 1})

	settings := optimizer.DefaultSettings()
	settings.InputNodes = []r3.Vector{{X: 5}, {X: 200}}

	var cond optimizer.Conditions
	cond.Init(&baseline, &settings)
	require.Equal(t, settings.InputNodes, cond.Nodes)
}

// TestResetIterationKeepsScript clears telemetry but not the playback.
func TestResetIterationKeepsScript(t *testing.T) {
	var info playback.Info
	info.Script.AddConvar("tas_strafe", 1, 0)

	r := optimizer.NewRun(info)
	r.Frames = append(r.Frames, optimizer.FrameData{})
	r.Kills = 3
	r.Died = true
	r.ResetIteration()

	require.Empty(t, r.Frames)
	require.Zero(t, r.Kills)
	require.False(t, r.Died)
	require.Equal(t, optimizer.LowestEfficacy, r.Efficacy)
	require.Equal(t, 1, len(r.Playback.Script.Blocks), "the script survives the reset")
}
