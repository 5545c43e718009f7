// Package optimizer - per-frame telemetry and the run aggregate.
package optimizer

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/tasopt/playback"
)

// FrameData is the minimal per-frame observation the optimizer scores on:
// the player position and the horizontal velocity angle in radians
// (InvalidVelTheta when the player is not moving).
type FrameData struct {
	Pos      r3.Vector
	VelTheta float64
}

// SmallestStrafeYawIncrements widens [min, max] (degrees, relative to
// strafeYaw) just enough that a mutation could swing the commanded yaw
// across this frame's actual velocity direction. Frames without velocity
// contribute nothing.
func (fd *FrameData) SmallestStrafeYawIncrements(strafeYaw float64, min, max *float64) {
	if fd.VelTheta == InvalidVelTheta {
		return
	}
	gap := NormalizeDeg(fd.VelTheta*180/math.Pi - strafeYaw)
	if gap+1 > *max {
		*max = gap + 1
	}
	if gap-1 < *min {
		*min = gap - 1
	}
}

// ExtendedFrameData is the full telemetry record the host feeds into
// OnRunnerFrame every simulated frame.
type ExtendedFrameData struct {
	FrameData
	HP           float32
	AP           float32
	Time         float64
	Died         bool
	Intermission bool
	Teleported   bool
}

// NewExtendedFrameData returns a record with the documented defaults:
// full health, no armor, and the no-velocity sentinel.
func NewExtendedFrameData() ExtendedFrameData {
	return ExtendedFrameData{
		FrameData: FrameData{VelTheta: InvalidVelTheta},
		HP:        100,
	}
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Run
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Run is one attempted playthrough: the script that produced it, the
// telemetry it generated, and the efficacy it scored. A fresh run carries
// the sentinel-low efficacy until CalculateEfficacy finalizes it.
type Run struct {
	Efficacy      float64
	Playback      playback.Info
	FinishedLevel bool
	Died          bool
	LevelTime     float64
	TeleportTime  float64
	Frames        []FrameData
	Kills         uint32
	Secrets       uint32
	CenterPrints  uint32
	HP            float32
	AP            float32
}

// NewRun returns an unmeasured run around the given playback.
func NewRun(info playback.Info) Run {
	return Run{
		Efficacy:     LowestEfficacy,
		Playback:     info,
		TeleportTime: NeverTeleported,
		HP:           100,
	}
}

// ResetIteration clears everything a new iteration remeasures; the
// playback (and its mutated script) is kept.
func (r *Run) ResetIteration() {
	r.Efficacy = LowestEfficacy
	r.FinishedLevel = false
	r.Died = false
	r.LevelTime = 0
	r.TeleportTime = NeverTeleported
	r.Frames = r.Frames[:0]
	r.Kills = 0
	r.Secrets = 0
	r.CenterPrints = 0
	r.HP = 100
	r.AP = 0
}

// Clone returns a deep copy (script and telemetry included) so promoting a
// run to "current best" cannot alias the working script.
func (r *Run) Clone() Run {
	out := *r
	out.Playback.Script = r.Playback.Script.Clone()
	out.Playback.Stacked = r.Playback.Stacked.Clone()
	if len(r.Frames) > 0 {
		out.Frames = append([]FrameData(nil), r.Frames...)
	}

	return out
}

// CalculateEfficacy finalizes the run's score under the goal. A run that
// violates its captured conditions scores the sentinel low; so does an
// unfinished run under the Time goal, and any run with no telemetry.
func (r *Run) CalculateEfficacy(goal Goal, conditions *Conditions) {
	r.Efficacy = LowestEfficacy
	if len(r.Frames) == 0 {
		return
	}
	if conditions != nil && !conditions.Fulfills(r) {
		return
	}

	last := r.Frames[len(r.Frames)-1].Pos
	switch goal {
	case PlusX:
		r.Efficacy = last.X
	case NegX:
		r.Efficacy = -last.X
	case PlusY:
		r.Efficacy = last.Y
	case NegY:
		r.Efficacy = -last.Y
	case PlusZ:
		r.Efficacy = last.Z
	case NegZ:
		r.Efficacy = -last.Z
	case Time:
		if r.FinishedLevel {
			r.Efficacy = TimeToEfficacy(r.LevelTime)
		}
	case Kills:
		// Kills dominate; earlier finishes break ties.
		r.Efficacy = float64(r.Kills)*killTieBreakScale - float64(len(r.Frames)-1)
	case Teleporter:
		r.Efficacy = -r.TeleportTime
	case Undetermined:
		// The driver resolves the goal before scoring; nothing to do.
	}
}

// killTieBreakScale keeps one kill worth more than any feasible frame-count
// difference in the tie-break term.
const killTieBreakScale = 1e6

// IsBetterThan compares two runs by efficacy.
func (r *Run) IsBetterThan(other *Run) bool { return r.Efficacy > other.Efficacy }

// LastPosition returns the final observed position, or the zero vector for
// an empty run.
func (r *Run) LastPosition() r3.Vector {
	if len(r.Frames) == 0 {
		return r3.Vector{}
	}

	return r.Frames[len(r.Frames)-1].Pos
}

// AutoGoalFromRun resolves an Undetermined goal from the run's last two
// positions (see AutoGoal). Runs with fewer than two frames stay
// Undetermined.
func AutoGoalFromRun(r *Run) Goal {
	if len(r.Frames) < 2 {
		return Undetermined
	}

	return AutoGoal(r.Frames[len(r.Frames)-2].Pos, r.Frames[len(r.Frames)-1].Pos)
}

// DefaultStrafeYawRange bounds strafe-yaw mutations (degrees, either side)
// when the run has no telemetry to derive tighter bounds from.
const DefaultStrafeYawRange = 30.0

// StrafeBounds derives the mutation range (degrees, relative to the
// block's current yaw) for the strafe-yaw convar of the given block: wide
// enough to swing the commanded yaw across every velocity direction
// observed while the block was active, with a one-degree margin. Falls
// back to ±DefaultStrafeYawRange without usable telemetry.
func (r *Run) StrafeBounds(blockIndex int) (min, max float64) {
	min, max = -DefaultStrafeYawRange, DefaultStrafeYawRange
	blocks := r.Playback.Script.Blocks
	if blockIndex < 0 || blockIndex >= len(blocks) {
		return min, max
	}
	yaw, ok := blocks[blockIndex].Convars.Get(ConvarStrafeYaw)
	if !ok || len(r.Frames) == 0 {
		return min, max
	}

	// The block's yaw is active until the next block that rewrites it.
	start := blocks[blockIndex].Frame
	end := len(r.Frames)
	for i := blockIndex + 1; i < len(blocks); i++ {
		if blocks[i].HasConvar(ConvarStrafeYaw) {
			if blocks[i].Frame < end {
				end = blocks[i].Frame
			}

			break
		}
	}
	if start >= len(r.Frames) {
		return min, max
	}

	lo, hi := -1.0, 1.0
	seen := false
	for f := start; f < end; f++ {
		if r.Frames[f].VelTheta == InvalidVelTheta {
			continue
		}
		r.Frames[f].SmallestStrafeYawIncrements(yaw, &lo, &hi)
		seen = true
	}
	if seen {
		min, max = lo, hi
	}

	return min, max
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Conditions
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// NodeTolerance is how close (in world units) a run must pass to each
// captured node for the path to count as matched.
const NodeTolerance = 50.0

// nodeSampleInterval is the frame stride at which the baseline run's
// positions are captured as path nodes.
const nodeSampleInterval = 36

// Conditions are the floors captured from the first successful run.
// Subsequent runs must meet every enabled floor to be scored at all;
// a violating run keeps the sentinel-low efficacy.
type Conditions struct {
	Initialized  bool
	Nodes        []r3.Vector
	Kills        uint32
	Secrets      uint32
	CenterPrints uint32
	TotalHP      float32

	useNodes       bool
	secondaryGoals bool
}

// Init captures the baseline floors from a run under the session settings.
// Explicit input nodes in the settings take precedence over sampling.
func (c *Conditions) Init(run *Run, settings *Settings) {
	c.Reset()
	c.useNodes = settings.UseNodes
	c.secondaryGoals = settings.SecondaryGoals

	if c.useNodes {
		if len(settings.InputNodes) > 0 {
			c.Nodes = append(c.Nodes, settings.InputNodes...)
		} else {
			for f := 0; f < len(run.Frames); f += nodeSampleInterval {
				c.Nodes = append(c.Nodes, run.Frames[f].Pos)
			}
		}
	}
	if c.secondaryGoals {
		c.Kills = run.Kills
		c.Secrets = run.Secrets
		c.CenterPrints = run.CenterPrints
		c.TotalHP = run.HP + run.AP
	}
	c.Initialized = true
}

// Fulfills reports whether the run meets every enabled floor. An
// uninitialized Conditions accepts everything.
func (c *Conditions) Fulfills(run *Run) bool {
	if !c.Initialized {
		return true
	}
	if c.useNodes && !c.matchesNodes(run) {
		return false
	}
	if c.secondaryGoals {
		if run.Kills < c.Kills || run.Secrets < c.Secrets || run.CenterPrints < c.CenterPrints {
			return false
		}
		if run.HP+run.AP < c.TotalHP {
			return false
		}
	}

	return true
}

// matchesNodes walks the run's frames and requires every captured node to
// be approached within NodeTolerance, in order.
func (c *Conditions) matchesNodes(run *Run) bool {
	node := 0
	for f := 0; f < len(run.Frames) && node < len(c.Nodes); f++ {
		if run.Frames[f].Pos.Sub(c.Nodes[node]).Norm() <= NodeTolerance {
			node++
		}
	}

	return node == len(c.Nodes)
}

// Reset clears the captured floors.
func (c *Conditions) Reset() {
	*c = Conditions{}
}
