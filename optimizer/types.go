// Package optimizer - goals, algorithm identifiers, sentinel errors, and
// shared constants.
package optimizer

import (
	"errors"
	"math"

	"github.com/golang/geo/r3"
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Sentinel errors
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

var (
	// ErrInvalidGoal indicates a goal value outside the known enum.
	ErrInvalidGoal = errors.New("optimizer: invalid goal")

	// ErrNoAlgorithms indicates an empty algorithm list in the settings.
	ErrNoAlgorithms = errors.New("optimizer: no algorithms configured")

	// ErrUnknownAlgorithm indicates an unrecognized algorithm identifier.
	ErrUnknownAlgorithm = errors.New("optimizer: unknown algorithm")

	// ErrBadFrameWindow indicates a non-positive fixed frame window.
	ErrBadFrameWindow = errors.New("optimizer: frame window must be positive")

	// ErrEmptyBaseline indicates a baseline playback with no blocks.
	ErrEmptyBaseline = errors.New("optimizer: baseline script is empty")

	// ErrNotInitialized indicates driving a session before a successful Init.
	ErrNotInitialized = errors.New("optimizer: session not initialized")
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Goals
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Goal selects what the optimizer maximizes. Undetermined is resolved from
// the first run's movement direction (see AutoGoal). The numeric values
// are part of the serialized settings layout; do not reorder.
type Goal int32

const (
	// Undetermined - auto-resolved on the first finished iteration.
	Undetermined Goal = iota
	// PlusX maximizes the final X coordinate.
	PlusX
	// NegX minimizes the final X coordinate.
	NegX
	// PlusY maximizes the final Y coordinate.
	PlusY
	// NegY minimizes the final Y coordinate.
	NegY
	// Time minimizes level completion time (finished runs only).
	Time
	// PlusZ maximizes the final Z coordinate.
	PlusZ
	// NegZ minimizes the final Z coordinate.
	NegZ
	// Kills maximizes the kill count, preferring earlier finishes on ties.
	Kills
	// Teleporter minimizes the time of the first teleporter touch.
	Teleporter

	goalCount
)

// Valid reports whether g is a known goal value.
func (g Goal) Valid() bool { return g >= Undetermined && g < goalCount }

// String returns the console name of the goal.
func (g Goal) String() string {
	switch g {
	case Undetermined:
		return "Undetermined"
	case PlusX:
		return "+X"
	case NegX:
		return "-X"
	case PlusY:
		return "+Y"
	case NegY:
		return "-Y"
	case Time:
		return "Time"
	case PlusZ:
		return "+Z"
	case NegZ:
		return "-Z"
	case Kills:
		return "Kills"
	case Teleporter:
		return "Teleporter"
	default:
		return "Unknown"
	}
}

// AutoGoal derives a positional goal from the displacement between the two
// last observed positions: the axis with the largest absolute component
// wins, signed by its direction. Zero displacement stays Undetermined.
func AutoGoal(secondLast, last r3.Vector) Goal {
	d := last.Sub(secondLast)
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	switch {
	case ax == 0 && ay == 0 && az == 0:
		return Undetermined
	case ax >= ay && ax >= az:
		if d.X > 0 {
			return PlusX
		}

		return NegX
	case ay >= az:
		if d.Y > 0 {
			return PlusY
		}

		return NegY
	default:
		if d.Z > 0 {
			return PlusZ
		}

		return NegZ
	}
}

// TimeToEfficacy maps a level time onto the higher-is-better efficacy
// scale: strictly monotone decreasing, so a faster run scores higher.
func TimeToEfficacy(t float64) float64 { return -t }

// EfficacyToTime inverts TimeToEfficacy.
func EfficacyToTime(e float64) float64 { return -e }

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Algorithm identifiers
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// AlgorithmID names one of the built-in mutation strategies; the numeric
// values are part of the serialized settings layout.
type AlgorithmID int32

const (
	// AlgoTurnOptimizer - binary search over a strafe-yaw turn value.
	AlgoTurnOptimizer AlgorithmID = iota
	// AlgoRNGStrafer - random strafe-yaw perturbation or insertion.
	AlgoRNGStrafer
	// AlgoRNGBlockMover - random single-block frame shift.
	AlgoRNGBlockMover
	// AlgoRNGShooter - random scripted shot insertion.
	AlgoRNGShooter
	// AlgoStrafeAdjuster - rolling-stone walk in strafe-yaw space.
	AlgoStrafeAdjuster
	// AlgoFrameBlockMover - rolling-stone walk in frame space.
	AlgoFrameBlockMover

	algorithmCount
)

// Valid reports whether id names a built-in algorithm.
func (id AlgorithmID) Valid() bool { return id >= AlgoTurnOptimizer && id < algorithmCount }

// StandardAlgorithms is the default mix used by the benches: every
// structural mutator plus the turn refiner, in scheduler order.
func StandardAlgorithms() []AlgorithmID {
	return []AlgorithmID{
		AlgoStrafeAdjuster,
		AlgoRNGStrafer,
		AlgoRNGBlockMover,
		AlgoFrameBlockMover,
		AlgoTurnOptimizer,
	}
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Shared constants
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// LowestEfficacy is the sentinel score of a run that has not been measured
// or that violated its run conditions.
const LowestEfficacy = -math.MaxFloat64

// InvalidVelTheta is the telemetry sentinel for "player has no horizontal
// velocity this frame".
const InvalidVelTheta = 999.0

// NeverTeleported is the default teleport time of a run that never touched
// a teleporter.
const NeverTeleported = 1000.0

// ConvarStrafeYaw is the strafe direction convar every movement mutator
// operates on.
const ConvarStrafeYaw = "tas_strafe_yaw"

// NormalizeDeg folds an angle in degrees into [-180, 180).
func NormalizeDeg(angle float64) float64 {
	angle = math.Mod(angle+180, 360)
	if angle < 0 {
		angle += 360
	}

	return angle - 180
}

// NormalizeRad folds an angle in radians into [-pi, pi).
func NormalizeRad(rad float64) float64 {
	rad = math.Mod(rad+math.Pi, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}

	return rad - math.Pi
}
