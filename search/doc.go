// Package search provides the one-dimensional search primitives the
// mutation algorithms carry as internal state:
//
//	CliffFinder  - bisects between a high-efficacy "edge" and a
//	               low-efficacy "ground" to localize a sharp drop-off.
//	BinSearcher  - three-phase optimizer over [original, max]: linear
//	               space mapping, then cliff refinement, then Finished.
//	RollingStone - momentum stepper: while a direction keeps improving,
//	               double the step and keep going; stop at the first
//	               regression or the value bound.
//
// All three follow the same propose/report protocol: the owner calls
// GetValue (or reads CurrentValue), applies the proposal, measures an
// efficacy (higher is better), and feeds it back through Report /
// ShouldContinue. The primitives never measure anything themselves, which
// keeps them deterministic and trivially testable.
//
// Design notes:
//   - CliffFinder canonicalizes its endpoints at Init so "edge" is always
//     the higher-scoring side, regardless of argument order.
//   - RollingStone treats its bound as an absolute value: the walk stays
//     within [-|max|, +|max|] and clamps on the last step.
package search
