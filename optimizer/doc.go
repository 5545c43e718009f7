// Package optimizer is the iterative search engine over frame-indexed
// input scripts: it mutates a script, has the host replay it, scores the
// resulting telemetry, and keeps whichever variant best advances the
// configured goal.
//
// The moving parts:
//
//	Goal / Settings - what "better" means (a positional axis, level time,
//	                  kills, or teleporter touch) and the session knobs.
//	Run             - one attempted playthrough: per-frame telemetry plus
//	                  the script that produced it, scored by efficacy.
//	Conditions      - floors captured from the first successful run (node
//	                  path, kills, secrets, center-prints, HP) that later
//	                  runs must meet to count at all.
//	Algorithm       - a pluggable mutation strategy; six are built in,
//	                  ranging from pure RNG perturbation to multi-iteration
//	                  state machines around search.BinSearcher and
//	                  search.RollingStone.
//	Optimizer       - the session driver: owns the RNG, the working and
//	                  best runs, weighted algorithm selection, and the
//	                  reset-to-best / give-up bookkeeping.
//
// Control flow per session: Init with a baseline playback and settings,
// then feed every simulated frame to OnRunnerFrame. The driver answers
// ContinueIteration while the run is in flight, NewIteration after it has
// scored the run and mutated the script for the next attempt, and Stop
// when progress is exhausted. The caller owns the simulation loop; the
// core is single-threaded and never blocks.
//
// Determinism: with identical settings, baseline, seed, and simulator
// outputs, the sequence of proposed scripts and the final best run are
// byte-identical. All randomness flows through the session RNG; no time
// or map-iteration order leaks into decisions.
//
// The sim.go harness (Player, MemorylessSim, Simulator) provides the
// closed-loop kinematics stub used by the end-to-end benches and examples.
package optimizer
