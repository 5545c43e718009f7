// Package playback tracks a script together with a position cursor: which
// frame the host simulation is on, whether the script is running, and the
// accumulated convar/toggle state of every block already passed.
//
// The stacked block is the heart of the package: replaying blocks from
// frame 0 up to (but not including) the current frame with last-writer-wins
// semantics per key yields the effective input state at the cursor. Time
// shifting builds on it - a playback can be rebased so that its first block
// is the stacked state at a chosen frame and the tail keeps its relative
// spacing, which is how the optimizer extracts "the rest of the run" as a
// standalone script.
//
// One Info value is one editing/playback session; the package holds no
// process-wide state.
package playback
