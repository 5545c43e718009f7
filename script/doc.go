// Package script implements the frame-indexed input script model for
// tool-assisted playback: ordered frame blocks of convar assignments,
// button toggles, and raw commands, plus the bit-exact text form used on
// disk and over the wire.
//
// Model:
//
//	Script   - ordered sequence of FrameBlock, strictly ascending by frame.
//	FrameBlock - all edits applied at one integer frame: convars (name →
//	           float value), toggles (name → on/off), commands (raw lines).
//	           Both maps preserve insertion order; reassignment updates the
//	           value in place without reordering, so emission is stable.
//
// Invariants:
//   - blocks[i].Frame < blocks[i+1].Frame for every script this package
//     returns, no matter which operation produced it.
//   - Emitting a script as text and parsing it back yields a field-wise
//     equal script (frames, maps, command order).
//   - Shift operations clamp rather than collide: no operation may produce
//     two blocks on the same frame or a block on a negative frame.
//
// Text form (one block per frame):
//
//	+<delta>:            frame gap since the previous block (absolute for
//	                     the first block); then tab-indented lines, each a
//	convar:   "<name> <value>"
//	toggle:   "+<name>" or "-<name>"
//	command:  any other non-blank line
//
// "//" starts a line comment anywhere; surrounding whitespace is trimmed.
//
// Host integration happens through the Hooks record (logging, convar
// recognition, backup count, pause state); the package keeps no process
// globals. See doc comments on Hooks for the zero-value defaults.
package script
