// Package tasopt is an iterative search engine for tool-assisted-speedrun
// input scripts: it mutates a deterministic, frame-indexed script, has the
// host replay it, and keeps whichever variant best advances a chosen goal
// (a positional axis, level time, kills, or teleporter touch).
//
// 🚀 What is tasopt?
//
//	A deterministic, single-session optimization library:
//
//	  • Script model: frame blocks of convar writes, button toggles, and
//	    commands, with a bit-exact text form and rotating on-disk backups
//	  • Search primitives: cliff-finding bisection, three-phase binary
//	    search, and rolling-stone step expansion
//	  • Mutation ensemble: six pluggable strategies picked by weighted
//	    sampling, each carrying its own multi-iteration state machine
//
// ✨ Why choose tasopt?
//
//   - Reproducible          — seeded RNG; identical inputs replay byte-identically
//   - Host-agnostic         — the game engine stays behind narrow hooks and
//     a per-frame telemetry callback
//   - Greedy but honest     — the best run is monotone; violated run
//     conditions simply score sentinel-low
//
// Under the hood, everything is organized under five subpackages:
//
//	script/    — FrameBlock, Script, text grammar, backups, host hooks
//	playback/  — cursor + stacked state + time shifting
//	search/    — CliffFinder, BinSearcher, RollingStone
//	optimizer/ — runs, conditions, algorithms, the session driver, benches
//	tasio/     — byte-buffer serialization interfaces
//
// Quick ASCII example of the corner bench the tests replay:
//
//	    y ▲        best ┌───→
//	      │   ┌─────────┘
//	      │   │ baseline ┌─→
//	    ──┴───┴──────────┘── x
//	        corner at (10, 10)
//
// See ExampleOptimizer (optimizer) and ExampleScript_ShiftBlocks (script)
// for runnable sessions, and DESIGN.md for the
// grounding ledger and open-question decisions.
//
//	go get github.com/katalvlaran/tasopt
package tasopt
