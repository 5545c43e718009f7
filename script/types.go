// Package script - common types, host hooks, and sentinel errors.
package script

import (
	"errors"
	"regexp"
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Sentinel errors
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

var (
	// ErrEmptyScript indicates an attempt to save a script with no blocks.
	ErrEmptyScript = errors.New("script: cannot write an empty script")

	// ErrParse indicates at least one malformed line during load; the
	// offending block was skipped and the error carries the line number.
	ErrParse = errors.New("script: parse error")

	// ErrOpen indicates the script file could not be opened or created.
	ErrOpen = errors.New("script: cannot open file")

	// ErrBackupRotation indicates the pre-save backup rotation failed;
	// the save was aborted without touching the current file.
	ErrBackupRotation = errors.New("script: backup rotation failed")

	// ErrBlockIndex indicates a block index outside [0, len(blocks)).
	ErrBlockIndex = errors.New("script: block index out of range")

	// ErrBadTestBlock indicates a malformed test-block line.
	ErrBadTestBlock = errors.New("script: malformed test block line")
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Line grammar
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Line-classification regexes. All three are full-line matches on the
// trimmed, comment-stripped text.
var (
	frameNoRe = regexp.MustCompile(`^(\+?)(\d+):$`)
	toggleRe  = regexp.MustCompile(`^([+-])(\w+)$`)
	convarRe  = regexp.MustCompile(`^(\w+) "?(-?\d+(\.\d+)?)"?$`)
)

// maxLinearSearchSize bounds the block count under which frame lookup scans
// linearly instead of binary-searching with the position hint.
const maxLinearSearchSize = 16

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Host hooks
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Hooks bundles the host-supplied callbacks the script layer depends on.
// Every field may be nil; the accessors below substitute safe defaults so a
// zero Hooks value works in tests and tools that have no real host.
type Hooks struct {
	// Logf receives printf-style diagnostics (parse errors, save notices).
	Logf func(format string, args ...any)

	// IsConvar reports whether a name is a known console variable of the
	// host. The parser uses it to distinguish "name value" convar lines
	// from raw commands that happen to match the shape.
	IsConvar func(name string) bool

	// NumBackups returns how many rotating backups Save keeps.
	NumBackups func() int

	// GamePaused reports whether the host simulation is paused.
	GamePaused func() bool
}

// logf forwards to Logf when set; otherwise drops the message.
func (h *Hooks) logf(format string, args ...any) {
	if h != nil && h.Logf != nil {
		h.Logf(format, args...)
	}
}

// isConvar forwards to IsConvar when set. The default accepts every name:
// a host-less caller (tests, offline tooling) still round-trips scripts,
// because any line shaped like a convar assignment is treated as one.
func (h *Hooks) isConvar(name string) bool {
	if h != nil && h.IsConvar != nil {
		return h.IsConvar(name)
	}

	return true
}

// numBackups forwards to NumBackups when set; default is no backups.
func (h *Hooks) numBackups() int {
	if h != nil && h.NumBackups != nil {
		return h.NumBackups()
	}

	return 0
}

// gamePaused forwards to GamePaused when set; default is unpaused.
func (h *Hooks) gamePaused() bool {
	if h != nil && h.GamePaused != nil {
		return h.GamePaused()
	}

	return false
}

// GamePausedNow exposes the pause predicate for sibling packages
// (playback edit-mode detection) without re-exporting the raw field logic.
func (h *Hooks) GamePausedNow() bool { return h.gamePaused() }
