// Package script - FrameBlock: the atomic edit unit at one frame.
package script

import (
	"strconv"
	"strings"
)

// FrameBlock holds every edit applied at one integer frame: convar
// assignments, button toggles, and raw command strings. Convars and toggles
// preserve insertion order; commands keep their append order.
//
// Parsed distinguishes a block that has absorbed at least one line from a
// freshly initialized one; the loader uses it to decide when a new frame
// header closes the previous block.
type FrameBlock struct {
	Frame    int
	Parsed   bool
	Convars  OrderedMap[float64]
	Toggles  OrderedMap[bool]
	Commands []string
}

// Stack merges other into the receiver with last-writer-wins semantics per
// key. Commands are not merged: a stacked block represents accumulated
// convar/toggle state, while commands fire only on their own frame.
func (fb *FrameBlock) Stack(other *FrameBlock) {
	for _, p := range other.Toggles.Pairs() {
		fb.Toggles.Set(p.Key, p.Value)
	}
	for _, p := range other.Convars.Pairs() {
		fb.Convars.Set(p.Key, p.Value)
	}
}

// Command renders the block as a single semicolon-joined console command:
// convars, then toggles, then raw commands, in insertion order.
func (fb *FrameBlock) Command() string {
	var sb strings.Builder
	for _, p := range fb.Convars.Pairs() {
		sb.WriteString(p.Key)
		sb.WriteByte(' ')
		sb.WriteString(formatFloat(p.Value))
		sb.WriteByte(';')
	}
	for _, p := range fb.Toggles.Pairs() {
		if p.Value {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(p.Key)
		sb.WriteByte(';')
	}
	for _, cmd := range fb.Commands {
		sb.WriteString(cmd)
		sb.WriteByte(';')
	}

	return sb.String()
}

// AddCommand appends a raw command line.
func (fb *FrameBlock) AddCommand(line string) {
	fb.Commands = append(fb.Commands, line)
}

// Reset clears all content and the Parsed flag; Frame is kept.
func (fb *FrameBlock) Reset() {
	fb.Parsed = false
	fb.Convars.Clear()
	fb.Toggles.Clear()
	fb.Commands = fb.Commands[:0]
}

// Empty reports whether the block carries no edits at all.
func (fb *FrameBlock) Empty() bool {
	return fb.Convars.Len() == 0 && fb.Toggles.Len() == 0 && len(fb.Commands) == 0
}

// HasConvar reports whether the named convar is set in this block.
func (fb *FrameBlock) HasConvar(name string) bool { return fb.Convars.Has(name) }

// HasToggle reports whether the named toggle is set in this block.
func (fb *FrameBlock) HasToggle(name string) bool { return fb.Toggles.Has(name) }

// HasConvarValue reports whether the named convar is set to exactly value.
func (fb *FrameBlock) HasConvarValue(name string, value float64) bool {
	v, ok := fb.Convars.Get(name)

	return ok && v == value
}

// HasToggleValue reports whether the named toggle is set to exactly value.
func (fb *FrameBlock) HasToggleValue(name string, value bool) bool {
	v, ok := fb.Toggles.Get(name)

	return ok && v == value
}

// Clone returns a deep copy of the block.
func (fb *FrameBlock) Clone() FrameBlock {
	out := FrameBlock{
		Frame:   fb.Frame,
		Parsed:  fb.Parsed,
		Convars: fb.Convars.Clone(),
		Toggles: fb.Toggles.Clone(),
	}
	if len(fb.Commands) > 0 {
		out.Commands = append([]string(nil), fb.Commands...)
	}

	return out
}

// Equal reports field-wise equality of two blocks.
func (fb *FrameBlock) Equal(other *FrameBlock) bool {
	if fb.Frame != other.Frame || len(fb.Commands) != len(other.Commands) {
		return false
	}
	for i := range fb.Commands {
		if fb.Commands[i] != other.Commands[i] {
			return false
		}
	}
	if !fb.Convars.Equal(&other.Convars, func(a, b float64) bool { return a == b }) {
		return false
	}

	return fb.Toggles.Equal(&other.Toggles, func(a, b bool) bool { return a == b })
}

// formatFloat renders a convar value the way the text form stores it:
// shortest decimal that round-trips ('g', full float64 precision).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
