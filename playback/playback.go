// Package playback - Info: script + cursor + stacked state.
package playback

import (
	"github.com/katalvlaran/tasopt/script"
)

// Info is a script with a playback cursor. The zero value is a valid,
// empty, non-running playback.
type Info struct {
	// Script is the current script under playback or edit.
	Script script.Script

	// Stacked is the virtual block accumulating the state of every block
	// strictly before CurrentFrame (last writer wins per key). It is only
	// as fresh as the last CalculateStack call.
	Stacked script.FrameBlock

	CurrentFrame  int
	PauseFrame    int
	ScriptRunning bool
	ShouldUnpause bool
}

// BlockNumber returns the block index for frame, or for the current frame
// when frame == -1.
func (info *Info) BlockNumber(frame int) int {
	if frame == -1 {
		frame = info.CurrentFrame
	}

	return info.Script.BlockIndexForFrame(frame)
}

// CurrentBlock returns the first block at or past frame (current frame when
// frame == -1), or nil past the end of the script.
func (info *Info) CurrentBlock(frame int) *script.FrameBlock {
	i := info.BlockNumber(frame)
	if i >= len(info.Script.Blocks) {
		return nil
	}

	return &info.Script.Blocks[i]
}

// StackedBlock returns the accumulated pre-cursor state.
func (info *Info) StackedBlock() *script.FrameBlock { return &info.Stacked }

// NumBlocks reports the script's block count.
func (info *Info) NumBlocks() int { return len(info.Script.Blocks) }

// LastFrame returns the frame of the script's last block, or 0 when empty.
func (info *Info) LastFrame() int { return info.Script.LastFrame() }

// InEditMode reports whether the session is editable: not running, host
// paused, and a non-empty script loaded.
func (info *Info) InEditMode(hooks *script.Hooks) bool {
	return !info.ScriptRunning && hooks.GamePausedNow() && len(info.Script.Blocks) > 0
}

// CalculateStack recomputes Stacked by replaying every block strictly
// before CurrentFrame, later writes overwriting earlier ones per key.
func (info *Info) CalculateStack() {
	info.Stacked.Reset()
	for i := range info.Script.Blocks {
		fb := &info.Script.Blocks[i]
		if fb.Frame >= info.CurrentFrame {
			break
		}
		info.Stacked.Stack(fb)
	}
}

// TimeShifted returns a new playback whose script starts at startFrame
// (current frame when startFrame == -1): the head block is the stacked
// state of everything at or before startFrame, and the tail keeps the
// original blocks rebased to frame - startFrame. A block sitting exactly
// on startFrame contributes its commands to the head block as well.
func (info *Info) TimeShifted(startFrame int) Info {
	var out Info
	out.Script.FileName = info.Script.FileName
	if startFrame == -1 {
		startFrame = info.CurrentFrame
	}

	stacked := script.FrameBlock{Frame: 0, Parsed: true}
	addedStack := false

	for i := range info.Script.Blocks {
		fb := &info.Script.Blocks[i]
		if fb.Frame <= startFrame {
			stacked.Stack(fb)
			if fb.Frame == startFrame {
				stacked.Commands = append([]string(nil), fb.Commands...)
			}

			continue
		}
		if !addedStack {
			out.Script.Blocks = append(out.Script.Blocks, stacked)
			addedStack = true
		}
		shifted := fb.Clone()
		shifted.Frame -= startFrame
		out.Script.Blocks = append(out.Script.Blocks, shifted)
	}
	if !addedStack {
		out.Script.Blocks = append(out.Script.Blocks, stacked)
	}

	return out
}
