// Package script - Script: the ordered block sequence and its edit operations.
package script

// View-override convars placed by AddShot. The clearing value is the same
// sentinel the telemetry layer uses for "no angle": the playback host treats
// it as "release the scripted view".
const (
	ConvarViewPitch = "tas_view_pitch"
	ConvarViewYaw   = "tas_view_yaw"

	// InvalidAngle clears a scripted view override.
	InvalidAngle = 999
)

// Script is an ordered sequence of frame blocks, strictly ascending by
// frame. FileName is where Load/Save operate. The unexported lookup hint
// accelerates successive nearby frame lookups; it is advisory only and is
// re-validated on every use, so staleness never breaks correctness.
type Script struct {
	Blocks   []FrameBlock
	FileName string

	prevBlockNumber int
}

// NewScript returns an empty script bound to the given file name.
func NewScript(fileName string) *Script {
	return &Script{FileName: fileName}
}

// Clone returns a deep copy of the script (blocks, maps, commands).
func (s *Script) Clone() Script {
	out := Script{FileName: s.FileName, prevBlockNumber: s.prevBlockNumber}
	if len(s.Blocks) == 0 {
		return out
	}
	out.Blocks = make([]FrameBlock, len(s.Blocks))
	for i := range s.Blocks {
		out.Blocks[i] = s.Blocks[i].Clone()
	}

	return out
}

// Equal reports field-wise equality of two scripts' block sequences.
func (s *Script) Equal(other *Script) bool {
	if len(s.Blocks) != len(other.Blocks) {
		return false
	}
	for i := range s.Blocks {
		if !s.Blocks[i].Equal(&other.Blocks[i]) {
			return false
		}
	}

	return true
}

// LastFrame returns the frame of the last block, or 0 for an empty script.
func (s *Script) LastFrame() int {
	if len(s.Blocks) == 0 {
		return 0
	}

	return s.Blocks[len(s.Blocks)-1].Frame
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Frame lookup
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// BlockIndexForFrame returns the first index whose frame is >= frame, or
// len(Blocks) if every block lies before it.
//
// Lookup strategy:
//   - Under maxLinearSearchSize blocks: plain linear scan (cheapest).
//   - Otherwise: check whether the previous hit still brackets the query
//     (Blocks[hint-1].Frame < frame <= Blocks[hint].Frame); on a miss,
//     binary search over the full range. The hint is refreshed either way.
func (s *Script) BlockIndexForFrame(frame int) int {
	count := len(s.Blocks)
	if count == 0 {
		return 0
	}

	if count < maxLinearSearchSize {
		for i := 0; i < count; i++ {
			if s.Blocks[i].Frame >= frame {
				return i
			}
		}

		return count
	}

	// Clamp a stale hint before trusting it.
	hint := s.prevBlockNumber
	if hint >= count {
		hint = count - 1
	}
	if s.Blocks[hint].Frame >= frame {
		if hint == 0 || s.Blocks[hint-1].Frame < frame {
			s.prevBlockNumber = hint

			return hint
		}
	}

	low, high := 0, count
	for low < high-1 {
		mid := (low + high) / 2
		if s.Blocks[mid].Frame == frame {
			low = mid

			break
		} else if s.Blocks[mid].Frame > frame {
			high = mid
		} else {
			low = mid
		}
	}

	if s.Blocks[low].Frame < frame {
		s.prevBlockNumber = low + 1
	} else {
		s.prevBlockNumber = low
	}

	return s.prevBlockNumber
}

// BlockAtFrame returns the block sitting exactly on frame, or nil.
func (s *Script) BlockAtFrame(frame int) *FrameBlock {
	i := s.BlockIndexForFrame(frame)
	if i < len(s.Blocks) && s.Blocks[i].Frame == frame {
		return &s.Blocks[i]
	}

	return nil
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Shifts
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// ShiftBlocks moves Blocks[blockIndex..] by delta frames. A negative delta
// is clamped so the shifted block stays strictly past its left neighbor
// (or at frame >= 0 when blockIndex == 0). Returns false when the clamp
// reduces the move to nothing or the index is out of range.
func (s *Script) ShiftBlocks(blockIndex, delta int) bool {
	if blockIndex < 0 || blockIndex >= len(s.Blocks) {
		return false
	}
	current := s.Blocks[blockIndex].Frame

	if delta < 0 {
		minFrame := 0
		if blockIndex > 0 {
			minFrame = s.Blocks[blockIndex-1].Frame + 1
		}
		if minDelta := minFrame - current; minDelta > delta {
			delta = minDelta
		}
	}
	if delta == 0 {
		return false
	}

	for i := blockIndex; i < len(s.Blocks); i++ {
		s.Blocks[i].Frame += delta
	}

	return true
}

// ShiftSingleBlock moves only Blocks[blockIndex] by delta frames, clamping
// against both neighbors so the block can never collide or pass another
// block, and never lands on a negative frame. Returns false when the clamp
// leaves the frame unchanged.
func (s *Script) ShiftSingleBlock(blockIndex, delta int) bool {
	if blockIndex < 0 || blockIndex >= len(s.Blocks) {
		return false
	}
	current := s.Blocks[blockIndex].Frame
	target := current + delta

	minFrame := 0
	if blockIndex > 0 {
		minFrame = s.Blocks[blockIndex-1].Frame + 1
	}
	if target < minFrame {
		target = minFrame
	}
	if blockIndex+1 < len(s.Blocks) {
		if maxFrame := s.Blocks[blockIndex+1].Frame - 1; target > maxFrame {
			target = maxFrame
		}
	}
	if target == current {
		return false
	}
	s.Blocks[blockIndex].Frame = target

	return true
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Pruning & range removal
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Prune removes blocks with no content whose frame lies in [minFrame, maxFrame].
func (s *Script) Prune(minFrame, maxFrame int) {
	s.Blocks = removeIf(s.Blocks, func(fb *FrameBlock) bool {
		return fb.Empty() && fb.Frame >= minFrame && fb.Frame <= maxFrame
	})
}

// PruneFrom removes blocks with no content whose frame is >= minFrame.
func (s *Script) PruneFrom(minFrame int) {
	s.Blocks = removeIf(s.Blocks, func(fb *FrameBlock) bool {
		return fb.Empty() && fb.Frame >= minFrame
	})
}

// RemoveBlocksAfterFrame drops every block strictly past frame.
func (s *Script) RemoveBlocksAfterFrame(frame int) {
	s.Blocks = removeIf(s.Blocks, func(fb *FrameBlock) bool {
		return fb.Frame > frame
	})
}

// RemoveConvarsFromRange removes the named convar from every block whose
// frame lies in [minFrame, maxFrame].
func (s *Script) RemoveConvarsFromRange(name string, minFrame, maxFrame int) {
	for i := range s.Blocks {
		if s.Blocks[i].Frame >= minFrame && s.Blocks[i].Frame <= maxFrame {
			s.Blocks[i].Convars.Delete(name)
		}
	}
}

// RemoveTogglesFromRange removes the named toggle from every block whose
// frame lies in [minFrame, maxFrame].
func (s *Script) RemoveTogglesFromRange(name string, minFrame, maxFrame int) {
	for i := range s.Blocks {
		if s.Blocks[i].Frame >= minFrame && s.Blocks[i].Frame <= maxFrame {
			s.Blocks[i].Toggles.Delete(name)
		}
	}
}

func removeIf(blocks []FrameBlock, pred func(*FrameBlock) bool) []FrameBlock {
	out := blocks[:0]
	for i := range blocks {
		if !pred(&blocks[i]) {
			out = append(out, blocks[i])
		}
	}

	return out
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Insertion
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// blockForFrame returns the block on exactly frame, creating and inserting
// a fresh one in order when absent.
func (s *Script) blockForFrame(frame int) *FrameBlock {
	i := s.BlockIndexForFrame(frame)
	if i < len(s.Blocks) && s.Blocks[i].Frame == frame {
		return &s.Blocks[i]
	}
	fb := FrameBlock{Frame: frame, Parsed: true}
	s.Blocks = append(s.Blocks, FrameBlock{})
	copy(s.Blocks[i+1:], s.Blocks[i:])
	s.Blocks[i] = fb

	return &s.Blocks[i]
}

// AddConvar sets name=value on the block at frame, creating the block when
// needed. Returns true when the script content changed.
func (s *Script) AddConvar(name string, value float64, frame int) bool {
	fb := s.blockForFrame(frame)
	if fb.HasConvarValue(name, value) {
		return false
	}
	fb.Convars.Set(name, value)

	return true
}

// AddToggle sets the named toggle on the block at frame.
func (s *Script) AddToggle(name string, state bool, frame int) bool {
	fb := s.blockForFrame(frame)
	if fb.HasToggleValue(name, state) {
		return false
	}
	fb.Toggles.Set(name, state)

	return true
}

// AddCommand appends a raw command to the block at frame.
func (s *Script) AddCommand(cmd string, frame int) {
	s.blockForFrame(frame).AddCommand(cmd)
}

// AddScript truncates the receiver at frame and splices in a copy of other
// with all its frames rebased by +frame.
func (s *Script) AddScript(other *Script, frame int) {
	keep := 0
	for keep < len(s.Blocks) && s.Blocks[keep].Frame < frame {
		keep++
	}
	s.Blocks = s.Blocks[:keep]

	for i := range other.Blocks {
		fb := other.Blocks[i].Clone()
		fb.Frame += frame
		s.Blocks = append(s.Blocks, fb)
	}
}

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Shots
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// AddShot places a scripted view turn: pitch/yaw overrides at frame and the
// matching clearing pair turnFrames later. Returns true when any block's
// contents changed.
func (s *Script) AddShot(pitch, yaw float64, frame, turnFrames int) bool {
	changed := s.AddConvar(ConvarViewPitch, pitch, frame)
	changed = s.AddConvar(ConvarViewYaw, yaw, frame) || changed
	changed = s.AddConvar(ConvarViewPitch, InvalidAngle, frame+turnFrames) || changed
	changed = s.AddConvar(ConvarViewYaw, InvalidAngle, frame+turnFrames) || changed

	return changed
}

// RemoveShot removes the view-override pair from [frame, frame+turnFrames]
// and prunes any blocks the removal emptied.
func (s *Script) RemoveShot(frame, turnFrames int) {
	s.RemoveConvarsFromRange(ConvarViewPitch, frame, frame+turnFrames)
	s.RemoveConvarsFromRange(ConvarViewYaw, frame, frame+turnFrames)
	s.Prune(frame, frame+turnFrames)
}
