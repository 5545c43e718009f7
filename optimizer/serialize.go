// Package optimizer - binary serialization of runs and settings over the
// tasio buffer interfaces. The wire layout of each object is exactly its
// sequence of field writes; reader and writer must stay field-for-field
// symmetric.
package optimizer

import (
	"github.com/golang/geo/r3"

	"github.com/katalvlaran/tasopt/script"
	"github.com/katalvlaran/tasopt/tasio"
)

// WriteToBuffer serializes the run: score, the producing script in its
// text form, the outcome flags and times, the telemetry, and the counters.
func (r *Run) WriteToBuffer(w tasio.Writer) {
	w.WriteFloat64(r.Efficacy)
	w.WriteString(r.Playback.Script.String())
	w.WriteBool(r.FinishedLevel)
	w.WriteBool(r.Died)
	w.WriteFloat64(r.LevelTime)
	w.WriteFloat64(r.TeleportTime)

	w.WriteUint32(uint32(len(r.Frames)))
	for i := range r.Frames {
		w.WriteFloat64(r.Frames[i].Pos.X)
		w.WriteFloat64(r.Frames[i].Pos.Y)
		w.WriteFloat64(r.Frames[i].Pos.Z)
		w.WriteFloat64(r.Frames[i].VelTheta)
	}

	w.WriteUint32(r.Kills)
	w.WriteUint32(r.Secrets)
	w.WriteUint32(r.CenterPrints)
	w.WriteFloat32(r.HP)
	w.WriteFloat32(r.AP)
}

// ReadFromBuffer deserializes a run written by WriteToBuffer. The script
// text is reparsed through the host hooks.
func (r *Run) ReadFromBuffer(rd tasio.Reader, hooks *script.Hooks) error {
	var err error
	if r.Efficacy, err = rd.ReadFloat64(); err != nil {
		return err
	}

	var text string
	if text, err = rd.ReadString(); err != nil {
		return err
	}
	if err = r.Playback.Script.ParseString(text, hooks); err != nil {
		return err
	}

	if r.FinishedLevel, err = rd.ReadBool(); err != nil {
		return err
	}
	if r.Died, err = rd.ReadBool(); err != nil {
		return err
	}
	if r.LevelTime, err = rd.ReadFloat64(); err != nil {
		return err
	}
	if r.TeleportTime, err = rd.ReadFloat64(); err != nil {
		return err
	}

	var count uint32
	if count, err = rd.ReadUint32(); err != nil {
		return err
	}
	r.Frames = r.Frames[:0]
	for i := uint32(0); i < count; i++ {
		var fd FrameData
		if fd.Pos.X, err = rd.ReadFloat64(); err != nil {
			return err
		}
		if fd.Pos.Y, err = rd.ReadFloat64(); err != nil {
			return err
		}
		if fd.Pos.Z, err = rd.ReadFloat64(); err != nil {
			return err
		}
		if fd.VelTheta, err = rd.ReadFloat64(); err != nil {
			return err
		}
		r.Frames = append(r.Frames, fd)
	}

	if r.Kills, err = rd.ReadUint32(); err != nil {
		return err
	}
	if r.Secrets, err = rd.ReadUint32(); err != nil {
		return err
	}
	if r.CenterPrints, err = rd.ReadUint32(); err != nil {
		return err
	}
	if r.HP, err = rd.ReadFloat32(); err != nil {
		return err
	}
	if r.AP, err = rd.ReadFloat32(); err != nil {
		return err
	}

	return nil
}

// WriteToBuffer serializes the settings bundle.
func (s *Settings) WriteToBuffer(w tasio.Writer) {
	w.WriteInt32(int32(s.Goal))
	w.WriteUint32(s.ResetToBestIterations)
	w.WriteUint32(s.GiveUpAfterNoProgress)
	w.WriteInt32(s.EndOffset)
	w.WriteInt32(s.Frames)

	w.WriteUint32(uint32(len(s.Algorithms)))
	for _, id := range s.Algorithms {
		w.WriteInt32(int32(id))
	}

	w.WriteUint32(uint32(len(s.InputNodes)))
	for _, node := range s.InputNodes {
		w.WriteFloat64(node.X)
		w.WriteFloat64(node.Y)
		w.WriteFloat64(node.Z)
	}

	w.WriteBool(s.SecondaryGoals)
	w.WriteBool(s.UseNodes)
}

// ReadFromBuffer deserializes settings written by WriteToBuffer.
func (s *Settings) ReadFromBuffer(rd tasio.Reader) error {
	var err error
	var goal int32
	if goal, err = rd.ReadInt32(); err != nil {
		return err
	}
	s.Goal = Goal(goal)

	if s.ResetToBestIterations, err = rd.ReadUint32(); err != nil {
		return err
	}
	if s.GiveUpAfterNoProgress, err = rd.ReadUint32(); err != nil {
		return err
	}
	if s.EndOffset, err = rd.ReadInt32(); err != nil {
		return err
	}
	if s.Frames, err = rd.ReadInt32(); err != nil {
		return err
	}

	var count uint32
	if count, err = rd.ReadUint32(); err != nil {
		return err
	}
	s.Algorithms = s.Algorithms[:0]
	for i := uint32(0); i < count; i++ {
		var id int32
		if id, err = rd.ReadInt32(); err != nil {
			return err
		}
		s.Algorithms = append(s.Algorithms, AlgorithmID(id))
	}

	if count, err = rd.ReadUint32(); err != nil {
		return err
	}
	s.InputNodes = s.InputNodes[:0]
	for i := uint32(0); i < count; i++ {
		var node r3.Vector
		if node.X, err = rd.ReadFloat64(); err != nil {
			return err
		}
		if node.Y, err = rd.ReadFloat64(); err != nil {
			return err
		}
		if node.Z, err = rd.ReadFloat64(); err != nil {
			return err
		}
		s.InputNodes = append(s.InputNodes, node)
	}

	if s.SecondaryGoals, err = rd.ReadBool(); err != nil {
		return err
	}
	if s.UseNodes, err = rd.ReadBool(); err != nil {
		return err
	}

	return nil
}
