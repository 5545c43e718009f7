// Package script - text-form emission and file saving with backup rotation.
package script

import (
	"fmt"
	"os"
	"strings"
)

// String renders the script in its canonical text form: one "+<delta>:"
// header per block (delta from the previous block; absolute for the first),
// then tab-indented convars, toggles, and commands in insertion order.
// The output parses back into a field-wise equal script.
func (s *Script) String() string {
	var sb strings.Builder
	currentFrame := 0

	for i := range s.Blocks {
		fb := &s.Blocks[i]
		fmt.Fprintf(&sb, "+%d:\n", fb.Frame-currentFrame)
		currentFrame = fb.Frame

		for _, p := range fb.Convars.Pairs() {
			sb.WriteByte('\t')
			sb.WriteString(p.Key)
			sb.WriteByte(' ')
			sb.WriteString(formatFloat(p.Value))
			sb.WriteByte('\n')
		}
		for _, p := range fb.Toggles.Pairs() {
			sb.WriteByte('\t')
			if p.Value {
				sb.WriteByte('+')
			} else {
				sb.WriteByte('-')
			}
			sb.WriteString(p.Key)
			sb.WriteByte('\n')
		}
		for _, cmd := range fb.Commands {
			sb.WriteByte('\t')
			sb.WriteString(cmd)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// backupName returns the rotating backup path for slot k: "name.qtas" with
// slot 3 becomes "name-3.qtas". Slot numbering starts at 0 for the most
// recent backup.
func backupName(fileName string, k int) string {
	ext := ""
	base := fileName
	if i := strings.LastIndexByte(fileName, '.'); i >= 0 {
		base, ext = fileName[:i], fileName[i:]
	}

	return fmt.Sprintf("%s-%d%s", base, k, ext)
}

// rotateBackups shifts existing backups one slot older and moves the current
// file into slot 0. With N backups the files are name-0 … name-(N-1); the
// oldest is deleted. A missing current file is not an error (first save).
func rotateBackups(fileName string, hooks *Hooks) error {
	backups := hooks.numBackups()
	if backups <= 0 {
		return nil
	}

	// Drop the oldest slot if present.
	oldest := backupName(fileName, backups-1)
	if _, err := os.Stat(oldest); err == nil {
		if err = os.Remove(oldest); err != nil {
			hooks.logf("failed to rotate backups for %s: %v\n", fileName, err)

			return fmt.Errorf("%w: %v", ErrBackupRotation, err)
		}
	}

	// Shift name-(k) -> name-(k+1), starting at the oldest remaining slot
	// and working down to slot 0 (the newest).
	for k := backups - 2; k >= 0; k-- {
		from := backupName(fileName, k)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, backupName(fileName, k+1)); err != nil {
			hooks.logf("failed to rotate backups for %s: %v\n", fileName, err)

			return fmt.Errorf("%w: %v", ErrBackupRotation, err)
		}
	}

	// Current file becomes the newest backup.
	if _, err := os.Stat(fileName); err == nil {
		if err = os.Rename(fileName, backupName(fileName, 0)); err != nil {
			hooks.logf("failed to rotate backups for %s: %v\n", fileName, err)

			return fmt.Errorf("%w: %v", ErrBackupRotation, err)
		}
	}

	return nil
}

// Save writes the script to s.FileName, rotating backups first. The text is
// rendered fully before any file is touched, and a rotation failure aborts
// the save with the current file intact.
func (s *Script) Save(hooks *Hooks) error {
	if len(s.Blocks) == 0 {
		hooks.logf("cannot write an empty script to file\n")

		return ErrEmptyScript
	}

	text := s.String()
	if err := rotateBackups(s.FileName, hooks); err != nil {
		return err
	}
	if err := os.WriteFile(s.FileName, []byte(text), 0o644); err != nil {
		hooks.logf("unable to write to %s\n", s.FileName)

		return fmt.Errorf("%w: %s: %v", ErrOpen, s.FileName, err)
	}
	hooks.logf("wrote script to file %s\n", s.FileName)

	return nil
}
