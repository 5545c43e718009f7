// Package script - text-form parsing.
//
// Grammar (see doc.go): frame headers "(+)?<digits>:", tab/space-trimmed
// body lines classified as convar assignment, toggle, or raw command; "//"
// starts a line comment. A header without '+' restarts absolute frame
// counting; with '+' the number is a delta on the running frame.
package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// stripLine removes a trailing "//" comment and surrounding whitespace.
func stripLine(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}

	return strings.TrimSpace(line)
}

// isFrameNumber reports whether the line is a frame header.
func isFrameNumber(line string) bool { return frameNoRe.MatchString(line) }

// isConvarLine reports whether the line is a convar assignment: it must
// match the assignment shape AND name a convar the host recognizes.
func isConvarLine(line string, hooks *Hooks) bool {
	m := convarRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}

	return hooks.isConvar(m[1])
}

// isToggleLine reports whether the line is a "+name" / "-name" toggle.
func isToggleLine(line string) bool { return toggleRe.MatchString(line) }

// parseFrameNo applies a frame header to the block and advances the running
// frame counter.
func (fb *FrameBlock) parseFrameNo(line string, runningFrame *int) error {
	m := frameNoRe.FindStringSubmatch(line)
	// Absolute header (no '+') restarts the running count.
	if m[1] == "" {
		*runningFrame = 0
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return fmt.Errorf("%w: frame number %q: %v", ErrParse, m[2], err)
	}
	fb.Frame = n + *runningFrame
	*runningFrame = fb.Frame
	fb.Parsed = true

	return nil
}

// parseConvar applies a convar assignment line to the block.
func (fb *FrameBlock) parseConvar(line string) error {
	m := convarRe.FindStringSubmatch(line)
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return fmt.Errorf("%w: convar value %q: %v", ErrParse, m[2], err)
	}
	fb.Convars.Set(m[1], v)

	return nil
}

// parseToggle applies a toggle line to the block.
func (fb *FrameBlock) parseToggle(line string) {
	m := toggleRe.FindStringSubmatch(line)
	fb.Toggles.Set(m[2], m[1] == "+")
}

// parseLine classifies and applies one stripped line.
func (fb *FrameBlock) parseLine(line string, runningFrame *int, hooks *Hooks) error {
	switch {
	case line == "":
		return nil
	case isFrameNumber(line):
		return fb.parseFrameNo(line, runningFrame)
	case isConvarLine(line, hooks):
		return fb.parseConvar(line)
	case isToggleLine(line):
		fb.parseToggle(line)

		return nil
	default:
		fb.AddCommand(line)

		return nil
	}
}

// parse consumes the whole reader into s.Blocks. Malformed lines are logged
// with their line number and the block under construction is skipped; the
// first such error is returned after the pass (wrapping ErrParse), per the
// skip-and-report loading policy.
func (s *Script) parse(r io.Reader, hooks *Hooks) error {
	var (
		fb           FrameBlock
		runningFrame int
		lineNumber   int
		firstErr     error
		skipping     bool
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNumber++
		line := stripLine(sc.Text())

		if isFrameNumber(line) {
			if fb.Parsed && !skipping {
				s.Blocks = append(s.Blocks, fb.Clone())
			}
			fb.Reset()
			skipping = false
		}

		if skipping {
			continue
		}
		if err := fb.parseLine(line, &runningFrame, hooks); err != nil {
			hooks.logf("error parsing line %d: %v\n", lineNumber, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("line %d: %w", lineNumber, err)
			}
			// Drop the offending block; resume at the next frame header.
			skipping = true
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	if fb.Parsed && !skipping {
		s.Blocks = append(s.Blocks, fb.Clone())
	}

	return firstErr
}

// ParseString loads the script from its in-memory text form, replacing any
// existing blocks.
func (s *Script) ParseString(input string, hooks *Hooks) error {
	s.Blocks = s.Blocks[:0]
	s.prevBlockNumber = 0

	return s.parse(strings.NewReader(input), hooks)
}

// Load reads and parses s.FileName. On success the block count is logged
// through the host hook.
func (s *Script) Load(hooks *Hooks) error {
	f, err := os.Open(s.FileName)
	if err != nil {
		hooks.logf("unable to open script %s\n", s.FileName)

		return fmt.Errorf("%w: %s: %v", ErrOpen, s.FileName, err)
	}
	defer f.Close()

	s.Blocks = s.Blocks[:0]
	s.prevBlockNumber = 0
	if err = s.parse(f, hooks); err != nil {
		return err
	}
	hooks.logf("script %s loaded with %d blocks\n", s.FileName, len(s.Blocks))

	return nil
}
