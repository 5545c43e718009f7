// Package script - test scripts: hook-triggered command blocks used by the
// host's regression harness.
package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Hook selects when a test block's command fires.
type Hook int

const (
	// HookFrame fires like a normal command right after the previous one.
	HookFrame Hook = iota
	// HookLevelChange fires when a level change has completed.
	HookLevelChange
	// HookScriptCompleted fires when the script run has completed.
	HookScriptCompleted
)

// testBlockRe matches one serialized test block:
// hook char, hook count, 4-bit filter, command - tab separated.
var testBlockRe = regexp.MustCompile(`^([fls])\t([0-9]+)\t([01]{4})\t([^\n]*)$`)

// TestBlock is one hook-triggered command with an afterframes filter mask.
type TestBlock struct {
	Hook             Hook
	HookCount        int
	AfterframesFilter uint
	Command          string
}

// ParseTestBlock parses the tab-separated line form. The four filter
// characters map to mask bits 1<<(4-i) for i in [0,4).
func ParseTestBlock(line string) (TestBlock, error) {
	m := testBlockRe.FindStringSubmatch(line)
	if m == nil {
		return TestBlock{}, fmt.Errorf("%w: %q", ErrBadTestBlock, line)
	}

	var tb TestBlock
	switch m[1][0] {
	case 'f':
		tb.Hook = HookFrame
	case 'l':
		tb.Hook = HookLevelChange
	case 's':
		tb.Hook = HookScriptCompleted
	}

	n, err := strconv.Atoi(m[2])
	if err != nil || n < 0 {
		return TestBlock{}, fmt.Errorf("%w: hook count %q", ErrBadTestBlock, m[2])
	}
	tb.HookCount = n

	for i := 0; i < 4; i++ {
		if m[3][i] == '1' {
			tb.AfterframesFilter |= 1 << (4 - i)
		}
	}
	tb.Command = m[4]

	return tb, nil
}

// String renders the block back into its line form (without newline).
func (tb TestBlock) String() string {
	var sb strings.Builder
	switch tb.Hook {
	case HookFrame:
		sb.WriteByte('f')
	case HookLevelChange:
		sb.WriteByte('l')
	case HookScriptCompleted:
		sb.WriteByte('s')
	}
	fmt.Fprintf(&sb, "\t%d\t", tb.HookCount)
	for i := 0; i < 4; i++ {
		if tb.AfterframesFilter&(1<<(4-i)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte('\t')
	sb.WriteString(tb.Command)

	return sb.String()
}

// TestScript is a named sequence of test blocks with a one-line description
// (the first line of the file) and an exit block run after the test ends.
type TestScript struct {
	Blocks      []TestBlock
	ExitBlock   TestBlock
	FileName    string
	Description string
}

// NewTestScript returns an empty test bound to the given file name.
func NewTestScript(fileName string) *TestScript {
	return &TestScript{FileName: fileName}
}

func (ts *TestScript) parse(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNumber := 0
	for sc.Scan() {
		line := stripLine(sc.Text())
		if lineNumber == 0 {
			ts.Description = line
		} else if line != "" {
			tb, err := ParseTestBlock(line)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNumber+1, err)
			}
			ts.Blocks = append(ts.Blocks, tb)
		}
		lineNumber++
	}

	return sc.Err()
}

// Load reads and parses ts.FileName.
func (ts *TestScript) Load(hooks *Hooks) error {
	f, err := os.Open(ts.FileName)
	if err != nil {
		hooks.logf("unable to open test %s\n", ts.FileName)

		return fmt.Errorf("%w: %s: %v", ErrOpen, ts.FileName, err)
	}
	defer f.Close()

	ts.Blocks = ts.Blocks[:0]
	if err = ts.parse(f); err != nil {
		hooks.logf("error parsing test %s: %v\n", ts.FileName, err)

		return err
	}
	hooks.logf("test %s loaded with %d blocks\n", ts.FileName, len(ts.Blocks))

	return nil
}

// Save writes the description line followed by every block.
func (ts *TestScript) Save(hooks *Hooks) error {
	if len(ts.Blocks) == 0 {
		hooks.logf("cannot write an empty test to file\n")

		return ErrEmptyScript
	}

	var sb strings.Builder
	sb.WriteString(ts.Description)
	sb.WriteByte('\n')
	for _, tb := range ts.Blocks {
		sb.WriteString(tb.String())
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(ts.FileName, []byte(sb.String()), 0o644); err != nil {
		hooks.logf("unable to write to %s\n", ts.FileName)

		return fmt.Errorf("%w: %s: %v", ErrOpen, ts.FileName, err)
	}
	hooks.logf("wrote test to file %s\n", ts.FileName)

	return nil
}
