// Package script_test verifies the text grammar: parsing, emission, and
// the round-trip invariant.
package script_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tasopt/script"
)

// permissiveHooks accepts every convar name and drops logs.
var permissiveHooks = &script.Hooks{}

// TestParseBasicScript parses headers, convars, toggles, and commands.
func TestParseBasicScript(t *testing.T) {
	text := "+0:\n" +
		"\ttas_strafe 1\n" +
		"\ttas_strafe_yaw 0\n" +
		"\t+jump\n" +
		"\techo start\n" +
		"+100:\n" +
		"\ttas_strafe_yaw 90.5\n" +
		"\t-jump\n"

	var s script.Script
	require.NoError(t, s.ParseString(text, permissiveHooks))
	require.Equal(t, 2, len(s.Blocks))

	b0 := &s.Blocks[0]
	require.Equal(t, 0, b0.Frame)
	require.True(t, b0.HasConvarValue("tas_strafe", 1))
	require.True(t, b0.HasConvarValue("tas_strafe_yaw", 0))
	require.True(t, b0.HasToggleValue("jump", true))
	require.Equal(t, []string{"echo start"}, b0.Commands)

	b1 := &s.Blocks[1]
	require.Equal(t, 100, b1.Frame)
	require.True(t, b1.HasConvarValue("tas_strafe_yaw", 90.5))
	require.True(t, b1.HasToggleValue("jump", false))
}

// TestParseRelativeAndAbsoluteHeaders verifies '+' headers accumulate and
// bare headers restart the absolute count.
func TestParseRelativeAndAbsoluteHeaders(t *testing.T) {
	text := "+10:\n\ttas_strafe 1\n" +
		"+5:\n\ttas_strafe 0\n" +
		"20:\n\ttas_strafe 1\n" +
		"+3:\n\ttas_strafe 0\n"

	var s script.Script
	require.NoError(t, s.ParseString(text, permissiveHooks))
	require.Equal(t, 4, len(s.Blocks))
	require.Equal(t, 10, s.Blocks[0].Frame)
	require.Equal(t, 15, s.Blocks[1].Frame)
	require.Equal(t, 20, s.Blocks[2].Frame)
	require.Equal(t, 23, s.Blocks[3].Frame)
}

// TestParseCommentsAndQuotedValues verifies "//" comments vanish and
// quoted convar values parse.
func TestParseCommentsAndQuotedValues(t *testing.T) {
	text := "// leading comment\n" +
		"+0: // trailing comment\n" +
		"\ttas_strafe_yaw \"-12.5\"\n" +
		"\t// whole-line comment\n"

	var s script.Script
	require.NoError(t, s.ParseString(text, permissiveHooks))
	require.Equal(t, 1, len(s.Blocks))
	require.True(t, s.Blocks[0].HasConvarValue("tas_strafe_yaw", -12.5))
}

// TestParseUnknownConvarBecomesCommand verifies the host predicate: a line
// shaped like an assignment but naming no known convar is a raw command.
func TestParseUnknownConvarBecomesCommand(t *testing.T) {
	hooks := &script.Hooks{
		IsConvar: func(name string) bool { return name == "tas_strafe" },
	}
	text := "+0:\n\ttas_strafe 1\n\tvolume 0.5\n"

	var s script.Script
	require.NoError(t, s.ParseString(text, hooks))
	b := &s.Blocks[0]
	require.True(t, b.HasConvarValue("tas_strafe", 1))
	require.False(t, b.HasConvar("volume"))
	require.Equal(t, []string{"volume 0.5"}, b.Commands)
}

// TestRoundTrip is the core invariant: parse(emit(S)) == S field-wise.
// The host predicate recognizes only tas_* names, so numeric commands
// like "impulse 7" stay commands on the way back in.
func TestRoundTrip(t *testing.T) {
	hooks := &script.Hooks{
		IsConvar: func(name string) bool { return strings.HasPrefix(name, "tas_") },
	}

	src := script.NewScript("roundtrip.qtas")
	src.AddConvar("tas_strafe", 1, 0)
	src.AddConvar("tas_strafe_yaw", 0, 0)
	src.AddToggle("jump", true, 0)
	src.AddCommand("echo begin", 0)
	src.AddConvar("tas_strafe_yaw", 88.25, 50)
	src.AddToggle("attack", false, 50)
	src.AddShot(-12.5, 170, 60, 6)
	src.AddCommand("impulse 7", 90)

	text := src.String()

	var dst script.Script
	require.NoError(t, dst.ParseString(text, hooks))
	require.True(t, src.Equal(&dst), "round-trip mismatch:\n%s", text)

	// A second trip must be byte-stable too.
	require.Equal(t, text, dst.String())
}

// TestEmitOrdering verifies per-block emission order: convars first in
// insertion order, then toggles, then commands.
func TestEmitOrdering(t *testing.T) {
	s := script.NewScript("order.qtas")
	s.AddCommand("echo first", 0)
	s.AddToggle("jump", true, 0)
	s.AddConvar("zeta", 1, 0)
	s.AddConvar("alpha", 2, 0)

	want := "+0:\n\tzeta 1\n\talpha 2\n\t+jump\n\techo first\n"
	require.Equal(t, want, s.String())
}

// TestEmitDeltaHeaders verifies frame gaps, not absolutes, after the
// first block.
func TestEmitDeltaHeaders(t *testing.T) {
	s := script.NewScript("delta.qtas")
	s.AddConvar("a", 1, 10)
	s.AddConvar("b", 2, 25)

	text := s.String()
	require.True(t, strings.HasPrefix(text, "+10:\n"), "first header is the absolute frame: %q", text)
	require.Contains(t, text, "+15:\n", "second header is the gap")
}

// TestParseMalformedValueSkipsBlock verifies the skip-and-report policy: a
// line with an unparsable value (here the frame number of a header) poisons
// its block, later blocks still load, and the error wraps ErrParse.
func TestParseMalformedValueSkipsBlock(t *testing.T) {
	// 99999999999999999999 overflows int and fails the frame parse.
	text := "+0:\n\ttas_strafe 1\n" +
		"99999999999999999999:\n\ttas_strafe 0\n" +
		"+50:\n\ttas_strafe_yaw 45\n"

	var s script.Script
	err := s.ParseString(text, permissiveHooks)
	require.ErrorIs(t, err, script.ErrParse)

	// Block 0 and the block after the damaged one both survive.
	require.Equal(t, 2, len(s.Blocks))
	require.Equal(t, 0, s.Blocks[0].Frame)
	require.True(t, s.Blocks[1].HasConvarValue("tas_strafe_yaw", 45))
}

// TestParseEmptyInput yields an empty script and no error.
func TestParseEmptyInput(t *testing.T) {
	var s script.Script
	require.NoError(t, s.ParseString("", permissiveHooks))
	require.Empty(t, s.Blocks)
}
