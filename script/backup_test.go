// Package script_test verifies file I/O: saving, loading, and the rotating
// backup policy.
package script_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tasopt/script"
)

// hooksWithBackups returns hooks keeping n rotating backups.
func hooksWithBackups(n int) *script.Hooks {
	return &script.Hooks{NumBackups: func() int { return n }}
}

// saveWithYaw writes a one-block script with the given yaw to path.
func saveWithYaw(t *testing.T, path string, yaw float64, hooks *script.Hooks) {
	t.Helper()
	s := script.NewScript(path)
	s.AddConvar("tas_strafe_yaw", yaw, 0)
	require.NoError(t, s.Save(hooks))
}

// readFile returns the file's contents as a string.
func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(b)
}

// TestBackupRotation checks the documented policy: three saves under N=3
// yield the file plus two backups, newest content in the main file.
func TestBackupRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.qtas")
	hooks := hooksWithBackups(3)

	saveWithYaw(t, path, 1, hooks)
	saveWithYaw(t, path, 2, hooks)
	saveWithYaw(t, path, 3, hooks)

	require.FileExists(t, path)
	require.FileExists(t, filepath.Join(dir, "x-0.qtas"))
	require.FileExists(t, filepath.Join(dir, "x-1.qtas"))
	require.NoFileExists(t, filepath.Join(dir, "x-2.qtas"))

	require.Contains(t, readFile(t, path), "tas_strafe_yaw 3")
	require.Contains(t, readFile(t, filepath.Join(dir, "x-0.qtas")), "tas_strafe_yaw 2")
	require.Contains(t, readFile(t, filepath.Join(dir, "x-1.qtas")), "tas_strafe_yaw 1")
}

// TestBackupRotationDropsOldest verifies the oldest slot is recycled once
// every slot is occupied.
func TestBackupRotationDropsOldest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.qtas")
	hooks := hooksWithBackups(2)

	for yaw := 1.0; yaw <= 4; yaw++ {
		saveWithYaw(t, path, yaw, hooks)
	}

	// Slots: file=4, -0=3, -1=2; the yaw-1 save fell off the end.
	require.Contains(t, readFile(t, path), "tas_strafe_yaw 4")
	require.Contains(t, readFile(t, filepath.Join(dir, "x-0.qtas")), "tas_strafe_yaw 3")
	require.Contains(t, readFile(t, filepath.Join(dir, "x-1.qtas")), "tas_strafe_yaw 2")
	require.NoFileExists(t, filepath.Join(dir, "x-2.qtas"))
}

// TestSaveWithoutBackups overwrites in place under the default hooks.
func TestSaveWithoutBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.qtas")

	saveWithYaw(t, path, 1, permissiveHooks)
	saveWithYaw(t, path, 2, permissiveHooks)

	require.Contains(t, readFile(t, path), "tas_strafe_yaw 2")
	require.NoFileExists(t, filepath.Join(dir, "plain-0.qtas"))
}

// TestSaveEmptyScriptRefused verifies the empty-script guard.
func TestSaveEmptyScriptRefused(t *testing.T) {
	s := script.NewScript(filepath.Join(t.TempDir(), "empty.qtas"))
	require.ErrorIs(t, s.Save(permissiveHooks), script.ErrEmptyScript)
}

// TestLoadRoundTripThroughDisk saves and reloads a script through a real
// file.
func TestLoadRoundTripThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.qtas")

	src := script.NewScript(path)
	src.AddConvar("tas_strafe", 1, 0)
	src.AddConvar("tas_strafe_yaw", 33.5, 40)
	src.AddToggle("jump", true, 40)
	require.NoError(t, src.Save(permissiveHooks))

	dst := script.NewScript(path)
	require.NoError(t, dst.Load(permissiveHooks))
	require.True(t, src.Equal(dst))
}

// TestLoadMissingFile surfaces ErrOpen.
func TestLoadMissingFile(t *testing.T) {
	s := script.NewScript(filepath.Join(t.TempDir(), "missing.qtas"))
	require.ErrorIs(t, s.Load(permissiveHooks), script.ErrOpen)
}
