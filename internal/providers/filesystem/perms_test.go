package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/probeworks/hostagent/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWithMode(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o600))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

// scratchDir creates a sticky, world-writable directory: the signature of a
// shared temp location.
func scratchDir(t *testing.T, parent string) string {
	t.Helper()
	dir := filepath.Join(parent, "scratch")
	require.NoError(t, os.Mkdir(dir, 0o777))
	require.NoError(t, os.Chmod(dir, os.ModeSticky|0o777))
	return dir
}

func TestSafePermissionsRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := writeWithMode(t, dir, "module.so", 0o600)

	p := testProvider(t, nil)
	assert.True(t, p.SafePermissions(dir, path, false))
}

func TestSafePermissionsExecutable(t *testing.T) {
	dir := t.TempDir()
	path := writeWithMode(t, dir, "plugin", 0o700)

	p := testProvider(t, nil)
	assert.True(t, p.SafePermissions(dir, path, true))
}

func TestSafePermissionsMissingPath(t *testing.T) {
	dir := t.TempDir()
	p := testProvider(t, nil)
	assert.False(t, p.SafePermissions(dir, filepath.Join(dir, "missing"), false))
}

func TestSafePermissionsTempDir(t *testing.T) {
	base := t.TempDir()
	scratch := scratchDir(t, base)
	path := writeWithMode(t, scratch, "planted.so", 0o600)

	p := testProvider(t, nil)
	assert.False(t, p.SafePermissions(scratch, path, false),
		"otherwise-valid file in a shared scratch directory must be rejected")
}

func TestSafePermissionsDirStatFailure(t *testing.T) {
	base := t.TempDir()
	path := writeWithMode(t, base, "real", 0o600)

	p := testProvider(t, nil)
	// Unable to determine the containing directory's nature: no trust.
	assert.False(t, p.SafePermissions(filepath.Join(base, "gone"), path, false))
}

func TestSafePermissionsDirectoryPath(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	p := testProvider(t, nil)
	assert.False(t, p.SafePermissions(base, sub, false))
}

func TestSafePermissionsGroupWritableExecutable(t *testing.T) {
	dir := t.TempDir()
	path := writeWithMode(t, dir, "tampered", 0o775)

	p := testProvider(t, nil)
	assert.False(t, p.SafePermissions(dir, path, true),
		"an executable others can modify is unsafe regardless of ownership")

	// Owner-only write with exec bits is fine.
	safe := writeWithMode(t, dir, "clean", 0o755)
	assert.True(t, p.SafePermissions(dir, safe, true))
}

func TestSafePermissionsNotExecutable(t *testing.T) {
	dir := t.TempDir()
	path := writeWithMode(t, dir, "data", 0o600)

	p := testProvider(t, nil)
	assert.False(t, p.SafePermissions(dir, path, true))
}

func TestSafePermissionsAllowUnsafe(t *testing.T) {
	base := t.TempDir()
	scratch := scratchDir(t, base)
	path := writeWithMode(t, scratch, "planted.so", 0o666)

	p := testProvider(t, func(cfg *config.Config) {
		cfg.Safety.AllowUnsafe = true
	})
	assert.True(t, p.SafePermissions(scratch, path, false))
}

func TestSafePermissionsForeignOwner(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("chown to another user requires root")
	}
	dir := t.TempDir()
	path := writeWithMode(t, dir, "foreign", 0o600)
	require.NoError(t, os.Chown(path, 65534, 65534)) // nobody

	p := testProvider(t, nil)
	assert.False(t, p.SafePermissions(dir, path, false))
}
