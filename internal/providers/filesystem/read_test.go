package filesystem

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/probeworks/hostagent/internal/infrastructure/config"
	"github.com/probeworks/hostagent/internal/shared/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ceilingProvider returns a provider whose effective ceiling is limit
// regardless of file ownership.
func ceilingProvider(t *testing.T, limit uint64) *Provider {
	t.Helper()
	return testProvider(t, func(cfg *config.Config) {
		cfg.Read.MaxBytes = limit
		cfg.Read.MaxUserBytes = limit
	})
}

func TestReadFileFullContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	content := bytes.Repeat([]byte("abcdefgh"), 128)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	p := testProvider(t, nil)
	got, err := p.ReadFileString(path)

	require.NoError(t, err)
	assert.Equal(t, string(content), got)
}

func TestReadFileBelowCeiling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 63), 0o600))

	p := ceilingProvider(t, 64)
	got, err := p.ReadFileString(path)

	require.NoError(t, err)
	assert.Len(t, got, 63)
}

func TestReadFileAtCeiling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exact")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 64), 0o600))

	p := ceilingProvider(t, 64)
	delivered := false
	err := p.ReadFile(path, ReadOptions{}, func([]byte) { delivered = true })

	assert.ErrorIs(t, err, ErrResourceLimit)
	assert.False(t, delivered, "no partial content through the single-shot path")
}

func TestReadFileAboveCeiling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 100), 0o600))

	p := ceilingProvider(t, 64)
	_, err := p.ReadFileString(path)

	assert.ErrorIs(t, err, ErrResourceLimit)
}

func TestReadFileNotFound(t *testing.T) {
	p := testProvider(t, nil)
	_, err := p.ReadFileString(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadDirectoryRefused(t *testing.T) {
	p := testProvider(t, nil)
	_, err := p.ReadFileString(t.TempDir())
	assert.ErrorIs(t, err, ErrIsADirectory)
}

func TestReadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := testProvider(t, nil)
	got, err := p.ReadFileString(path)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckReadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checked")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	p := testProvider(t, nil)
	canonical, err := p.CheckReadable(path)

	require.NoError(t, err)
	want, err := paths.Canonicalize(path)
	require.NoError(t, err)
	assert.Equal(t, want, canonical)
}

func TestCheckReadableEnforcesCeiling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oversized")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 100), 0o600))

	p := ceilingProvider(t, 64)
	_, err := p.CheckReadable(path)

	assert.ErrorIs(t, err, ErrResourceLimit)
}

func TestCheckReadableReadsNoContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "untouched")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	p := testProvider(t, nil)
	err := p.ReadFile(path, ReadOptions{DryRun: true}, func([]byte) {
		t.Fatal("dry run must not deliver content")
	})
	require.NoError(t, err)
}

func TestForensicReadPreservesTimes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evidence")
	require.NoError(t, os.WriteFile(path, []byte("do not disturb"), 0o600))

	past := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	p := testProvider(t, func(cfg *config.Config) {
		cfg.Safety.DisableForensic = false
	})
	content, err := p.ForensicReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "do not disturb", content)

	info, err := os.Stat(path)
	require.NoError(t, err)
	atime, mtime := fileTimes(info)
	assert.WithinDuration(t, past, mtime, time.Second)
	assert.WithinDuration(t, past, atime, time.Second)
}

func TestReadPolicyLimitFor(t *testing.T) {
	policy := ReadPolicy{MaxBytes: 100, MaxUserBytes: 10}

	assert.Equal(t, uint64(100), policy.LimitFor(true))
	assert.Equal(t, uint64(10), policy.LimitFor(false))

	// A misconfigured user ceiling never raises the effective limit.
	inverted := ReadPolicy{MaxBytes: 10, MaxUserBytes: 100}
	assert.Equal(t, uint64(10), inverted.LimitFor(false))
}
