package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Well-known shared scratch roots, treated as temp-like regardless of
// their mode bits.
var tempRoots = []string{
	"/tmp",
	"/var/tmp",
	"/dev/shm",
}

// HomeShorthand is the prefix marking a pattern as home-relative. Patterns
// starting with it are deliberately not expanded by this layer.
const HomeShorthand = "~"

// Exists reports whether the path exists, following symlinks.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Accessible reports whether the path can be stat-ed at all. It is false
// for missing paths, permission failures, and symlink loops alike.
func Accessible(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory reports whether the path exists and is a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Canonicalize resolves the path to its absolute, symlink-resolved,
// normalized form. It fails when any component does not exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// IsHomeShorthand reports whether the pattern starts with the
// home-directory marker.
func IsHomeShorthand(pattern string) bool {
	return strings.HasPrefix(pattern, HomeShorthand)
}

// IsTempLike reports whether dir is a shared scratch directory: a
// world-writable directory, or one of the well-known temp roots themselves
// (their subtrees are judged by their own mode bits).
//
// The error return distinguishes "could not stat dir" from "dir exists but
// is not temp-like"; callers that gate trust must treat the former as a
// refusal, not a pass.
func IsTempLike(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}

	// Anyone-can-write disqualifies on its own; the sticky bit only governs
	// deletion and does not make a world-writable directory trustworthy.
	// A 0700 subdirectory under /tmp is not itself temp-like.
	if info.Mode().Perm()&0o002 != 0 {
		return true, nil
	}

	clean := filepath.Clean(dir)
	for _, root := range tempRoots {
		if clean == root {
			return true, nil
		}
	}
	return false, nil
}

// SystemRoot returns the filesystem root for this platform.
func SystemRoot() string {
	if vol := filepath.VolumeName(os.Getenv("SYSTEMROOT")); vol != "" {
		return vol + string(os.PathSeparator)
	}
	return string(os.PathSeparator)
}
