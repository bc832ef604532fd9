package filesystem

import (
	"os"

	"github.com/probeworks/hostagent/internal/shared/paths"
	"go.uber.org/zap"
)

// SafePermissions decides whether path may be trusted as loadable content.
// dir is the directory the path was discovered in, and requireExecutable
// additionally demands an owner-executable file that nobody else can write.
//
// The checks run in order and the first failure wins; uncertainty never
// becomes trust, so any check that cannot be determined counts as unsafe.
func (p *Provider) SafePermissions(dir, path string, requireExecutable bool) bool {
	// The path must be real: stat-able, no symlink loops.
	if !paths.Accessible(path) {
		return p.unsafe(path, "inaccessible")
	}

	if p.allowUnsafe {
		return true
	}

	tempLike, err := paths.IsTempLike(dir)
	if err != nil {
		// Could not stat the containing directory at all. Distinct from
		// the disqualification below: "cannot determine" must not
		// default to trust.
		return p.unsafe(path, "dir_stat")
	}
	if tempLike {
		// Never load from shared scratch directories.
		return p.unsafe(path, "temp_dir")
	}

	// Non-blocking open, so validating a fifo with no writer cannot hang.
	f, err := os.OpenFile(path, openFlags(false), 0)
	if err != nil {
		return p.unsafe(path, "open")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return p.unsafe(path, "stat")
	}
	if info.IsDir() {
		// Only file-like nodes are loadable.
		return p.unsafe(path, "directory")
	}

	if !isOwnerCurrent(info) && !isOwnerRoot(info) {
		// Require matching or root file ownership.
		return p.unsafe(path, "owner")
	}

	if requireExecutable {
		if !isOwnerExecutable(info) || writableByOthers(info) {
			// An executable that others can modify is unsafe regardless
			// of who owns it.
			return p.unsafe(path, "executable")
		}
	}

	return true
}

func (p *Provider) unsafe(path, rule string) bool {
	p.metrics.RecordUnsafeVerdict(rule)
	p.log.Debug("unsafe permissions",
		zap.String("path", path),
		zap.String("rule", rule))
	return false
}

// isOwnerExecutable reports whether the owner execute bit is set.
func isOwnerExecutable(info os.FileInfo) bool {
	return info.Mode().Perm()&0o100 != 0
}

// writableByOthers reports whether group or other write bits are set.
func writableByOthers(info os.FileInfo) bool {
	return info.Mode().Perm()&0o022 != 0
}
