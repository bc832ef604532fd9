//go:build !linux && !darwin

package filesystem

import (
	"os"
	"time"
)

// fileTimes falls back to the modification time where the platform does not
// expose access times through stat.
func fileTimes(info os.FileInfo) (atime, mtime time.Time) {
	return info.ModTime(), info.ModTime()
}
