//go:build darwin

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// fileTimes returns the access and modification times of the file.
func fileTimes(info os.FileInfo) (atime, mtime time.Time) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Atimespec.Sec), int64(st.Atimespec.Nsec)), info.ModTime()
	}
	return info.ModTime(), info.ModTime()
}
