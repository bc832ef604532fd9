//go:build unix

package filesystem

import (
	"os"
	"syscall"
)

// openFlags returns the platform flags for a read-only open. Non-blocking
// is the default so that opening a fifo with no writer does not hang the
// calling thread.
func openFlags(blocking bool) int {
	flags := os.O_RDONLY
	if !blocking {
		flags |= syscall.O_NONBLOCK
	}
	return flags
}

// statOwner returns the owning uid recorded for the file.
func statOwner(info os.FileInfo) (uint32, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return st.Uid, true
}
