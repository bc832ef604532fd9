//go:build !unix

package filesystem

import "os"

func openFlags(blocking bool) int {
	return os.O_RDONLY
}

// statOwner reports no ownership information on platforms without uid
// semantics; callers fall back to the conservative ceiling.
func statOwner(info os.FileInfo) (uint32, bool) {
	return 0, false
}
