//go:build unix

package filesystem

import (
	"os"
	"path/filepath"
	"syscall"
)

// privilegeGuard restores the process identity after a privileged read
// dropped to the owner of the target's parent directory.
type privilegeGuard struct {
	dropped bool
}

// dropToParent lowers the effective identity to the owner of the path's
// parent directory while the process runs privileged, so that following an
// attacker-placed symlink cannot read more than that owner could. When the
// process is unprivileged there is nothing to drop.
func dropToParent(path string) (*privilegeGuard, error) {
	if os.Geteuid() != 0 {
		return &privilegeGuard{}, nil
	}

	var st syscall.Stat_t
	if err := syscall.Stat(filepath.Dir(path), &st); err != nil {
		return nil, err
	}
	if st.Uid == 0 {
		// Root-owned parents need no drop.
		return &privilegeGuard{}, nil
	}

	if err := syscall.Setegid(int(st.Gid)); err != nil {
		return nil, err
	}
	if err := syscall.Seteuid(int(st.Uid)); err != nil {
		syscall.Setegid(0)
		return nil, err
	}
	return &privilegeGuard{dropped: true}, nil
}

// release restores the privileged identity. The euid comes back first;
// without it the egid restore would be refused.
func (g *privilegeGuard) release() {
	if g == nil || !g.dropped {
		return
	}
	syscall.Seteuid(0)
	syscall.Setegid(0)
}
