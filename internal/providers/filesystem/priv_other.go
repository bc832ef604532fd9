//go:build !unix

package filesystem

// privilegeGuard is a no-op on platforms without setuid semantics.
type privilegeGuard struct{}

func dropToParent(path string) (*privilegeGuard, error) {
	return &privilegeGuard{}, nil
}

func (g *privilegeGuard) release() {}
