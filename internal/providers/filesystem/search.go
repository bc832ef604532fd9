package filesystem

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
)

// Find walks root recursively and returns the paths of regular files whose
// base name matches pattern (filepath.Match syntax). Symlinks are not
// followed, so the walk terminates on any filesystem. Results are absolute
// paths in discovery order.
func (p *Provider) Find(ctx context.Context, root, pattern string) ([]string, error) {
	matches := []string{}
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		matched, _ := filepath.Match(pattern, filepath.Base(path))
		if matched {
			matches = append(matches, path)
		}
		return nil
	})

	if err != nil {
		return nil, opError("find", root, ErrIO, err)
	}
	return matches, nil
}
