package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/probeworks/hostagent/internal/shared/paths"
	"go.uber.org/zap"
)

// Recursive expansion explores one directory level per iteration; the bound
// caps discovery depth regardless of filesystem structure, including cycles
// introduced through symlinks. Reaching it is not an error, discovery just
// stops.
const maxRecursiveGlobs = 64

// ResolvePattern resolves a SQL-style glob pattern to its matches. Relative
// patterns are anchored at the working directory, `%` is accepted as `*`,
// and `**` expands recursively. No matches is a valid empty result, never
// an error; malformed patterns also degrade to an empty result.
func (p *Provider) ResolvePattern(pattern string, limits GlobLimits) []Match {
	translated := translatePattern(pattern, limits)
	matches := expandPattern(translated, limits)

	p.metrics.RecordResolution(len(matches))
	p.log.Debug("resolved pattern",
		zap.String("pattern", pattern),
		zap.Int("matches", len(matches)))
	return matches
}

// ListFilesInDirectory returns the files in dir, optionally at every depth.
func (p *Provider) ListFilesInDirectory(dir string, recursive bool) ([]Match, error) {
	return p.listInAbsoluteDirectory(dir, recursive, GlobFiles)
}

// ListDirectoriesInDirectory returns the subdirectories of dir, optionally
// at every depth.
func (p *Provider) ListDirectoriesInDirectory(dir string, recursive bool) ([]Match, error) {
	return p.listInAbsoluteDirectory(dir, recursive, GlobFolders)
}

func (p *Provider) listInAbsoluteDirectory(dir string, recursive bool, limits GlobLimits) ([]Match, error) {
	if !paths.Exists(dir) {
		return nil, opError("list", dir, ErrNotFound, nil)
	}
	if !paths.IsDirectory(dir) {
		return nil, opError("list", dir, ErrNotADirectory, nil)
	}

	wildcard := "*"
	if recursive {
		wildcard = "**"
	}
	return p.ResolvePattern(filepath.Join(dir, wildcard), limits), nil
}

// translatePattern rewrites a raw pattern into a canonical absolute glob
// expression. It is idempotent, and a base that cannot be canonicalized
// (it may simply not exist) leaves the pattern untouched; absence is
// discovered during expansion.
func translatePattern(pattern string, limits GlobLimits) string {
	// SQL-wildcard compatibility. There is no escape for a literal '%'.
	pattern = strings.ReplaceAll(pattern, "%", "*")

	// Relative patterns are a bad idea, but we accommodate them. Patterns
	// with the home shorthand are left for a lower path layer to expand.
	if pattern != "" && !filepath.IsAbs(pattern) && !paths.IsHomeShorthand(pattern) {
		if cwd, err := os.Getwd(); err == nil {
			pattern = cwd + string(os.PathSeparator) + pattern
		}
	}

	base := pattern
	if i := strings.IndexByte(pattern, '*'); i >= 0 {
		base = pattern[:i]
	}
	if base == "" || limits&GlobNoCanon != 0 {
		return pattern
	}

	canonical, err := paths.Canonicalize(base)
	if err != nil || canonical == "" || canonical == base {
		return pattern
	}
	if paths.IsDirectory(canonical) {
		// Canonicalization strips the trailing separator from directory
		// bases; without restoring it the wildcard suffix changes meaning
		// ("dir*" instead of "dir/*").
		canonical += string(os.PathSeparator)
	}
	// The post-wildcard suffix cannot be canonicalized; splice it back on.
	return canonical + pattern[len(base):]
}

// expandPattern iteratively expands a translated pattern. Each iteration
// performs one single-level expansion; while the pattern still ends in a
// recursive marker and the last expansion matched something, another
// "/**" is appended and the next level down is explored.
func expandPattern(pattern string, limits GlobLimits) []Match {
	var results []Match
	seen := make(map[string]struct{})

	for iter := 1; iter < maxRecursiveGlobs; iter++ {
		matches := singleLevelGlob(pattern)
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			results = append(results, Match(m))
		}

		// The end state is a non-recursive ending or an empty set of
		// matches. A trailing separator after the marker is tolerated.
		wild := strings.LastIndex(pattern, "**")
		if len(matches) == 0 || wild < 0 || wild < len(pattern)-3 {
			break
		}
		pattern += "/**"
	}

	// Filter once at the end so limiting to files does not stop directory
	// traversal during recursive expansion.
	filtered := make([]Match, 0, len(results))
	for _, m := range results {
		if m.IsDir() {
			if limits&GlobFolders != 0 {
				filtered = append(filtered, m)
			}
		} else if limits&GlobFiles != 0 {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// singleLevelGlob expands one pattern with single-level semantics: runs of
// '*' collapse to one, so a recursive marker on its own never crosses a
// directory boundary. Directory matches gain a trailing separator.
func singleLevelGlob(pattern string) []string {
	matches, err := doublestar.FilepathGlob(collapseStars(pattern))
	if err != nil {
		// Malformed patterns degrade to an empty match set.
		return nil
	}

	marked := make([]string, 0, len(matches))
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			m += string(os.PathSeparator)
		}
		marked = append(marked, m)
	}
	return marked
}

func collapseStars(pattern string) string {
	if !strings.Contains(pattern, "**") {
		return pattern
	}
	var b strings.Builder
	b.Grow(len(pattern))
	var prev byte
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '*' && prev == '*' {
			continue
		}
		b.WriteByte(c)
		prev = c
	}
	return b.String()
}
