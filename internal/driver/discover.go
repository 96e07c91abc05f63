package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands the configured include globs under root and filters the
// matches through the exclude globs. Patterns use doublestar syntax, so
// "**/*.st" reaches into nested folders. The returned paths are sorted for
// a deterministic run order.
func Discover(root string, include, exclude []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)

	for _, pat := range include {
		matches, err := doublestar.Glob(fsys, pat)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", pat, err)
		}
	next:
		for _, m := range matches {
			for _, ex := range exclude {
				if doublestar.MatchUnvalidated(ex, m) {
					continue next
				}
			}
			seen[m] = true
		}
	}

	paths := make([]string, 0, len(seen))
	for m := range seen {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}

// ExpandArgs turns command-line arguments into concrete file paths: plain
// files pass through, directories are discovered with the configured globs.
// No arguments means the current directory.
func ExpandArgs(args, include, exclude []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := Discover(arg, include, exclude)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
