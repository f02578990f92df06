package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/teranos/typeweaver/config"
	"github.com/teranos/typeweaver/errors"
)

// Directories never searched for sources.
var skipDirs = map[string]bool{
	".git":     true,
	config.Dir: true,
}

// excludeMatcher compiles exclude globs with gitignore semantics, relative
// to the project root.
func excludeMatcher(exclude []string) gitignore.Matcher {
	patterns := make([]gitignore.Pattern, 0, len(exclude))
	for _, p := range exclude {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, gitignore.ParsePattern(p, nil))
		}
	}
	return gitignore.NewMatcher(patterns)
}

func excluded(m gitignore.Matcher, root, path string, isDir bool) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	return m.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}

// Discover returns every .rb file under root, lexically sorted, minus
// excluded paths.
func Discover(root string, exclude []string) ([]string, error) {
	m := excludeMatcher(exclude)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || excluded(m, root, path, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".rb" && !excluded(m, root, path, false) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", root)
	}

	sort.Strings(files)
	return files, nil
}

// resolveFiles makes explicit file arguments absolute against root. Order is
// kept and excludes do not apply.
func resolveFiles(root string, files []string) []string {
	resolved := make([]string, len(files))
	for i, f := range files {
		if filepath.IsAbs(f) {
			resolved[i] = filepath.Clean(f)
		} else {
			resolved[i] = filepath.Join(root, f)
		}
	}
	return resolved
}
