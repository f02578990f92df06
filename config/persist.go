package config

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/typeweaver/errors"
)

// Save writes c to <root>/.typeweaver/config.toml, replacing any existing
// file, and returns the path written.
func Save(root string, c *Config) (string, error) {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}

// FindRoot returns the root of the git worktree containing start, or start
// itself (made absolute) when it is not inside a worktree.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", start)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", errors.Wrapf(err, "failed to open repository at %s", abs)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository
		return abs, nil
	}
	return wt.Filesystem.Root(), nil
}
