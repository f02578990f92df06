package serializer

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/teranos/typeweaver/errors"
)

// CheckResult holds the result of comparing freshly generated output with
// what is on disk. File names are relative to the compared directories.
type CheckResult struct {
	// Changed files exist in both directories with different contents
	Changed []string
	// Missing files were generated but do not exist on disk
	Missing []string
	// Stale files exist on disk but were not generated
	Stale []string
}

// UpToDate reports whether the existing directory matches the generated one.
func (r *CheckResult) UpToDate() bool {
	return len(r.Changed) == 0 && len(r.Missing) == 0 && len(r.Stale) == 0
}

// Compare compares generated output in generatedDir with existingDir.
// Both are flat directories of signature files. A missing existingDir
// reports every generated file as missing.
func Compare(generatedDir, existingDir string) (*CheckResult, error) {
	generated, err := listFiles(generatedDir)
	if err != nil {
		return nil, err
	}
	existing, err := listFiles(existingDir)
	if err != nil && !os.IsNotExist(errors.UnwrapAll(err)) {
		return nil, err
	}

	result := &CheckResult{}
	onDisk := make(map[string]bool, len(existing))
	for _, name := range existing {
		onDisk[name] = true
	}

	for _, name := range generated {
		if !onDisk[name] {
			result.Missing = append(result.Missing, name)
			continue
		}
		different, err := filesAreDifferent(filepath.Join(generatedDir, name), filepath.Join(existingDir, name))
		if err != nil {
			return nil, err
		}
		if different {
			result.Changed = append(result.Changed, name)
		}
	}

	wanted := make(map[string]bool, len(generated))
	for _, name := range generated {
		wanted[name] = true
	}
	for _, name := range existing {
		if !wanted[name] {
			result.Stale = append(result.Stale, name)
		}
	}

	return result, nil
}

// listFiles returns the regular file names in dir, sorted.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func filesAreDifferent(file1, file2 string) (bool, error) {
	content1, err := os.ReadFile(file1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file1)
	}
	content2, err := os.ReadFile(file2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file2)
	}
	return !bytes.Equal(content1, content2), nil
}
