// Package version reports build information for the typeweaver binary and
// the config file format it reads.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/typeweaver/errors"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

const (
	// ConfigVersion is written into new config files by `typeweaver init`.
	ConfigVersion = "1.0.0"

	// ConfigConstraint is the range of config versions this build reads.
	ConfigConstraint = ">= 1.0.0, < 2.0.0"
)

// Info contains version and build information
type Info struct {
	CommitHash    string `json:"commit_hash"`
	BuildTime     string `json:"build_time"`
	Version       string `json:"version"`
	ConfigVersion string `json:"config_version"`
	GoVersion     string `json:"go_version"`
	Platform      string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash:    CommitHash,
		BuildTime:     BuildTime,
		Version:       Version,
		ConfigVersion: ConfigVersion,
		GoVersion:     runtime.Version(),
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string. Builds whose Version is
// not a semantic version print as dev.
func (i Info) String() string {
	if i.Release() {
		return fmt.Sprintf("typeweaver %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
	}
	return fmt.Sprintf("typeweaver dev (commit %s, built %s)", i.Short(), i.BuildTime)
}

// Release reports whether the binary was built from a version tag.
func (i Info) Release() bool {
	_, err := semver.NewVersion(i.Version)
	return err == nil
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// ReadsConfig reports whether this build reads config files declaring
// version v. A v that is not a semantic version wraps
// errors.ErrUnsupportedVersion.
func ReadsConfig(v string) (bool, error) {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return false, errors.Wrapf(errors.ErrUnsupportedVersion, "%q: %v", v, err)
	}

	constraint, err := semver.NewConstraint(ConfigConstraint)
	if err != nil {
		return false, errors.Wrapf(err, "invalid constraint %q", ConfigConstraint)
	}
	return constraint.Check(parsed), nil
}
