package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information. These variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/teranos/commonargs/version.Version=v0.3.0 \
//	    -X github.com/teranos/commonargs/version.CommitHash=$(git rev-parse HEAD)"
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash" yaml:"commit_hash" toml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time" toml:"build_time"`
	Version    string `json:"version" yaml:"version" toml:"version"`
	GoVersion  string `json:"go_version" yaml:"go_version" toml:"go_version"`
	Platform   string `json:"platform" yaml:"platform" toml:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("commonargs %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
	}
	return fmt.Sprintf("commonargs dev (commit %s, built %s)", i.Short(), i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Semver parses Version. Development builds report 0.0.0-dev.
func (i Info) Semver() *semver.Version {
	v, err := semver.NewVersion(strings.TrimPrefix(i.Version, "v"))
	if err != nil {
		return semver.MustParse("0.0.0-dev")
	}
	return v
}
