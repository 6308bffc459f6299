package version

import "strings"

// Flag contains extra info about the version, such as "develop" or "rc1". It
// must be empty on released builds.
const Flag = ""

var (
	// Version is the full version string.
	Version = "0.1.0"

	// GitCommit is set with --ldflags "-X github.com/mosaicnetworks/eventlinker/src/version.GitCommit=$(git rev-parse HEAD)"
	GitCommit string
)

func init() {
	Version = full(Version, Flag, GitCommit)
}

func full(base, flag, commit string) string {
	parts := []string{base}
	if flag != "" {
		parts = append(parts, flag)
	}
	if len(commit) >= 8 {
		parts = append(parts, commit[:8])
	}
	return strings.Join(parts, "-")
}
