// Package version reports the ninegrid build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags.
var (
	Version   = ""
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version line shown by ninegrid --version.
// Without ldflags it falls back to the module version recorded by
// go install, then to "dev".
func String() string {
	return fmt.Sprintf("ninegrid %s (commit: %s, built: %s)", semver(), shortCommit(), BuildTime)
}

func semver() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
