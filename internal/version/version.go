// Package version holds build metadata, set with
// -ldflags "-X github.com/MrSnakeDoc/codex/internal/version.Version=v1.2.3".
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"     // ex: v0.1.0
	Commit    = "none"    // ex: abcd123
	BuildDate = "unknown" // ex: 2026-08-11T18:42:00Z
	GoVersion = runtime.Version()
)

// String formats the metadata for --version output.
func String(binary string) string {
	return fmt.Sprintf("%s %s (commit=%s, built=%s, %s)", binary, Version, Commit, BuildDate, GoVersion)
}
