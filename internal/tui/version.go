package tui

import "fmt"

// Build metadata, stamped by the linker in release builds.
var (
	AppVersion = "0"
	GitCommit  = "unknown"
	BuildTime  = "unknown"
)

// VersionLabel renders the version with commit and build time when known.
func VersionLabel() string {
	label := AppVersion
	if GitCommit != "unknown" || BuildTime != "unknown" {
		label = fmt.Sprintf("%s (%s %s)", AppVersion, GitCommit, BuildTime)
	}
	return label
}
