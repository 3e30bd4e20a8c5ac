// Package buildinfo holds release metadata stamped into the vql binary.
package buildinfo

// Set with -ldflags, for example:
//
//	-X github.com/aidanlsb/vql/internal/buildinfo.Version=v0.3.0
//
// Empty in local builds, where debug.ReadBuildInfo supplies what it can.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
