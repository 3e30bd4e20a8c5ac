package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/aidanlsb/vql/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/vql"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

var readBuildInfo = debug.ReadBuildInfo

// printVersion handles --version.
func printVersion(r *renderer) error {
	info := currentVersionInfo()
	if r.json {
		outputSuccess(r.out, info, nil)
		return nil
	}

	fmt.Fprintf(r.out, "vql %s\n", info.Version)
	if info.Commit != "" {
		commit := info.Commit
		if info.Modified {
			commit += " (modified)"
		}
		if info.CommitTime != "" {
			commit += ", " + info.CommitTime
		}
		fmt.Fprintf(r.out, "  commit:   %s\n", commit)
	}
	fmt.Fprintf(r.out, "  module:   %s\n", info.ModulePath)
	fmt.Fprintf(r.out, "  built by: %s %s/%s\n", info.GoVersion, info.GOOS, info.GOARCH)
	return nil
}

// currentVersionInfo combines module build info with the ldflags values
// from internal/buildinfo. Build info wins where both are set.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}

		info.Version = normalizeVersion(bi.Main.Version)
		info.ModulePath = firstNonEmpty(bi.Main.Path, info.ModulePath)
		info.GoVersion = firstNonEmpty(bi.GoVersion, info.GoVersion)
		info.GOOS = firstNonEmpty(settings["GOOS"], info.GOOS)
		info.GOARCH = firstNonEmpty(settings["GOARCH"], info.GOARCH)
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	if info.Version == "devel" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	info.Commit = firstNonEmpty(info.Commit, buildinfo.Commit)
	info.CommitTime = firstNonEmpty(info.CommitTime, buildinfo.Date)
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
