// Package version identifies the irgen build that produced a set of units.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via -ldflags "-X github.com/teranos/irgen/version.Version=...".
var (
	Version = "dev"
	Commit  = ""
	BuiltAt = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuiltAt   string `json:"built_at"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information. Fields the linker did not set are
// filled from the VCS stamp go build embeds, so go install builds still
// report their revision.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuiltAt:   BuiltAt,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuiltAt == "" {
				info.BuiltAt = s.Value
			}
		}
	}
}

// Short is the version plus abbreviated commit, e.g. "v0.4.0+1a2b3c4".
// It is what generated manifests and --version report.
func (i Info) Short() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit == "" {
		return i.Version
	}
	return i.Version + "+" + commit
}

func (i Info) String() string {
	s := "irgen " + i.Short()
	if i.BuiltAt != "" {
		s += ", built " + i.BuiltAt
	}
	return fmt.Sprintf("%s (%s, %s)", s, i.GoVersion, i.Platform)
}
