package app

import (
	"fmt"
	"runtime/debug"
)

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X github.com/tejashwikalptaru/gocarousel/internal/app.Version=1.0.0" ./cmd
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = ""
	BuildTime = "unknown"
)

// VersionInfo contains version information for the application.
type VersionInfo struct {
	Version   string
	GitCommit string
	GitTag    string
	BuildTime string
}

// GetVersionInfo returns the current version information. Values not set
// through ldflags are taken from the module build info when available, so
// `go install` builds still report their version and revision.
func GetVersionInfo() VersionInfo {
	v := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		v = v.withBuildInfo(info)
	}
	return v
}

// withBuildInfo fills the fields still holding their defaults from info.
func (v VersionInfo) withBuildInfo(info *debug.BuildInfo) VersionInfo {
	if v.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v.Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if v.GitCommit == "unknown" {
				v.GitCommit = setting.Value
			}
		case "vcs.time":
			if v.BuildTime == "unknown" {
				v.BuildTime = setting.Value
			}
		}
	}
	return v
}

// String returns the tag when built from one, else the version.
func (v VersionInfo) String() string {
	if v.GitTag != "" {
		return v.GitTag
	}
	return v.Version
}

// FullString returns a detailed version string for logging.
func (v VersionInfo) FullString() string {
	return fmt.Sprintf("GoCarousel %s (commit: %s, built: %s)", v.String(), v.GitCommit, v.BuildTime)
}
