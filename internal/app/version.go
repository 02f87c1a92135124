package app

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/carbontrack-backend/internal/app.Version=1.2.0".
// When Commit is not injected the VCS stamp from the Go toolchain is used.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion is reported in startup logs and by GET /health.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		vcsCommit, vcsTime := vcsStamp()
		if commit == "" {
			commit = vcsCommit
		}
		if built == "" {
			built = vcsTime
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, orUnknown(commit), orUnknown(built))
}

func vcsStamp() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
