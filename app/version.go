package app

import (
	"runtime/debug"

	"github.com/drblury/bloglist/info"
)

// BuildInfo reports version alongside the Go toolchain and VCS stamp the
// binary was built with.
func BuildInfo(version string) info.InfoProvider {
	payload := map[string]string{"version": version}
	if bi, ok := debug.ReadBuildInfo(); ok {
		payload["goVersion"] = bi.GoVersion
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				payload["revision"] = setting.Value
			case "vcs.time":
				payload["buildTime"] = setting.Value
			case "vcs.modified":
				payload["dirty"] = setting.Value
			}
		}
	}
	return func() any {
		return payload
	}
}
