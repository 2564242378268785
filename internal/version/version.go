package version

import (
	"runtime/debug"
	"strings"
)

// Version is set via -ldflags "-X github.com/bnema/pitchside/internal/version.Version=...".
var Version = "dev"

// Current prefers the linker-provided version, then the module version
// recorded in the build info.
func Current() string {
	if v := strings.TrimSpace(Version); v != "" && v != "dev" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}
