package version

import "fmt"

// Set at build time via -ldflags "-X".
var (
	Version   = "dev"
	GitSHA    = "unknown"
	BuildTime = "unknown"
)

// String formats the build metadata for -version output.
func String() string {
	return fmt.Sprintf("coasttrack %s (%s, built %s)", Version, GitSHA, BuildTime)
}
