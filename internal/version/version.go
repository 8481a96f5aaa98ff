package version

// Version information for Finder
const (
	// Version is the current semantic version
	Version = "1.0.0"

	// BuildDate is set during build time (use -ldflags)
	BuildDate = "development"

	// GitCommit is set during build time (use -ldflags)
	GitCommit = "unknown"
)

// Info returns the bare version string.
func Info() string {
	return Version
}

// FullInfo returns detailed version information.
func FullInfo() string {
	return "Finder " + Version + " (commit: " + GitCommit + ", built: " + BuildDate + ")"
}
