package version

// Build metadata, injected via -ldflags at release time
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)
