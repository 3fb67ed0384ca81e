package version

// Set at build time with -ldflags "-X github.com/offgrid-tools/hykpi/pkg/version.Version=...".
var (
	Version   = "v0.0.0-unknown"
	GitCommit = "unknown"
)
