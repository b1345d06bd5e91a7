package version

// Version is the docsgen release, set at build time:
// go build -ldflags "-X github.com/microsoft/teams-sdk/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, set the same way.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version with its build metadata for --version.
func String() string {
	if GitCommit == "unknown" {
		return Version
	}
	return Version + " (" + GitCommit + ", " + BuildTime + ")"
}
