package build

// Populated through -ldflags at release time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

const productName = "terroir-web"

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// UserAgent is the default User-Agent for analytics reports, e.g. "terroir-web/1.0.0".
func UserAgent() string {
	return productName + "/" + Version
}
