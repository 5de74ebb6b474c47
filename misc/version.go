// Package misc holds program identity values set at build time.
package misc

// Set by the linker: -ldflags "-X vbhc/misc.version=... -X vbhc/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "vbhc"

// GetAppName returns canonical program name, used for log names and
// temporary files.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
