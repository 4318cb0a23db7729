package version

// Version is the prop8 build version, set at build time with
// -ldflags "-X github.com/omupade20/prop8/internal/version.Version=1.2.3".
var Version = "main"

// SnapshotFormat is the version written into every bar store snapshot.
const SnapshotFormat = "1.1.0"

// GetVersion returns the build version.
func GetVersion() string {
	return Version
}
