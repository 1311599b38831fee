package version

// Version is the current supporthub release.
const Version = "0.3.0"

// FullVersion returns the version with the v prefix used for release tags.
func FullVersion() string {
	return "v" + Version
}
