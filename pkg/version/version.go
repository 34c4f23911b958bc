// Package version exposes the build version stamped in at link time.
package version

// version is set via -ldflags "-X github.com/rshade/ghgcalc/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Link-time injection target.
var version = "dev"

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}
