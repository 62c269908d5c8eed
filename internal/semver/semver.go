// Package semver normalizes requested Advanced Installer versions into the
// canonical three-component form used for cache keys.
//
// Cache reads and cache writes must both go through Normalize; if the two
// sides ever disagree the cache silently stops hitting and every job
// re-downloads the installer.
package semver

import "strings"

// Normalize expands a version string to at least major.minor.patch.
//
//	"19"      -> "19.0.0"
//	"19.5"    -> "19.5.0"
//	"19.5.1"  -> "19.5.1"
//
// Versions that already have three or more components are returned unchanged,
// as is the empty string. Normalize never fails; it does not validate that
// the components are numeric.
func Normalize(version string) string {
	if version == "" {
		return version
	}

	switch len(strings.Split(version, ".")) {
	case 1:
		return version + ".0.0"
	case 2:
		return version + ".0"
	default:
		return version
	}
}
