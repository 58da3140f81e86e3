package distmanifest

import (
	"strconv"
	"strings"
)

// parseMinor extracts the minor version component from a "major.minor.patch"
// string. Malformed versions are treated as minor 0 so older, looser
// version strings still parse instead of hard-failing compat checks.
func parseMinor(v string) int {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return 0
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return minor
}

// CheckCompat validates that a manifest's declared dist_version is within
// the supported compatibility window (current minor version, or up to
// compatWindow minors behind). Newer minors than this reader understands
// are rejected — the writer is assumed to have added fields this reader
// cannot interpret.
func CheckCompat(m *Manifest) error {
	if m.DistVersion == "" {
		return nil
	}
	currentMinor := parseMinor(SchemaVersion)
	foundMinor := parseMinor(m.DistVersion)
	if foundMinor > currentMinor {
		return &UnsupportedSchema{Found: m.DistVersion, Want: SchemaVersion}
	}
	if currentMinor-foundMinor > compatWindow {
		return &UnsupportedSchema{Found: m.DistVersion, Want: SchemaVersion}
	}
	return nil
}

// ApplyDefaults fills zero-value fields a prior schema version may not
// have written, so callers never have to special-case an older manifest.
func ApplyDefaults(m *Manifest) {
	if m.Artifacts == nil {
		m.Artifacts = map[string]ArtifactEntry{}
	}
	if m.Assets == nil {
		m.Assets = map[string]AssetEntry{}
	}
	if m.Systems == nil {
		m.Systems = map[string]System{}
	}
	if m.Linkage == nil {
		m.Linkage = []struct{}{}
	}
}
