package tag

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parse parses raw against each accepted grammar in turn, first match
// wins. knownPackages must contain every distable package name declared
// in the workspace; package matches are always exact.
func Parse(raw string, knownPackages []string) (*Tag, error) {
	raw = strings.TrimSpace(raw)

	if raw == "dry-run" {
		return &Tag{Kind: KindImplicit, Raw: raw}, nil
	}

	pkgs := sortedByLengthDesc(knownPackages)

	var attempts []string

	if t, ok := tryPrefixPkgDashVersion(raw, pkgs); ok {
		return t, nil
	}
	attempts = append(attempts, "<prefix>/<pkg>-v<version>")

	if t, ok := tryPrefixPkgSlashVersion(raw, pkgs); ok {
		return t, nil
	}
	attempts = append(attempts, "<prefix>/<pkg>/v<version>")

	if t, ok := tryPkgDashVersion(raw, pkgs); ok {
		return t, nil
	}
	attempts = append(attempts, "<pkg>-v<version>")

	if t, ok := tryPkgSlashVersion(raw, pkgs); ok {
		return t, nil
	}
	attempts = append(attempts, "<pkg>/v<version>")

	if t, ok := tryPrefixVersion(raw); ok {
		return t, nil
	}
	attempts = append(attempts, "<prefix>/v<version>")

	if t, ok := tryBareVersion(raw); ok {
		return t, nil
	}
	attempts = append(attempts, "v<version>", "<version>", "dry-run")

	return nil, &TagParseError{Raw: raw, Attempts: attempts}
}

// ParseImplicit returns the implicit-announcement placeholder used when no
// tag is present at all (as opposed to the literal "dry-run" tag, which
// carries the same Kind but a non-empty Raw).
func ParseImplicit() *Tag {
	return &Tag{Kind: KindImplicit}
}

func parseVersion(s string) (*semver.Version, bool) {
	s = strings.TrimPrefix(s, "v")
	// StrictNewVersion requires the full major.minor.patch form (plus
	// optional pre-release/build metadata), rejecting partial versions
	// like "1.0" that semver.NewVersion would otherwise coerce.
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, false
	}
	return v, true
}

func sortedByLengthDesc(pkgs []string) []string {
	out := append([]string(nil), pkgs...)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func tryPrefixPkgDashVersion(raw string, pkgs []string) (*Tag, bool) {
	idx := strings.LastIndex(raw, "/")
	if idx < 0 {
		return nil, false
	}
	prefix := raw[:idx]
	rest := raw[idx+1:]

	for _, pkg := range pkgs {
		if !strings.HasPrefix(rest, pkg+"-") {
			continue
		}
		if v, ok := parseVersion(rest[len(pkg)+1:]); ok {
			return &Tag{Kind: KindSingular, Prefix: prefix, Package: pkg, Version: v, Raw: raw}, true
		}
	}
	return nil, false
}

func tryPrefixPkgSlashVersion(raw string, pkgs []string) (*Tag, bool) {
	lastIdx := strings.LastIndex(raw, "/")
	if lastIdx < 0 {
		return nil, false
	}
	verPart := raw[lastIdx+1:]
	rest := raw[:lastIdx]

	idx2 := strings.LastIndex(rest, "/")
	if idx2 < 0 {
		return nil, false
	}
	prefix := rest[:idx2]
	pkgCandidate := rest[idx2+1:]

	for _, pkg := range pkgs {
		if pkgCandidate != pkg {
			continue
		}
		if v, ok := parseVersion(verPart); ok {
			return &Tag{Kind: KindSingular, Prefix: prefix, Package: pkg, Version: v, Raw: raw}, true
		}
	}
	return nil, false
}

func tryPkgDashVersion(raw string, pkgs []string) (*Tag, bool) {
	if strings.Contains(raw, "/") {
		return nil, false
	}
	for _, pkg := range pkgs {
		if !strings.HasPrefix(raw, pkg+"-") {
			continue
		}
		if v, ok := parseVersion(raw[len(pkg)+1:]); ok {
			return &Tag{Kind: KindSingular, Package: pkg, Version: v, Raw: raw}, true
		}
	}
	return nil, false
}

func tryPkgSlashVersion(raw string, pkgs []string) (*Tag, bool) {
	idx := strings.LastIndex(raw, "/")
	if idx < 0 {
		return nil, false
	}
	pkgCandidate := raw[:idx]
	if strings.Contains(pkgCandidate, "/") {
		return nil, false
	}
	verPart := raw[idx+1:]

	for _, pkg := range pkgs {
		if pkgCandidate != pkg {
			continue
		}
		if v, ok := parseVersion(verPart); ok {
			return &Tag{Kind: KindSingular, Package: pkg, Version: v, Raw: raw}, true
		}
	}
	return nil, false
}

func tryPrefixVersion(raw string) (*Tag, bool) {
	idx := strings.LastIndex(raw, "/")
	if idx < 0 {
		return nil, false
	}
	prefix := raw[:idx]
	verPart := raw[idx+1:]
	if v, ok := parseVersion(verPart); ok {
		return &Tag{Kind: KindUnified, Prefix: prefix, Version: v, Raw: raw}, true
	}
	return nil, false
}

func tryBareVersion(raw string) (*Tag, bool) {
	if strings.Contains(raw, "/") {
		return nil, false
	}
	if v, ok := parseVersion(raw); ok {
		return &Tag{Kind: KindUnified, Version: v, Raw: raw}, true
	}
	return nil, false
}
