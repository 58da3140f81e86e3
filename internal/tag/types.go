// Package tag parses release-announcement git tags into a package
// selector and version, following the grammar table used by
// cargo-dist-style release workflows.
package tag

import "github.com/Masterminds/semver/v3"

// Kind classifies a parsed Tag.
type Kind string

const (
	// KindSingular selects exactly one package: {Package, Version}.
	KindSingular Kind = "singular"
	// KindUnified selects every distable package whose own version
	// equals Version.
	KindUnified Kind = "unified"
	// KindImplicit marks the "dry-run" placeholder tag, or the absence
	// of a tag entirely (ParseImplicit), with no fixed version of its
	// own — the Release Selector derives one.
	KindImplicit Kind = "implicit"
)

// Tag is the result of parsing one announcement tag.
type Tag struct {
	Kind Kind

	// Prefix is the opaque lead string before the package/version part,
	// present for co-located release workflows (e.g. a monorepo prefix).
	Prefix string

	// Package is set only for KindSingular.
	Package string

	// Version is nil only for KindImplicit dry-run placeholders.
	Version *semver.Version

	// Raw is the original tag string, kept for diagnostics.
	Raw string
}
