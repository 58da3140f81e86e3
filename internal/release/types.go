// Package release selects which packages are part of an announcement,
// given a parsed tag and the workspace those packages live in.
package release

import "github.com/distplan/distplan/internal/workspace"

// Release is one package's inclusion in an Announcement.
type Release struct {
	Package workspace.Package
	Version string
}

// Announcement is the full set of releases tied to one git tag (or its
// implicit equivalent).
type Announcement struct {
	// Tag is the raw tag string, or "" for a fully implicit (no-tag)
	// announcement.
	Tag string

	// TagIsImplicit marks an announcement whose tag does not reflect a
	// real publishable version — the "dry-run" placeholder, or the
	// derived version of a no-tag invocation — signalling downstream
	// consumers not to publish.
	TagIsImplicit bool

	// Releases is deterministically ordered by package name.
	Releases []Release
}
