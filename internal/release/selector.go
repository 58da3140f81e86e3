package release

import (
	"fmt"
	"sort"

	"github.com/distplan/distplan/internal/tag"
	"github.com/distplan/distplan/internal/workspace"
)

// SelectOptions parameterizes Select with the one Open Question the spec
// leaves unresolved: whether a library-only package (no binaries) may be
// the subject of a singular announcement on its own ("build-less
// release"). The decision, recorded in DESIGN.md, is a gate: with
// AllowLibraryOnlySingular false such a tag fails with
// *NoMatchingReleases; with it true the tag produces a Release for the
// package like any other.
type SelectOptions struct {
	AllowLibraryOnlySingular bool
}

// Select resolves a parsed Tag against a Workspace into an Announcement.
func Select(ws *workspace.Workspace, t *tag.Tag, opts SelectOptions) (*Announcement, error) {
	switch t.Kind {
	case tag.KindSingular:
		return selectSingular(ws, t, opts)
	case tag.KindUnified:
		return selectUnified(ws, t)
	case tag.KindImplicit:
		return selectImplicit(ws, t)
	default:
		return nil, fmt.Errorf("unknown tag kind %q", t.Kind)
	}
}

// isDistable reports whether pkg is eligible for release: it has at
// least one declared binary, unless the package's "dist" config key
// overrides that default in either direction.
func isDistable(pkg workspace.Package) bool {
	if pkg.Config.Dist != nil {
		return *pkg.Config.Dist
	}
	return len(pkg.Binaries) > 0
}

func selectSingular(ws *workspace.Workspace, t *tag.Tag, opts SelectOptions) (*Announcement, error) {
	pkg, ok := ws.PackageByName(t.Package)
	if !ok {
		return nil, &NoMatchingReleases{Tag: t.Raw, Reason: fmt.Sprintf("package %q does not exist", t.Package)}
	}

	version := t.Version.String()
	if pkg.Version != version {
		return nil, &NoMatchingReleases{Tag: t.Raw, Reason: fmt.Sprintf("package %q is at version %s, tag requested", pkg.Name, pkg.Version), Version: version}
	}

	if !isDistable(pkg) && !opts.AllowLibraryOnlySingular {
		return nil, &NoMatchingReleases{Tag: t.Raw, Reason: fmt.Sprintf("package %q has no binaries and library-only singular announcements are disallowed", pkg.Name)}
	}

	return &Announcement{
		Tag:           t.Raw,
		TagIsImplicit: false,
		Releases:      []Release{{Package: pkg, Version: version}},
	}, nil
}

func selectUnified(ws *workspace.Workspace, t *tag.Tag) (*Announcement, error) {
	version := t.Version.String()

	var releases []Release
	for _, pkg := range ws.Packages {
		if !isDistable(pkg) {
			continue
		}
		if pkg.Version == version {
			releases = append(releases, Release{Package: pkg, Version: version})
		}
	}

	if len(releases) == 0 {
		return nil, &NoMatchingReleases{Tag: t.Raw, Reason: "no distable package matches this version", Version: version}
	}

	sortReleases(releases)

	return &Announcement{
		Tag:           t.Raw,
		TagIsImplicit: false,
		Releases:      releases,
	}, nil
}

func selectImplicit(ws *workspace.Workspace, t *tag.Tag) (*Announcement, error) {
	versions := map[string]bool{}
	for _, pkg := range ws.Packages {
		if isDistable(pkg) {
			versions[pkg.Version] = true
		}
	}

	if len(versions) == 0 {
		return nil, &NoMatchingReleases{Tag: t.Raw, Reason: "no distable packages in workspace"}
	}

	if len(versions) > 1 {
		candidates := make([]string, 0, len(versions))
		for v := range versions {
			candidates = append(candidates, v)
		}
		sort.Strings(candidates)
		return nil, &AmbiguousAnnouncement{Candidates: candidates}
	}

	var version string
	for v := range versions {
		version = v
	}

	var releases []Release
	for _, pkg := range ws.Packages {
		if isDistable(pkg) && pkg.Version == version {
			releases = append(releases, Release{Package: pkg, Version: version})
		}
	}
	sortReleases(releases)

	// dry-run (a literal tag) and a genuinely absent tag both mark the
	// announcement implicit — downstream consumers must not publish.
	return &Announcement{
		Tag:           t.Raw,
		TagIsImplicit: true,
		Releases:      releases,
	}, nil
}

func sortReleases(releases []Release) {
	sort.Slice(releases, func(i, j int) bool { return releases[i].Package.Name < releases[j].Package.Name })
}
