package distmanifest

import (
	"fmt"

	"github.com/distplan/distplan/internal/artifact"
	"github.com/distplan/distplan/internal/release"
)

// EmitOptions controls manifest emission.
type EmitOptions struct {
	ToolVersion string

	// StripLocalPaths blanks out filesystem-path-shaped fields (asset
	// Path) so two machines building the same inputs produce
	// byte-identical manifests, per the --no-local-paths CLI flag.
	StripLocalPaths bool
}

// Emit builds the canonical manifest for one announcement from its
// per-release artifact plans, in the deterministic order releases and
// artifacts were enumerated.
func Emit(ann *release.Announcement, plans map[string]*artifact.Plan, opts EmitOptions) (*Manifest, error) {
	m := &Manifest{
		DistVersion:               opts.ToolVersion,
		AnnouncementTagIsImplicit: ann.TagIsImplicit,
		Artifacts:                 map[string]ArtifactEntry{},
		Assets:                    map[string]AssetEntry{},
		Systems:                   map[string]System{},
	}
	if ann.Tag != "" {
		tag := ann.Tag
		m.AnnouncementTag = &tag
	}

	for _, rel := range ann.Releases {
		plan, ok := plans[rel.Package.Name]
		if !ok {
			return nil, fmt.Errorf("no artifact plan for release %q", rel.Package.Name)
		}

		var names []string
		for _, a := range plan.Artifacts {
			names = append(names, a.Name)
			if _, exists := m.Artifacts[a.Name]; exists {
				return nil, fmt.Errorf("duplicate artifact name %q across releases", a.Name)
			}
			m.Artifacts[a.Name] = toEntry(a, opts)
		}

		m.Releases = append(m.Releases, Release{
			AppName:    rel.Package.Name,
			AppVersion: rel.Version,
			Artifacts:  names,
		})
	}

	return m, nil
}

func toEntry(a artifact.Artifact, opts EmitOptions) ArtifactEntry {
	entry := ArtifactEntry{
		Name:        a.Name,
		Kind:        string(a.Kind),
		Description: a.Description,
	}
	for _, t := range a.TargetTriples {
		entry.TargetTriples = append(entry.TargetTriples, string(t))
	}
	for _, asset := range a.Assets {
		path := asset.Path
		if opts.StripLocalPaths {
			path = ""
		}
		entry.Assets = append(entry.Assets, ArtifactAsset{
			Name: asset.Name,
			Path: path,
			Kind: string(asset.Kind),
		})
	}
	if len(a.Checksums) > 0 {
		entry.Checksums = map[string]string{}
		for algo, hex := range a.Checksums {
			entry.Checksums[algo] = hex
		}
	}
	return entry
}
