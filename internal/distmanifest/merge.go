package distmanifest

import "fmt"

// Input pairs one job's manifest fragment with the system id that
// produced it, so a scalar conflict can name both reporters.
type Input struct {
	SystemID string
	Manifest *Manifest
}

// Merge reduces N per-job manifest fragments into the final manifest.
// The reduction is associative and commutative on the unioned tables
// (systems, assets, per-artifact checksums). Of the scalar fields, only
// dist_version, announcement_tag and announcement_title are compared:
// a non-empty value in a later input that differs from the first input's
// non-empty value fails the merge with *MergeConflict. The remaining
// scalars (the implicit/prerelease flags, changelog, GitHub body,
// publish_prereleases, force_latest) are taken from the first input and
// are not compared.
func Merge(inputs []Input) (*Manifest, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("merge: no inputs")
	}

	out := &Manifest{
		Artifacts: map[string]ArtifactEntry{},
		Assets:    map[string]AssetEntry{},
		Systems:   map[string]System{},
	}
	var scalarSystem string

	releaseIndex := map[string]int{}

	for i, in := range inputs {
		m := in.Manifest
		if i == 0 {
			out.DistVersion = m.DistVersion
			out.AnnouncementTag = m.AnnouncementTag
			out.AnnouncementTagIsImplicit = m.AnnouncementTagIsImplicit
			out.AnnouncementIsPrerelease = m.AnnouncementIsPrerelease
			out.AnnouncementTitle = m.AnnouncementTitle
			out.AnnouncementChangelog = m.AnnouncementChangelog
			out.AnnouncementGithubBody = m.AnnouncementGithubBody
			out.PublishPrereleases = m.PublishPrereleases
			out.ForceLatest = m.ForceLatest
			scalarSystem = in.SystemID
		} else {
			if err := checkScalarAgreement(out, m, scalarSystem, in.SystemID); err != nil {
				return nil, err
			}
		}

		for _, rel := range m.Releases {
			if idx, ok := releaseIndex[rel.AppName]; ok {
				out.Releases[idx].Artifacts = unionStrings(out.Releases[idx].Artifacts, rel.Artifacts)
			} else {
				releaseIndex[rel.AppName] = len(out.Releases)
				out.Releases = append(out.Releases, rel)
			}
		}

		for name, entry := range m.Artifacts {
			existing, ok := out.Artifacts[name]
			if !ok {
				out.Artifacts[name] = entry
				continue
			}
			out.Artifacts[name] = mergeArtifactEntry(existing, entry)
		}

		for id, asset := range m.Assets {
			existing, ok := out.Assets[id]
			if !ok {
				out.Assets[id] = asset
				continue
			}
			if existing.Linkage == nil && asset.Linkage != nil {
				existing.Linkage = asset.Linkage
			}
			out.Assets[id] = existing
		}

		for id, sys := range m.Systems {
			out.Systems[id] = sys
		}
	}

	return out, nil
}

func checkScalarAgreement(out, m *Manifest, systemA, systemB string) error {
	type scalar struct {
		field string
		a, b  string
	}
	scalars := []scalar{
		{"dist_version", out.DistVersion, m.DistVersion},
		{"announcement_tag", ptrString(out.AnnouncementTag), ptrString(m.AnnouncementTag)},
		{"announcement_title", out.AnnouncementTitle, m.AnnouncementTitle},
	}
	for _, s := range scalars {
		if s.a != "" && s.b != "" && s.a != s.b {
			return &MergeConflict{Field: s.field, SystemA: systemA, SystemB: systemB, ValueA: s.a, ValueB: s.b}
		}
	}
	return nil
}

func ptrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mergeArtifactEntry(a, b ArtifactEntry) ArtifactEntry {
	out := a
	if out.Checksums == nil {
		out.Checksums = map[string]string{}
	}
	for algo, hex := range b.Checksums {
		if hex != "" {
			out.Checksums[algo] = hex
		}
	}
	if out.Description == "" {
		out.Description = b.Description
	}
	if len(out.Assets) == 0 {
		out.Assets = b.Assets
	}
	return out
}

func unionStrings(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
