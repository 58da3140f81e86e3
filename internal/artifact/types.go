// Package artifact enumerates the artifacts a release produces: executable
// archives, installers, checksums, a source tarball, and any user-declared
// extra artifacts.
package artifact

import "github.com/distplan/distplan/internal/target"

// Kind classifies an Artifact.
type Kind string

const (
	KindExecutableZip Kind = "executable-zip"
	KindInstaller     Kind = "installer"
	KindHomebrew      Kind = "homebrew"
	KindNPM           Kind = "npm"
	KindMSI           Kind = "msi"
	KindUpdater       Kind = "updater"
	KindSourceTarball Kind = "source-tarball"
	KindChecksum      Kind = "checksum"
	KindExtra         Kind = "extra"
)

// AssetKind classifies one file inside an Artifact.
type AssetKind string

const (
	AssetBinary   AssetKind = "executable"
	AssetReadme   AssetKind = "readme"
	AssetLicense  AssetKind = "license"
	AssetChangelog AssetKind = "changelog"
	AssetInclude  AssetKind = "include"
	AssetAlias    AssetKind = "alias"
)

// Asset is one file bundled into an Artifact.
type Asset struct {
	Name string
	Path string
	Kind AssetKind
}

// Artifact is one planned release output file.
type Artifact struct {
	Name          string
	Kind          Kind
	TargetTriples []target.Triple
	Assets        []Asset

	// Checksums maps algorithm name to hex digest, filled in by the
	// Checksums pass after the artifact's bytes exist. The planner itself
	// only records an empty-digest entry for the configured algorithm on
	// executable-zip, MSI and source-tarball artifacts; it does not plan
	// a separate checksum file artifact.
	Checksums map[string]string

	// ReferencesArchives lists the archive artifact names an installer,
	// Homebrew formula, npm package or MSI names as fetchable; used by the
	// ReferenceNotSatisfied check.
	ReferencesArchives []string

	// Description is a short human label, e.g. "POSIX shell installer".
	Description string

	// InstallPath is the resolved install-path candidate (first viable
	// one, in probe order) this installer places binaries under. Only
	// set on installer artifacts.
	InstallPath string

	// Body holds content the planner itself produces without a build
	// step, currently only the source tarball's git-archive bytes.
	// Installer scripts, Homebrew formulas, and npm packages are
	// rendered by a downstream consumer of the plan, not by distplan;
	// the planner only records their archive references here.
	Body []byte
}

// Plan is the full set of artifacts for one release.
type Plan struct {
	AppName string
	Version string
	Artifacts []Artifact
}
