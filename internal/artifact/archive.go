package artifact

import (
	"fmt"

	"github.com/distplan/distplan/internal/target"
	"github.com/distplan/distplan/internal/workspace"
)

// ArchiveFormat is the container format for an executable archive.
type ArchiveFormat string

const (
	FormatZip   ArchiveFormat = "zip"
	FormatTarXZ ArchiveFormat = "tar.xz"
	FormatTarGZ ArchiveFormat = "tar.gz"
)

// archiveExt returns the archive extension for a target's GOOS, honoring
// per-OS overrides from windows-archive/unix-archive config keys.
func archiveExt(t target.Target, windowsArchive, unixArchive string) (string, ArchiveFormat) {
	format := FormatZip
	if t.GOOS != "windows" {
		format = FormatTarXZ
	}

	override := unixArchive
	if t.GOOS == "windows" {
		override = windowsArchive
	}
	switch override {
	case "zip":
		format = FormatZip
	case "tar.gz", "tgz":
		format = FormatTarGZ
	case "tar.xz", "txz":
		format = FormatTarXZ
	}

	switch format {
	case FormatZip:
		return "zip", format
	case FormatTarGZ:
		return "tar.gz", format
	default:
		return "tar.xz", format
	}
}

// archiveName builds the "<app>-<version>-<triple>.<ext>" filename.
func archiveName(appName, version string, t target.Target, ext string) string {
	return fmt.Sprintf("%s-%s-%s.%s", appName, version, t.Triple, ext)
}

// ArchiveName builds the filename a planned executable archive will have
// for the given target, honoring the same windows-archive/unix-archive
// overrides the planner itself uses. Exported for callers outside this
// package (the self-updater) that need to predict a release asset name
// without re-running the planner.
func ArchiveName(appName, version string, t target.Target, windowsArchive, unixArchive string) string {
	ext, _ := archiveExt(t, windowsArchive, unixArchive)
	return archiveName(appName, version, t, ext)
}

// planExecutableArchives builds one executable-zip artifact per target,
// bundling every declared binary, its aliases, and auto-included files.
func planExecutableArchives(pkg workspace.Package, version string, targets []target.Target) ([]Artifact, error) {
	var artifacts []Artifact

	for _, t := range targets {
		ext, _ := archiveExt(t, pkg.Config.WindowsArchive, pkg.Config.UnixArchive)
		name := archiveName(pkg.Name, version, t, ext)

		var assets []Asset
		for _, bin := range pkg.Binaries {
			assets = append(assets, Asset{
				Name: target.BinaryFilename(bin, t),
				Path: bin,
				Kind: AssetBinary,
			})
			for _, alias := range pkg.Config.BinAliases[bin] {
				assets = append(assets, Asset{
					Name: target.BinaryFilename(alias, t),
					Path: bin,
					Kind: AssetAlias,
				})
			}
		}
		for _, inc := range pkg.Config.Include {
			assets = append(assets, Asset{Name: inc, Path: inc, Kind: AssetInclude})
		}
		if pkg.Config.AutoIncludesRootDocs == nil || *pkg.Config.AutoIncludesRootDocs {
			for _, doc := range []string{"README.md", "LICENSE", "CHANGELOG.md"} {
				assets = append(assets, Asset{Name: doc, Path: doc, Kind: docAssetKind(doc)})
			}
		}

		artifacts = append(artifacts, Artifact{
			Name:          name,
			Kind:          KindExecutableZip,
			TargetTriples: []target.Triple{t.Triple},
			Assets:        assets,
			Description:   fmt.Sprintf("executable archive for %s", t.Triple),
		})
	}

	if len(artifacts) == 0 {
		return nil, fmt.Errorf("package %q has no targets to archive", pkg.Name)
	}
	return artifacts, nil
}

func docAssetKind(name string) AssetKind {
	switch {
	case name == "LICENSE":
		return AssetLicense
	case name == "CHANGELOG.md":
		return AssetChangelog
	default:
		return AssetReadme
	}
}
