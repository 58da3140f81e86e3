package workspace

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// cargoManifest is the subset of Cargo.toml this loader cares about
// directly: a [package] table (a single crate). Workspace member
// discovery goes through cargoMetadataMemberDirs instead of parsing
// [workspace] tables by hand, since glob exclusions, path dependencies
// outside the members list, and workspace inheritance are cargo's own
// rules to apply, not ours to reimplement.
type cargoManifest struct {
	Package *struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Bin []struct {
		Name string `toml:"name"`
	} `toml:"bin"`
}

// loadCargoPackage reads dir/Cargo.toml and returns a Package if it
// contains a [package] table. Workspace-root-only Cargo.toml files (no
// [package]) are not packages themselves; their members are discovered
// separately by cargoMetadataMemberDirs.
func loadCargoPackage(dir string) (*Package, error) {
	path := filepath.Join(dir, "Cargo.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "reading Cargo.toml", Cause: err}
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "parsing Cargo.toml", Cause: err}
	}

	if m.Package == nil {
		return nil, nil
	}
	if m.Package.Name == "" || m.Package.Version == "" {
		return nil, &WorkspaceError{Kind: KindMissingField, Path: path, Message: "package.name and package.version are required"}
	}

	binaries := []string{m.Package.Name}
	if len(m.Bin) > 0 {
		binaries = nil
		for _, b := range m.Bin {
			if b.Name != "" {
				binaries = append(binaries, b.Name)
			}
		}
	}

	return &Package{
		Name:     m.Package.Name,
		Version:  m.Package.Version,
		Dir:      dir,
		Kind:     KindCargo,
		Binaries: binaries,
	}, nil
}

// cargoMetadataPackage is the subset of `cargo metadata`'s JSON output this
// loader needs: enough to map each workspace member id to the directory
// holding its Cargo.toml.
type cargoMetadataPackage struct {
	ID           string `json:"id"`
	ManifestPath string `json:"manifest_path"`
}

type cargoMetadataOutput struct {
	Packages         []cargoMetadataPackage `json:"packages"`
	WorkspaceMembers []string               `json:"workspace_members"`
}

// cargoWorkspaceMarker is read first, cheaply, to decide whether dir is a
// cargo workspace root at all: a lone crate's Cargo.toml has no
// [workspace] table, and shelling out to cargo metadata for every such
// package would be wasteful (and require cargo on PATH for repos that
// never use it).
type cargoWorkspaceMarker struct {
	Workspace *struct{} `toml:"workspace"`
}

// cargoMetadataMemberDirs invokes `cargo metadata` against dir/Cargo.toml
// and returns the directories of every workspace member package, per the
// rule that a cargo: workspace's packages are discovered by invoking the
// native metadata tool rather than re-parsing Cargo.toml's [workspace]
// table. Returns (nil, nil) if dir has no Cargo.toml, or its Cargo.toml
// declares no [workspace] table (a lone crate, not a workspace root).
func cargoMetadataMemberDirs(dir string) ([]string, error) {
	manifest := filepath.Join(dir, "Cargo.toml")
	data, err := os.ReadFile(manifest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: manifest, Message: "reading Cargo.toml", Cause: err}
	}

	var marker cargoWorkspaceMarker
	if err := toml.Unmarshal(data, &marker); err != nil {
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: manifest, Message: "parsing Cargo.toml", Cause: err}
	}
	if marker.Workspace == nil {
		return nil, nil
	}

	if _, err := exec.LookPath("cargo"); err != nil {
		return nil, &WorkspaceError{Kind: KindMetadataToolFailure, Path: manifest, Message: "cargo not found on PATH", Cause: err}
	}

	out, err := exec.Command("cargo", "metadata", "--no-deps", "--format-version", "1", "--manifest-path", manifest).Output()
	if err != nil {
		return nil, &WorkspaceError{Kind: KindMetadataToolFailure, Path: manifest, Message: "running cargo metadata", Cause: err}
	}

	var meta cargoMetadataOutput
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, &WorkspaceError{Kind: KindMetadataToolFailure, Path: manifest, Message: "parsing cargo metadata output", Cause: err}
	}

	members := make(map[string]bool, len(meta.WorkspaceMembers))
	for _, id := range meta.WorkspaceMembers {
		members[id] = true
	}

	var dirs []string
	for _, p := range meta.Packages {
		if !members[p.ID] {
			continue
		}
		dirs = append(dirs, filepath.Dir(p.ManifestPath))
	}
	return dirs, nil
}
