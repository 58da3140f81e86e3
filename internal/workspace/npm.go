package workspace

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
)

// packageJSON is the subset of package.json this loader reads. JSON is
// parsed with encoding/json rather than a third-party library: it is a
// boundary format owned by a foreign ecosystem (npm), not a distplan
// config surface, matching how the teacher's own registry client and
// updater release structs stick to stdlib JSON for such boundaries.
type packageJSON struct {
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Bin     json.RawMessage `json:"bin"`
}

// loadNPMPackage reads dir/package.json and returns a Package, or
// (nil, nil) if dir has no package.json.
func loadNPMPackage(dir string) (*Package, error) {
	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "reading package.json", Cause: err}
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "parsing package.json", Cause: err}
	}
	if pkg.Name == "" || pkg.Version == "" {
		return nil, &WorkspaceError{Kind: KindMissingField, Path: path, Message: "name and version are required"}
	}

	return &Package{
		Name:     pkg.Name,
		Version:  pkg.Version,
		Dir:      dir,
		Kind:     KindNPM,
		Binaries: npmBinaries(pkg),
	}, nil
}

// npmQueryResult is one entry of `npm query`'s JSON array output.
type npmQueryResult struct {
	Path string `json:"path"`
}

// npmWorkspaceMarker is read first, cheaply, to decide whether dir is an
// npm workspace root at all: most package.json files have no "workspaces"
// field, and shelling out to npm query for every such package would be
// wasteful (and require npm on PATH for repos that never use it).
type npmWorkspaceMarker struct {
	Workspaces []string `json:"workspaces"`
}

// npmMetadataMemberDirs invokes `npm query` against dir/package.json and
// returns the directories of every declared workspace package, per the
// rule that an npm: workspace's packages are discovered by invoking the
// native metadata tool rather than re-parsing "workspaces" globs by hand
// (npm's own glob semantics, including negation and nested workspace
// references, are npm's to apply). Returns (nil, nil) if dir has no
// package.json, or its package.json declares no "workspaces" field.
func npmMetadataMemberDirs(dir string) ([]string, error) {
	manifest := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(manifest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: manifest, Message: "reading package.json", Cause: err}
	}

	var marker npmWorkspaceMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: manifest, Message: "parsing package.json", Cause: err}
	}
	if len(marker.Workspaces) == 0 {
		return nil, nil
	}

	if _, err := exec.LookPath("npm"); err != nil {
		return nil, &WorkspaceError{Kind: KindMetadataToolFailure, Path: manifest, Message: "npm not found on PATH", Cause: err}
	}

	cmd := exec.Command("npm", "query", ".workspace", "--json")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, &WorkspaceError{Kind: KindMetadataToolFailure, Path: manifest, Message: "running npm query", Cause: err}
	}

	var results []npmQueryResult
	if err := json.Unmarshal(out, &results); err != nil {
		return nil, &WorkspaceError{Kind: KindMetadataToolFailure, Path: manifest, Message: "parsing npm query output", Cause: err}
	}

	dirs := make([]string, 0, len(results))
	for _, r := range results {
		if r.Path != "" {
			dirs = append(dirs, r.Path)
		}
	}
	return dirs, nil
}

// npmBinaries extracts binary names from package.json's "bin" field, which
// is either a single string (package name is the binary) or an object
// mapping binary name to script path.
func npmBinaries(pkg packageJSON) []string {
	if len(pkg.Bin) == 0 {
		return nil
	}

	var asString string
	if err := json.Unmarshal(pkg.Bin, &asString); err == nil {
		return []string{pkg.Name}
	}

	var asMap map[string]string
	if err := json.Unmarshal(pkg.Bin, &asMap); err == nil {
		names := make([]string, 0, len(asMap))
		for name := range asMap {
			names = append(names, name)
		}
		return names
	}

	return nil
}
