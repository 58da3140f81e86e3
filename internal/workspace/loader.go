package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// workspaceToml is the top-level shape of dist-workspace.toml: a
// [workspace] members list (cargo-dist's own generalization of cargo
// workspace members to any package kind) plus the dist config itself
// under [dist].
type workspaceToml struct {
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
	Dist DistConfig `toml:"dist"`
}

// packageDistToml is a per-package dist.toml override, read in addition to
// (not instead of) that package's own ecosystem manifest.
type packageDistToml struct {
	Dist DistConfig `toml:"dist"`
}

// Load discovers the workspace rooted at root: its workspace-level config
// and every package under it, walking the tree the way the teacher's
// manifest.Discover does — skipping hidden directories and continuing past
// packages that fail to parse, but returning the first hard error if the
// walk itself cannot proceed.
func Load(root string) (*Workspace, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	wsConfig := DefaultDistConfig()
	members, err := readWorkspaceToml(root, &wsConfig)
	if err != nil {
		return nil, err
	}

	dirs, err := discoverPackageDirs(root, members)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{Root: root, Config: wsConfig}
	seen := map[string]bool{}

	for _, dir := range dirs {
		pkg, err := loadPackageDir(dir)
		if err != nil {
			// A single unparsable package does not fail workspace
			// discovery; callers surface it via Check if they care.
			continue
		}
		if pkg == nil {
			continue
		}
		if seen[pkg.Name] {
			return nil, &WorkspaceError{Kind: KindDuplicateName, Path: dir, Message: "duplicate package name " + pkg.Name}
		}
		seen[pkg.Name] = true

		override, err := readPackageDistToml(dir)
		if err != nil {
			return nil, err
		}
		pkg.Config = wsConfig.Merge(override)

		ws.Packages = append(ws.Packages, *pkg)
	}

	sort.Slice(ws.Packages, func(i, j int) bool { return ws.Packages[i].Name < ws.Packages[j].Name })

	return ws, nil
}

// readWorkspaceToml reads root/dist-workspace.toml if present, overlaying
// its [dist] table onto cfg, and returns its declared member globs.
func readWorkspaceToml(root string, cfg *DistConfig) ([]string, error) {
	path := filepath.Join(root, "dist-workspace.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "reading dist-workspace.toml", Cause: err}
	}

	var wst workspaceToml
	if err := toml.Unmarshal(data, &wst); err != nil {
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "parsing dist-workspace.toml", Cause: err}
	}

	*cfg = cfg.Merge(wst.Dist)
	return wst.Workspace.Members, nil
}

// readPackageDistToml reads dir/dist.toml's [dist] override table, used in
// addition to the generic-package body read in generic.go (a Cargo or npm
// package may also carry its own dist.toml purely for the [dist] table).
func readPackageDistToml(dir string) (DistConfig, error) {
	path := filepath.Join(dir, "dist.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DistConfig{}, nil
		}
		return DistConfig{}, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "reading dist.toml", Cause: err}
	}

	var pt packageDistToml
	if err := toml.Unmarshal(data, &pt); err != nil {
		return DistConfig{}, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "parsing dist.toml", Cause: err}
	}
	return pt.Dist, nil
}

// discoverPackageDirs resolves explicit workspace member entries if any
// were declared in dist-workspace.toml. Failing that, it checks whether
// root is itself a native cargo or npm workspace root and, if so, invokes
// that ecosystem's metadata tool to discover its members. Only when
// neither applies does it fall back to a full directory walk from root,
// matching the teacher's filepath.Walk-based Discover.
func discoverPackageDirs(root string, members []string) ([]string, error) {
	if len(members) > 0 {
		return expandMembers(root, members)
	}

	if dirs, err := cargoMetadataMemberDirs(root); err != nil {
		return nil, err
	} else if dirs != nil {
		return append(dirs, root), nil
	}

	if dirs, err := npmMetadataMemberDirs(root); err != nil {
		return nil, err
	} else if dirs != nil {
		return append(dirs, root), nil
	}

	var dirs []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if name != "." && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if name == "node_modules" || name == "target" || name == "vendor" {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// memberKind distinguishes the typed prefixes a dist-workspace.toml
// [workspace].members entry may carry (spec's "cargo:"/"npm:"/"dist:"
// grammar). An entry with no recognized prefix is a plain glob pattern,
// the pre-existing cargo-dist-style member syntax.
type memberKind int

const (
	memberGlob memberKind = iota
	memberCargo
	memberNPM
	memberDist
)

// parseMember splits a raw [workspace].members entry into its kind and the
// path/pattern following the prefix, if any.
func parseMember(raw string) (memberKind, string) {
	switch {
	case strings.HasPrefix(raw, "cargo:"):
		return memberCargo, strings.TrimPrefix(raw, "cargo:")
	case strings.HasPrefix(raw, "npm:"):
		return memberNPM, strings.TrimPrefix(raw, "npm:")
	case strings.HasPrefix(raw, "dist:"):
		return memberDist, strings.TrimPrefix(raw, "dist:")
	default:
		return memberGlob, raw
	}
}

// expandMembers resolves each declared [workspace].members entry into
// concrete package directories. A "cargo:" entry names a nested native
// cargo workspace whose members are discovered by invoking cargo metadata;
// an "npm:" entry does the same via npm query; a "dist:" entry names a
// single distplan-only package directory with no native manifest; an
// unprefixed entry is a cargo-workspace-style glob pattern (e.g.
// "crates/*") relative to root.
func expandMembers(root string, members []string) ([]string, error) {
	var dirs []string
	for _, raw := range members {
		kind, value := parseMember(raw)
		switch kind {
		case memberCargo:
			nested := filepath.Join(root, value)
			nestedDirs, err := cargoMetadataMemberDirs(nested)
			if err != nil {
				return nil, err
			}
			if nestedDirs == nil {
				return nil, &WorkspaceError{Kind: KindNoManifest, Path: nested, Message: "cargo: member has no Cargo.toml"}
			}
			dirs = append(dirs, nestedDirs...)
		case memberNPM:
			nested := filepath.Join(root, value)
			nestedDirs, err := npmMetadataMemberDirs(nested)
			if err != nil {
				return nil, err
			}
			if nestedDirs == nil {
				return nil, &WorkspaceError{Kind: KindNoManifest, Path: nested, Message: "npm: member has no package.json"}
			}
			dirs = append(dirs, nestedDirs...)
		case memberDist:
			dir := filepath.Join(root, value)
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return nil, &WorkspaceError{Kind: KindNoManifest, Path: dir, Message: "dist: member is not a directory"}
			}
			dirs = append(dirs, dir)
		default:
			matches, err := filepath.Glob(filepath.Join(root, value))
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				info, err := os.Stat(m)
				if err == nil && info.IsDir() {
					dirs = append(dirs, m)
				}
			}
		}
	}
	dirs = append(dirs, root)
	return dirs, nil
}

// loadPackageDir tries each ecosystem reader in turn: Cargo, then npm,
// then generic. The first that recognizes a manifest in dir wins.
func loadPackageDir(dir string) (*Package, error) {
	if pkg, err := loadCargoPackage(dir); err != nil {
		return nil, err
	} else if pkg != nil {
		return pkg, nil
	}

	if pkg, err := loadNPMPackage(dir); err != nil {
		return nil, err
	} else if pkg != nil {
		return pkg, nil
	}

	return loadGenericPackage(dir)
}
