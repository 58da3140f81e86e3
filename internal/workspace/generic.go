package workspace

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// genericManifest is the shape of a standalone dist.toml for a package
// with no recognized ecosystem manifest (no Cargo.toml, no package.json) —
// a plain Go module released by distplan itself is the common case.
type genericManifest struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version"`
	Binaries []string `toml:"binaries"`
}

// loadGenericPackage reads dir/dist.toml and returns a Package, or
// (nil, nil) if dir has no dist.toml.
func loadGenericPackage(dir string) (*Package, error) {
	path := filepath.Join(dir, "dist.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "reading dist.toml", Cause: err}
	}

	var m genericManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &WorkspaceError{Kind: KindParseFailure, Path: path, Message: "parsing dist.toml", Cause: err}
	}
	if m.Name == "" || m.Version == "" {
		return nil, &WorkspaceError{Kind: KindMissingField, Path: path, Message: "name and version are required"}
	}

	binaries := m.Binaries
	if len(binaries) == 0 {
		binaries = []string{m.Name}
	}

	return &Package{
		Name:     m.Name,
		Version:  m.Version,
		Dir:      dir,
		Kind:     KindGeneric,
		Binaries: binaries,
	}, nil
}
