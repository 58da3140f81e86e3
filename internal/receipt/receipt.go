// Package receipt defines the schema written by generated installers and
// a Read function for it. No command consults a receipt: selfupdate
// decides whether to update by comparing versions only.
//
// distplan does not write receipts (installer scripts are a Non-goal of the
// planner, see SPEC_FULL.md §6), but it owns the schema those scripts target
// and the read path, mirroring how the teacher's own updater package reads
// state it never wrote on the first run.
package receipt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/distplan/distplan/internal/config"
)

// Receipt is the persisted record of an install, written to
// $XDG_CONFIG_HOME/<app>/distplan-receipt.json by a generated installer.
type Receipt struct {
	// Version is the installed version, as tagged.
	Version string `json:"version"`

	// Source names the install method used: "shell", "powershell", "npm",
	// "homebrew", or "msi".
	Source string `json:"source"`

	// BinaryPaths lists every binary this install placed on disk.
	BinaryPaths []string `json:"binary_paths"`

	// InstallPrefix is the root directory the installer wrote under.
	InstallPrefix string `json:"install_prefix"`

	// ProvidedBy names the app this receipt belongs to (dist-manifest
	// "app_name"), since a single XDG config dir can host receipts for
	// more than one distplan-built tool.
	ProvidedBy string `json:"provided_by"`
}

// Path returns the receipt path for the named app under the XDG config home.
func Path(appName string) string {
	return filepath.Join(config.XDGConfigHome(), appName, "distplan-receipt.json")
}

// Read loads the receipt for appName, or (nil, nil) if no receipt exists —
// a missing receipt is not an error, it just means the binary wasn't
// installed via a generated installer (e.g. `go build`, package manager).
func Read(appName string) (*Receipt, error) {
	data, err := os.ReadFile(Path(appName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading receipt: %w", err)
	}

	var r Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing receipt %s: %w", Path(appName), err)
	}
	return &r, nil
}

// Write persists a receipt. Used by tests that simulate an installed
// binary; real installers are generated shell/
// PowerShell text, not Go code, so production writes happen outside this
// binary.
func Write(appName string, r *Receipt) error {
	path := Path(appName)
	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPerms); err != nil {
		return fmt.Errorf("creating receipt dir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding receipt: %w", err)
	}

	return os.WriteFile(path, data, config.DefaultFilePerms)
}
