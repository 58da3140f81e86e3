// Package config provides centralized configuration and paths for distplan.
//
// distplan uses a two-tier directory system:
//
//  1. Global distplan home (~/.distplan/) - cache, credentials, self-update state
//  2. Workspace-local directories (.dist/) - planning output for the current checkout
//
// Environment variables:
//   - DISTPLAN_HOME: Override global distplan home (default: ~/.distplan)
//   - DISTPLAN_DIST: Workspace dist output directory (default: .dist under the workdir passed to Dist)
package config

import (
	"os"
	"path/filepath"
	"time"
)

// === Default permissions ===

const (
	// DefaultDirPerms is the default permission mode for created directories.
	DefaultDirPerms = 0755

	// DefaultFilePerms is the default permission mode for created files.
	DefaultFilePerms = 0644
)

// === Default paths ===

const (
	// DefaultWorkspaceConfig is the default workspace config filename, cargo-dist style.
	DefaultWorkspaceConfig = "dist-workspace.toml"

	// DefaultPackageConfig is the default per-package config filename.
	DefaultPackageConfig = "dist.toml"

	// DefaultManifestFile is the generated dist-manifest filename.
	DefaultManifestFile = "dist-manifest.json"
)

// === Self-update configuration ===

const (
	// SelfRepo is the GitHub repository distplan releases itself from.
	SelfRepo = "distplan/distplan"

	// SelfReleasesAPI is the GitHub API endpoint for the latest distplan release.
	SelfReleasesAPI = "https://api.github.com/repos/" + SelfRepo + "/releases/latest"

	// SelfChecksumFile is the name of the checksum manifest in releases.
	SelfChecksumFile = "checksums.txt"

	// SelfTagPrefix is the prefix distplan's own release tags use.
	SelfTagPrefix = "distplan-"
)

// === distplan binary installation ===
//
// distplan installs to ~/.local/bin/distplan (the canonical location) on
// every OS; there is no separate Windows path or .exe suffix.

// CanonicalBin returns the canonical distplan binary path.
func CanonicalBin() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "bin", "distplan")
	}
	return filepath.Join(home, ".local", "bin", "distplan")
}

// CanonicalDir returns the directory holding the canonical distplan binary.
func CanonicalDir() string {
	return filepath.Dir(CanonicalBin())
}

// StaleLocations returns paths where stale distplan binaries might exist.
func StaleLocations() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return []string{"/usr/local/bin/distplan"}
	}
	return []string{
		filepath.Join(home, "go", "bin", "distplan"),
		"/usr/local/bin/distplan",
	}
}

// === Global distplan directories ===

// Home returns the global distplan home directory.
// Uses DISTPLAN_HOME env var if set, otherwise ~/.distplan.
func Home() string {
	if h := os.Getenv("DISTPLAN_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".distplan"
	}
	return filepath.Join(home, ".distplan")
}

// Cache returns the global distplan cache directory, used for downloaded
// checksums and GitHub API responses.
func Cache() string {
	return filepath.Join(Home(), "cache")
}

// XDGConfigHome returns the XDG base-directory config home, falling back to
// ~/.config when XDG_CONFIG_HOME is unset, matching the receipt location
// described by the install receipt schema.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config"
	}
	return filepath.Join(home, ".config")
}

// === Workspace-local directories ===

// Dist returns the workspace dist output directory for the given workdir.
func Dist(workDir string) string {
	if v := os.Getenv("DISTPLAN_DIST"); v != "" {
		return v
	}
	return filepath.Join(workDir, ".dist")
}

// === Hook defaults ===
//
// distplan's opinionated defaults for the embedded Task runner used to
// execute user hooks and extra-artifact build steps.

// HookDefaults holds distplan's opinionated defaults for the embedded Task runner.
type HookDefaults struct {
	// Timeout is the timeout for a single hook invocation.
	Timeout time.Duration

	// Failfast stops job graph execution on the first hook failure.
	Failfast bool
}

// GetHookDefaults returns distplan's opinionated defaults for hook execution.
func GetHookDefaults() HookDefaults {
	return HookDefaults{
		Timeout:  5 * time.Minute,
		Failfast: true,
	}
}

// IsCI returns true if running in a CI environment.
// Checks for common CI environment variables.
func IsCI() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}
