// Package updater implements distplan's own self-update: checking
// GitHub for a newer distplan release and installing it at the canonical
// binary location (config.CanonicalBin), wherever the running binary is.
package updater

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/distplan/distplan/internal/artifact"
	"github.com/distplan/distplan/internal/config"
	"github.com/distplan/distplan/internal/target"
)

// selfAppName is the app name distplan's own releases are planned under,
// matching the archive-name convention every planned artifact uses.
const selfAppName = "distplan"

// Release represents a GitHub release.
type Release struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// GetLatestRelease fetches the latest distplan release from GitHub.
func GetLatestRelease(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", config.SelfReleasesAPI, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse release info: %w", err)
	}

	return &release, nil
}

// GetLatestVersion returns just the version string of the latest release.
func GetLatestVersion(ctx context.Context) (string, error) {
	release, err := GetLatestRelease(ctx)
	if err != nil {
		return "", err
	}
	return ParseVersion(release.TagName), nil
}

// ParseVersion extracts the version from a tag name (e.g., "distplan-v0.3.0" -> "v0.3.0").
func ParseVersion(tagName string) string {
	return strings.TrimPrefix(tagName, config.SelfTagPrefix)
}

// GetAssetName returns the expected release archive name for the host
// platform, matching the naming convention the artifact planner itself
// produces for any app's executable archives.
func GetAssetName(version string) (string, error) {
	targets, err := target.Expand(target.ExpandOptions{HostMode: true})
	if err != nil {
		return "", fmt.Errorf("resolve host target: %w", err)
	}
	return artifact.ArchiveName(selfAppName, version, targets[0], "", ""), nil
}

// FindAssetURL finds the download URL for assetName in a release.
func FindAssetURL(release *Release, assetName string) (string, error) {
	for _, asset := range release.Assets {
		if asset.Name == assetName {
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("no asset found for %s", assetName)
}

// FindChecksumURL finds the checksum file URL in a release.
func FindChecksumURL(release *Release) (string, error) {
	for _, asset := range release.Assets {
		if asset.Name == config.SelfChecksumFile {
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("no %s found in release", config.SelfChecksumFile)
}

// FetchChecksums downloads and parses the checksums file.
func FetchChecksums(ctx context.Context, url string) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch checksums: HTTP %d", resp.StatusCode)
	}

	checksums := make(map[string]string)
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 2 {
			checksums[parts[1]] = parts[0] // filename -> checksum
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return checksums, nil
}

// NeedsUpdate returns true if the current version differs from latest.
// Dev builds never auto-update.
func NeedsUpdate(currentVersion, latestVersion string) bool {
	if currentVersion == "" || currentVersion == "dev" {
		return false
	}
	return currentVersion != latestVersion
}

// GetExpectedChecksum fetches the expected checksum for assetName from a
// release. Returns "" if checksums are unavailable; the caller decides
// whether to warn or fail on an empty result.
func GetExpectedChecksum(ctx context.Context, release *Release, assetName string) string {
	checksumURL, err := FindChecksumURL(release)
	if err != nil {
		return ""
	}
	checksums, err := FetchChecksums(ctx, checksumURL)
	if err != nil {
		return ""
	}
	return checksums[assetName]
}

// DownloadAndReplace downloads a new binary and replaces the current one.
// On Unix this uses atomic rename, safe even if the binary is running. On
// Windows the old binary is renamed aside first since a running exe can't
// be deleted.
func DownloadAndReplace(ctx context.Context, downloadURL, targetPath, expectedChecksum string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", downloadURL, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	targetDir := filepath.Dir(targetPath)
	tmpFile, err := os.CreateTemp(targetDir, ".distplan-update-*")
	if err != nil {
		tmpFile, err = os.CreateTemp("", "distplan-update-*")
		if err != nil {
			return err
		}
	}
	tmpPath := tmpFile.Name()

	hasher := sha256.New()
	writer := io.MultiWriter(tmpFile, hasher)

	if _, err := io.Copy(writer, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	tmpFile.Close()

	actualChecksum := hex.EncodeToString(hasher.Sum(nil))
	if expectedChecksum != "" && actualChecksum != expectedChecksum {
		os.Remove(tmpPath)
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedChecksum, actualChecksum)
	}

	if err := os.Chmod(tmpPath, 0o755); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if isWindowsPath(targetPath) {
		oldPath := targetPath + ".old"
		os.Remove(oldPath)
		if err := os.Rename(targetPath, oldPath); err != nil {
			os.Remove(tmpPath)
			return err
		}
		if err := os.Rename(tmpPath, targetPath); err != nil {
			os.Rename(oldPath, targetPath)
			os.Remove(tmpPath)
			return err
		}
		os.Remove(oldPath)
		return nil
	}

	os.Remove(targetPath)
	if err := os.Rename(tmpPath, targetPath); err != nil {
		if err := copyFile(tmpPath, targetPath); err != nil {
			os.Remove(tmpPath)
			return err
		}
		os.Remove(tmpPath)
	}
	return nil
}

// isWindowsPath reports whether targetPath looks like a Windows binary
// path. Checked by suffix rather than runtime.GOOS so both replace
// strategies can be exercised from tests on any host.
func isWindowsPath(targetPath string) bool {
	return strings.HasSuffix(strings.ToLower(targetPath), ".exe")
}

// CanonicalInstallPath returns the canonical install location for the
// distplan binary itself.
func CanonicalInstallPath() string {
	return config.CanonicalBin()
}

// CleanStaleBinaries removes distplan from non-canonical locations.
func CleanStaleBinaries() {
	for _, loc := range config.StaleLocations() {
		if _, err := os.Stat(loc); err == nil {
			if err := os.Remove(loc); err == nil {
				fmt.Printf("Removed stale distplan from %s\n", loc)
			}
		}
	}
}

// Update performs a self-update of the distplan binary. It always
// installs to the canonical location regardless of where the current
// binary is running from.
func Update(ctx context.Context, currentVersion string, force bool) (newVersion string, err error) {
	release, err := GetLatestRelease(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to check for updates: %w", err)
	}

	latestVersion := ParseVersion(release.TagName)

	if !force && !NeedsUpdate(currentVersion, latestVersion) && currentVersion == latestVersion {
		return latestVersion, nil
	}

	assetName, err := GetAssetName(latestVersion)
	if err != nil {
		return "", err
	}

	downloadURL, err := FindAssetURL(release, assetName)
	if err != nil {
		return "", err
	}

	expectedChecksum := GetExpectedChecksum(ctx, release, assetName)
	if expectedChecksum == "" {
		fmt.Fprintf(os.Stderr, "Warning: %s not found, skipping verification\n", config.SelfChecksumFile)
	}

	installPath := CanonicalInstallPath()
	installDir := filepath.Dir(installPath)
	if err := os.MkdirAll(installDir, config.DefaultDirPerms); err != nil {
		return "", fmt.Errorf("failed to create install directory: %w", err)
	}

	if err := DownloadAndReplace(ctx, downloadURL, installPath, expectedChecksum); err != nil {
		return "", err
	}

	CleanStaleBinaries()

	return latestVersion, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Close()
}
