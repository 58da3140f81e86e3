package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/distmanifest"
)

func writeManifest(t *testing.T, dir, name, appName, version string) string {
	t.Helper()
	tag := appName + "-" + version
	m := &distmanifest.Manifest{
		DistVersion:     distmanifest.SchemaVersion,
		AnnouncementTag: &tag,
		Releases: []distmanifest.Release{
			{AppName: appName, AppVersion: version, Artifacts: nil},
		},
		Artifacts: map[string]distmanifest.ArtifactEntry{},
		Assets:    map[string]distmanifest.AssetEntry{},
		Systems:   map[string]distmanifest.System{},
	}
	data, err := distmanifest.Marshal(m)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	runErr := fn()
	w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String(), runErr
}

func TestRunManifestQueryRawOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "dist-manifest.json", "myapp", "v1.2.3")

	manifestQueryRaw = true
	defer func() { manifestQueryRaw = false }()

	out, err := captureStdout(t, func() error {
		return runManifestQuery(&cobra.Command{}, []string{".dist_version", path})
	})
	if err != nil {
		t.Fatalf("runManifestQuery: %v", err)
	}
	if out != distmanifest.SchemaVersion+"\n" {
		t.Errorf("output = %q, want %q", out, distmanifest.SchemaVersion+"\n")
	}
}

func TestRunManifestMerge(t *testing.T) {
	dir := t.TempDir()
	a := writeManifest(t, dir, "a.json", "myapp", "v1.2.3")
	b := writeManifest(t, dir, "b.json", "myapp", "v1.2.3")

	out, err := captureStdout(t, func() error {
		return runManifestMerge(&cobra.Command{}, []string{a, b})
	})
	if err != nil {
		t.Fatalf("runManifestMerge: %v", err)
	}

	merged, err := distmanifest.Parse([]byte(out))
	if err != nil {
		t.Fatalf("parsing merged output: %v", err)
	}
	if len(merged.Releases) != 1 {
		t.Errorf("merged.Releases = %d entries, want 1", len(merged.Releases))
	}
}
