package distmanifest

import (
	"strings"
	"testing"

	"github.com/distplan/distplan/internal/artifact"
	"github.com/distplan/distplan/internal/release"
	"github.com/distplan/distplan/internal/target"
	"github.com/distplan/distplan/internal/workspace"
)

func TestEmitProducesOneArtifactEntryPerArtifact(t *testing.T) {
	pkg := workspace.Package{Name: "my-app", Version: "1.0.0", Binaries: []string{"my-app"}}
	rel := release.Release{Package: pkg, Version: "1.0.0"}
	ann := &release.Announcement{Tag: "v1.0.0", Releases: []release.Release{rel}}

	plan := &artifact.Plan{
		AppName: "my-app",
		Version: "1.0.0",
		Artifacts: []artifact.Artifact{
			{Name: "my-app-1.0.0-x86_64-unknown-linux-gnu.tar.xz", Kind: artifact.KindExecutableZip, TargetTriples: []target.Triple{"x86_64-unknown-linux-gnu"}},
		},
	}

	m, err := Emit(ann, map[string]*artifact.Plan{"my-app": plan}, EmitOptions{ToolVersion: "1.0.0"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(m.Releases) != 1 || len(m.Releases[0].Artifacts) != 1 {
		t.Fatalf("unexpected releases: %+v", m.Releases)
	}
	if _, ok := m.Artifacts["my-app-1.0.0-x86_64-unknown-linux-gnu.tar.xz"]; !ok {
		t.Fatal("expected archive entry in artifacts table")
	}
	if m.AnnouncementTag == nil || *m.AnnouncementTag != "v1.0.0" {
		t.Fatalf("expected tag v1.0.0, got %v", m.AnnouncementTag)
	}
}

func TestMergeUnionsSystemsAndAssets(t *testing.T) {
	tag := "v1.0.0"
	a := &Manifest{
		DistVersion:     "1.2.0",
		AnnouncementTag: &tag,
		Artifacts:       map[string]ArtifactEntry{"x": {Name: "x", Checksums: map[string]string{"sha256": "abc"}}},
		Assets:          map[string]AssetEntry{"bin1": {Name: "bin1", Kind: "executable"}},
		Systems:         map[string]System{"runner-a": {ID: "runner-a", OS: "linux"}},
	}
	b := &Manifest{
		DistVersion:     "1.2.0",
		AnnouncementTag: &tag,
		Artifacts:       map[string]ArtifactEntry{"x": {Name: "x", Checksums: map[string]string{"sha512": "def"}}},
		Assets:          map[string]AssetEntry{"bin1": {Name: "bin1", Kind: "executable", Linkage: &Linkage{System: []string{"/usr/lib/libc.so"}}}},
		Systems:         map[string]System{"runner-b": {ID: "runner-b", OS: "darwin"}},
	}

	merged, err := Merge([]Input{{SystemID: "runner-a", Manifest: a}, {SystemID: "runner-b", Manifest: b}})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(merged.Systems) != 2 {
		t.Fatalf("expected 2 systems, got %d", len(merged.Systems))
	}
	x := merged.Artifacts["x"]
	if x.Checksums["sha256"] != "abc" || x.Checksums["sha512"] != "def" {
		t.Fatalf("expected both checksum algorithms merged, got %+v", x.Checksums)
	}
	if merged.Assets["bin1"].Linkage == nil {
		t.Fatal("expected linkage to be filled in from the later entry")
	}
}

func TestMergeScalarConflict(t *testing.T) {
	a := &Manifest{DistVersion: "1.2.0", AnnouncementTitle: "Release A"}
	b := &Manifest{DistVersion: "1.2.0", AnnouncementTitle: "Release B"}

	_, err := Merge([]Input{{SystemID: "runner-a", Manifest: a}, {SystemID: "runner-b", Manifest: b}})
	if err == nil {
		t.Fatal("expected MergeConflict")
	}
	if !strings.Contains(err.Error(), "announcement_title") {
		t.Fatalf("expected conflict on announcement_title, got %v", err)
	}
}

func TestCheckCompatAcceptsWithinWindow(t *testing.T) {
	m := &Manifest{DistVersion: "1.0.0"}
	if err := CheckCompat(m); err != nil {
		t.Fatalf("expected compat, got %v", err)
	}
}

func TestCheckCompatRejectsNewerMinor(t *testing.T) {
	m := &Manifest{DistVersion: "1.9.0"}
	if err := CheckCompat(m); err == nil {
		t.Fatal("expected UnsupportedSchema for a newer minor version")
	}
}

func TestMarshalParseRoundTrip(t *testing.T) {
	tag := "v1.0.0"
	m := &Manifest{
		DistVersion:     "1.2.0",
		AnnouncementTag: &tag,
		Artifacts:       map[string]ArtifactEntry{},
		Assets:          map[string]AssetEntry{},
		Systems:         map[string]System{},
	}
	data, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.DistVersion != m.DistVersion || *parsed.AnnouncementTag != tag {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
}
