package artifact

import (
	"strings"
	"testing"

	"github.com/distplan/distplan/internal/release"
	"github.com/distplan/distplan/internal/target"
	"github.com/distplan/distplan/internal/workspace"
)

func linuxTarget() target.Target {
	return target.Target{Triple: "x86_64-unknown-linux-gnu", GOOS: "linux", GOARCH: "amd64", Known: true}
}

func TestPlanUnifiedSinglePackageScenario(t *testing.T) {
	pkg := workspace.Package{
		Name:     "my-app",
		Version:  "1.0.0",
		Binaries: []string{"my-app"},
		Config: workspace.DistConfig{
			Installers: []string{"shell"},
			Checksum:   "sha256",
			Hosting:    "github",
		},
	}
	rel := release.Release{Package: pkg, Version: "1.0.0"}
	ann := &release.Announcement{Tag: "v1.0.0", Releases: []release.Release{rel}}

	plan, err := Plan(rel, ann, Options{
		Targets: []target.Target{linuxTarget()},
		RepoURL: "https://github.com/acme/my-app",
	})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	var archive, installer *Artifact
	for i := range plan.Artifacts {
		switch plan.Artifacts[i].Kind {
		case KindExecutableZip:
			archive = &plan.Artifacts[i]
		case KindInstaller:
			installer = &plan.Artifacts[i]
		}
	}
	if archive == nil {
		t.Fatal("expected one executable archive")
	}
	wantArchive := "my-app-1.0.0-x86_64-unknown-linux-gnu.tar.xz"
	if archive.Name != wantArchive {
		t.Errorf("archive name = %q, want %q", archive.Name, wantArchive)
	}

	if installer == nil {
		t.Fatal("expected shell installer")
	}
	if installer.Name != "my-app-installer.sh" {
		t.Errorf("installer name = %q", installer.Name)
	}
	if len(installer.ReferencesArchives) != 1 || installer.ReferencesArchives[0] != wantArchive {
		t.Errorf("installer references = %v, want [%s]", installer.ReferencesArchives, wantArchive)
	}
}

func TestPlanMissingArchiveForInstallerFails(t *testing.T) {
	pkg := workspace.Package{
		Name:     "my-app",
		Version:  "1.0.0",
		Binaries: []string{"my-app"},
		Config: workspace.DistConfig{
			Installers: []string{"powershell"},
		},
	}
	rel := release.Release{Package: pkg, Version: "1.0.0"}
	ann := &release.Announcement{Tag: "v1.0.0", Releases: []release.Release{rel}}

	_, err := Plan(rel, ann, Options{Targets: []target.Target{linuxTarget()}})
	if err == nil {
		t.Fatal("expected error: no windows targets for powershell installer")
	}
}

func TestPlanChecksumsAttachedToArchives(t *testing.T) {
	pkg := workspace.Package{
		Name:     "my-app",
		Version:  "1.0.0",
		Binaries: []string{"my-app"},
		Config:   workspace.DistConfig{Checksum: "sha256"},
	}
	rel := release.Release{Package: pkg, Version: "1.0.0"}
	ann := &release.Announcement{Tag: "v1.0.0", Releases: []release.Release{rel}}

	plan, err := Plan(rel, ann, Options{Targets: []target.Target{linuxTarget()}})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for _, a := range plan.Artifacts {
		if a.Kind == KindExecutableZip {
			if _, ok := a.Checksums["sha256"]; !ok {
				t.Errorf("expected sha256 checksum slot on archive %s", a.Name)
			}
		}
	}
}

func TestURLBaseGithubPattern(t *testing.T) {
	got := URLBase("", "github", "https://github.com/acme/my-app", "v1.0.0")
	want := "https://github.com/acme/my-app/releases/download/v1.0.0"
	if got != want {
		t.Errorf("URLBase = %q, want %q", got, want)
	}
}

func TestURLBaseSSHRemote(t *testing.T) {
	got := URLBase("", "github", "git@github.com:acme/my-app.git", "v2.0.0")
	want := "https://github.com/acme/my-app/releases/download/v2.0.0"
	if got != want {
		t.Errorf("URLBase = %q, want %q", got, want)
	}
}

func TestURLBaseExplicitOverride(t *testing.T) {
	got := URLBase("https://cdn.example.com/dl/", "github", "https://github.com/acme/my-app", "v1.0.0")
	want := "https://cdn.example.com/dl"
	if got != want {
		t.Errorf("URLBase = %q, want %q", got, want)
	}
}

func TestChecksumAlgorithms(t *testing.T) {
	for _, algo := range []string{"sha256", "sha512", "sha3-256", "sha3-512", "blake2b", "blake2s"} {
		sum, err := Checksum(algo, strings.NewReader("hello"))
		if err != nil {
			t.Fatalf("Checksum(%s): %v", algo, err)
		}
		if sum == "" {
			t.Errorf("Checksum(%s) returned empty digest", algo)
		}
	}
}

func TestChecksumDisabled(t *testing.T) {
	sum, err := Checksum("false", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	if sum != "" {
		t.Errorf("expected empty digest, got %q", sum)
	}
}
