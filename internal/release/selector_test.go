package release

import (
	"testing"

	"github.com/distplan/distplan/internal/tag"
	"github.com/distplan/distplan/internal/workspace"
)

func pkg(name, version string, binaries ...string) workspace.Package {
	return workspace.Package{Name: name, Version: version, Binaries: binaries}
}

func TestSelectUnifiedSinglePackage(t *testing.T) {
	ws := &workspace.Workspace{Packages: []workspace.Package{pkg("my-app", "1.0.0", "my-app")}}
	tg, err := tag.Parse("v1.0.0", []string{"my-app"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ann, err := Select(ws, tg, SelectOptions{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(ann.Releases) != 1 || ann.Releases[0].Package.Name != "my-app" {
		t.Fatalf("unexpected releases: %+v", ann.Releases)
	}
	if ann.TagIsImplicit {
		t.Error("expected explicit announcement")
	}
}

func TestSelectSingularMultiPackageWorkspace(t *testing.T) {
	ws := &workspace.Workspace{Packages: []workspace.Package{
		pkg("app-a", "1.0.0", "app-a"),
		pkg("lib-b", "2.0.0"),
	}}
	tg, err := tag.Parse("app-a-v1.0.0", []string{"app-a", "lib-b"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ann, err := Select(ws, tg, SelectOptions{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(ann.Releases) != 1 || ann.Releases[0].Package.Name != "app-a" {
		t.Fatalf("expected only app-a, got %+v", ann.Releases)
	}
}

func TestSelectImplicitAmbiguous(t *testing.T) {
	ws := &workspace.Workspace{Packages: []workspace.Package{
		pkg("app-a", "1.0.0", "app-a"),
		pkg("app-b", "2.0.0", "app-b"),
	}}

	_, err := Select(ws, tag.ParseImplicit(), SelectOptions{})
	if err == nil {
		t.Fatal("expected AmbiguousAnnouncement")
	}
	amb, ok := err.(*AmbiguousAnnouncement)
	if !ok {
		t.Fatalf("expected *AmbiguousAnnouncement, got %T", err)
	}
	if len(amb.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %v", amb.Candidates)
	}
}

func TestSelectImplicitUnambiguous(t *testing.T) {
	ws := &workspace.Workspace{Packages: []workspace.Package{
		pkg("app-a", "1.0.0", "app-a"),
		pkg("app-b", "1.0.0", "app-b"),
	}}

	ann, err := Select(ws, tag.ParseImplicit(), SelectOptions{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !ann.TagIsImplicit {
		t.Error("expected implicit announcement")
	}
	if len(ann.Releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(ann.Releases))
	}
}

func TestSelectDryRunTagIsImplicit(t *testing.T) {
	ws := &workspace.Workspace{Packages: []workspace.Package{pkg("app-a", "1.0.0", "app-a")}}
	tg, err := tag.Parse("dry-run", []string{"app-a"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ann, err := Select(ws, tg, SelectOptions{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !ann.TagIsImplicit {
		t.Error("expected dry-run announcement to be marked implicit")
	}
}

func TestSelectSingularPackageNotFound(t *testing.T) {
	ws := &workspace.Workspace{Packages: []workspace.Package{pkg("app-a", "1.0.0", "app-a")}}
	tg, err := tag.Parse("missing-v1.0.0", []string{"missing"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	_, err = Select(ws, tg, SelectOptions{})
	if _, ok := err.(*NoMatchingReleases); !ok {
		t.Fatalf("expected *NoMatchingReleases, got %v", err)
	}
}
