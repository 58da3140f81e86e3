package gitops

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

func TestRemoteURL(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/distplan/distplan.git"},
	}); err != nil {
		t.Fatalf("CreateRemote: %v", err)
	}

	url, err := RemoteURL(dir)
	if err != nil {
		t.Fatalf("RemoteURL: %v", err)
	}
	if url != "https://github.com/distplan/distplan.git" {
		t.Errorf("RemoteURL = %q, want https://github.com/distplan/distplan.git", url)
	}
}

func TestRemoteURLNoRemote(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	if _, err := RemoteURL(dir); err == nil {
		t.Error("expected error for repo with no origin remote")
	}
}
