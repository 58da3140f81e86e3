package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/config"
)

func TestRunInitWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	initDir = dir
	initForce = false
	defer func() { initDir = "."; initForce = false }()

	if err := runInit(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	path := filepath.Join(dir, config.DefaultWorkspaceConfig)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}

	var doc initWorkspaceToml
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing written config: %v", err)
	}
	if doc.Dist.Hosting != "github" {
		t.Errorf("Dist.Hosting = %q, want github", doc.Dist.Hosting)
	}
	if len(doc.Dist.Installers) == 0 {
		t.Error("Dist.Installers is empty, want defaults")
	}
}

func TestRunInitRefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultWorkspaceConfig)
	if err := os.WriteFile(path, []byte("dist = {}\n"), 0o644); err != nil {
		t.Fatalf("seeding existing config: %v", err)
	}

	initDir = dir
	initForce = false
	defer func() { initDir = "."; initForce = false }()

	if err := runInit(&cobra.Command{}, nil); err == nil {
		t.Fatal("expected error when config already exists and --force not set")
	}
}

func TestRunInitOverwritesWithForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultWorkspaceConfig)
	if err := os.WriteFile(path, []byte("dist = {}\n"), 0o644); err != nil {
		t.Fatalf("seeding existing config: %v", err)
	}

	initDir = dir
	initForce = true
	defer func() { initDir = "."; initForce = false }()

	if err := runInit(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runInit with --force: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	var doc initWorkspaceToml
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing overwritten config: %v", err)
	}
	if doc.Dist.Hosting != "github" {
		t.Errorf("Dist.Hosting = %q, want github after overwrite", doc.Dist.Hosting)
	}
}

