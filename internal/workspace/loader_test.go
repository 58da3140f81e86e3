package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSingleGenericPackage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dist.toml"), `
name = "hello"
version = "1.0.0"
`)

	ws, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ws.Packages) != 1 {
		t.Fatalf("expected 1 package, got %d", len(ws.Packages))
	}
	pkg := ws.Packages[0]
	if pkg.Name != "hello" || pkg.Version != "1.0.0" {
		t.Fatalf("unexpected package: %+v", pkg)
	}
	if pkg.Kind != KindGeneric {
		t.Fatalf("expected generic kind, got %s", pkg.Kind)
	}
	if len(pkg.Binaries) != 1 || pkg.Binaries[0] != "hello" {
		t.Fatalf("expected default binary name, got %v", pkg.Binaries)
	}
}

func TestWorkspaceConfigLayering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dist-workspace.toml"), `
[workspace]
members = ["pkg-a"]

[dist]
installers = ["shell"]
checksum = "sha256"
`)
	writeFile(t, filepath.Join(dir, "pkg-a", "dist.toml"), `
name = "pkg-a"
version = "0.1.0"

[dist]
checksum = "blake2b"
`)

	ws, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ws.Config.Checksum != "sha256" {
		t.Fatalf("workspace checksum override lost: %+v", ws.Config)
	}

	pkg, ok := ws.PackageByName("pkg-a")
	if !ok {
		t.Fatal("pkg-a not discovered")
	}
	if pkg.Config.Checksum != "blake2b" {
		t.Fatalf("expected package-level override to win, got %s", pkg.Config.Checksum)
	}
	if len(pkg.Config.Installers) != 1 || pkg.Config.Installers[0] != "shell" {
		t.Fatalf("expected workspace installers to carry through, got %v", pkg.Config.Installers)
	}
}

func TestLoadCargoPackage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Cargo.toml"), `
[package]
name = "mytool"
version = "2.3.4"
`)

	ws, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pkg, ok := ws.PackageByName("mytool")
	if !ok {
		t.Fatal("mytool not discovered")
	}
	if pkg.Kind != KindCargo {
		t.Fatalf("expected cargo kind, got %s", pkg.Kind)
	}
}

func TestDuplicatePackageNameErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "dist.toml"), `
name = "dup"
version = "1.0.0"
`)
	writeFile(t, filepath.Join(dir, "b", "dist.toml"), `
name = "dup"
version = "2.0.0"
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
	var wsErr *WorkspaceError
	if e, ok := err.(*WorkspaceError); ok {
		wsErr = e
	}
	if wsErr == nil || wsErr.Kind != KindDuplicateName {
		t.Fatalf("expected KindDuplicateName, got %v", err)
	}
}
