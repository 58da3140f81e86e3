package receipt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMissingReturnsNil(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	r, err := Read("example-app")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil receipt, got %+v", r)
	}
}

func TestWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := &Receipt{
		Version:       "1.2.3",
		Source:        "shell",
		BinaryPaths:   []string{"/home/user/.local/bin/example-app"},
		InstallPrefix: "/home/user/.local/bin",
		ProvidedBy:    "example-app",
	}

	if err := Write("example-app", want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read("example-app")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil receipt")
	}
	if got.Version != want.Version || got.Source != want.Source {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	path := Path("example-app")
	if filepath.Dir(path) != filepath.Join(dir, "example-app") {
		t.Fatalf("unexpected receipt path: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("receipt file not written: %v", err)
	}
}
