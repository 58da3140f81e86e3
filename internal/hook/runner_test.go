package hook

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateWorkflowFileFound(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.yml"), []byte("on: push\n"), 0o644); err != nil {
		t.Fatalf("write workflow file: %v", err)
	}

	r := &Runner{WorkDir: dir}
	if err := r.validateWorkflowFile("./custom.yml"); err != nil {
		t.Fatalf("validateWorkflowFile: %v", err)
	}
}

func TestValidateWorkflowFileMissing(t *testing.T) {
	r := &Runner{WorkDir: t.TempDir()}
	if err := r.validateWorkflowFile("./missing.yml"); err == nil {
		t.Fatal("expected error for missing workflow file")
	}
}
