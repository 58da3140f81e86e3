package cmd

import (
	"testing"

	"github.com/distplan/distplan/internal/artifact"
)

func TestFilterArtifactsByScope(t *testing.T) {
	artifacts := []artifact.Artifact{
		{Name: "myapp-x86_64-unknown-linux-gnu.tar.gz", Kind: artifact.KindExecutableZip},
		{Name: "myapp-installer.sh", Kind: artifact.KindInstaller},
		{Name: "myapp-source.tar.gz", Kind: artifact.KindSourceTarball},
		{Name: "checksums.txt", Kind: artifact.KindChecksum},
	}

	tests := []struct {
		scope string
		want  []string
	}{
		{"local", []string{"myapp-x86_64-unknown-linux-gnu.tar.gz"}},
		{"global", []string{"myapp-installer.sh", "myapp-source.tar.gz", "checksums.txt"}},
		{"all", []string{"myapp-x86_64-unknown-linux-gnu.tar.gz", "myapp-installer.sh", "myapp-source.tar.gz", "checksums.txt"}},
		{"host", []string{"myapp-x86_64-unknown-linux-gnu.tar.gz", "myapp-installer.sh", "myapp-source.tar.gz", "checksums.txt"}},
		{"lies", []string{"myapp-x86_64-unknown-linux-gnu.tar.gz", "myapp-installer.sh", "myapp-source.tar.gz", "checksums.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			got := filterArtifactsByScope(artifacts, tt.scope)
			if len(got) != len(tt.want) {
				t.Fatalf("filterArtifactsByScope(%q) returned %d artifacts, want %d", tt.scope, len(got), len(tt.want))
			}
			for i, a := range got {
				if a.Name != tt.want[i] {
					t.Errorf("filterArtifactsByScope(%q)[%d] = %q, want %q", tt.scope, i, a.Name, tt.want[i])
				}
			}
		})
	}
}
