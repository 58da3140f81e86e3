package hook

import "testing"

func TestParseWellKnown(t *testing.T) {
	id := Parse("publish-crates")
	if id.Kind != KindWellKnown {
		t.Fatalf("Kind = %v, want KindWellKnown", id.Kind)
	}
	if id.Name != "publish-crates" {
		t.Errorf("Name = %q, want publish-crates", id.Name)
	}
	if id.String() != "publish-crates" {
		t.Errorf("String() = %q, want publish-crates", id.String())
	}
}

func TestParseWorkflowFile(t *testing.T) {
	id := Parse("./workflows/custom-publish.yml")
	if id.Kind != KindWorkflowFile {
		t.Fatalf("Kind = %v, want KindWorkflowFile", id.Kind)
	}
	if id.Path != "./workflows/custom-publish.yml" {
		t.Errorf("Path = %q, want ./workflows/custom-publish.yml", id.Path)
	}
	if id.String() != "./workflows/custom-publish.yml" {
		t.Errorf("String() = %q, want ./workflows/custom-publish.yml", id.String())
	}
}
