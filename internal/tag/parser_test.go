package tag

import "testing"

func TestParseGrammarForms(t *testing.T) {
	known := []string{"my-app"}

	cases := []struct {
		raw     string
		kind    Kind
		pkg     string
		prefix  string
		version string
		wantErr bool
	}{
		{raw: "release/v1.2.3-alpha.1", kind: KindUnified, prefix: "release", version: "1.2.3-alpha.1"},
		{raw: "my-app/1.2.3", kind: KindSingular, pkg: "my-app", version: "1.2.3"},
		{raw: "1.0", wantErr: true},
		{raw: "dry-run", kind: KindImplicit},
		{raw: "my-app-v1.0.0", kind: KindSingular, pkg: "my-app", version: "1.0.0"},
		{raw: "v2.0.0", kind: KindUnified, version: "2.0.0"},
		{raw: "2.0.0", kind: KindUnified, version: "2.0.0"},
		{raw: "ci/my-app-v3.0.0", kind: KindSingular, pkg: "my-app", prefix: "ci", version: "3.0.0"},
		{raw: "ci/my-app/v4.0.0", kind: KindSingular, pkg: "my-app", prefix: "ci", version: "4.0.0"},
		{raw: "ci/v5.0.0", kind: KindUnified, prefix: "ci", version: "5.0.0"},
	}

	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			got, err := Parse(c.raw, known)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", c.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", c.raw, err)
			}
			if got.Kind != c.kind {
				t.Errorf("Kind = %s, want %s", got.Kind, c.kind)
			}
			if got.Package != c.pkg {
				t.Errorf("Package = %q, want %q", got.Package, c.pkg)
			}
			if got.Prefix != c.prefix {
				t.Errorf("Prefix = %q, want %q", got.Prefix, c.prefix)
			}
			if c.version != "" {
				if got.Version == nil || got.Version.String() != c.version {
					t.Errorf("Version = %v, want %s", got.Version, c.version)
				}
			}
		})
	}
}

func TestTagParseErrorListsAttempts(t *testing.T) {
	_, err := Parse("1.0", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	tpe, ok := err.(*TagParseError)
	if !ok {
		t.Fatalf("expected *TagParseError, got %T", err)
	}
	if len(tpe.Attempts) == 0 {
		t.Fatal("expected non-empty attempts list")
	}
}
