package target

import "testing"

func TestExpandNativeRunner(t *testing.T) {
	targets, err := Expand(ExpandOptions{Triples: []Triple{"x86_64-unknown-linux-gnu"}})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	got := targets[0]
	if got.Runner != "ubuntu-latest" {
		t.Errorf("Runner = %s, want ubuntu-latest", got.Runner)
	}
	if got.HostTriple != got.Triple {
		t.Errorf("expected native build, HostTriple = %s, Triple = %s", got.HostTriple, got.Triple)
	}
	if got.Wrapper != WrapperNone {
		t.Errorf("expected no wrapper for native build, got %s", got.Wrapper)
	}
}

func TestExpandCrossCompileWrapperSelection(t *testing.T) {
	targets, err := Expand(ExpandOptions{Triples: []Triple{
		"x86_64-unknown-linux-musl",
		"aarch64-pc-windows-gnullvm",
	}})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	musl := targets[0]
	if musl.HostTriple != "x86_64-unknown-linux-gnu" {
		t.Errorf("musl HostTriple = %s, want linux gnu host", musl.HostTriple)
	}
	if musl.Wrapper != WrapperCargoZig {
		t.Errorf("musl Wrapper = %s, want %s", musl.Wrapper, WrapperCargoZig)
	}

	win := targets[1]
	if win.Wrapper != WrapperCargoXwin {
		t.Errorf("windows Wrapper = %s, want %s", win.Wrapper, WrapperCargoXwin)
	}
}

func TestExpandUnknownTripleFallback(t *testing.T) {
	targets, err := Expand(ExpandOptions{Triples: []Triple{"riscv64-unknown-linux-gnu"}})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	got := targets[0]
	if got.Known {
		t.Error("expected unknown triple")
	}
	if got.DisplayName != "riscv64-unknown-linux-gnu" {
		t.Errorf("DisplayName = %s, want the raw triple", got.DisplayName)
	}
	if got.Wrapper != WrapperNone || got.Runner != "" {
		t.Errorf("expected no cross-compile hints for unknown triple, got %+v", got)
	}
}

func TestExpandHostMode(t *testing.T) {
	targets, err := Expand(ExpandOptions{HostMode: true})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("expected exactly 1 host target, got %d", len(targets))
	}
}

func TestExpandRunnerOverride(t *testing.T) {
	targets, err := Expand(ExpandOptions{
		Triples:         []Triple{"x86_64-unknown-linux-gnu"},
		RunnerOverrides: map[Triple]string{"x86_64-unknown-linux-gnu": "self-hosted-linux"},
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if targets[0].Runner != "self-hosted-linux" {
		t.Errorf("Runner override not applied, got %s", targets[0].Runner)
	}
}
