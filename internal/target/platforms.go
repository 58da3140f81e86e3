package target

// knownPlatforms is the closed table of platforms distplan recognizes by
// triple, grounded in the teacher's own allPlatforms matrix (itself a
// GOOS/GOARCH x runner table, generalized here to Rust-style triples
// since cargo-dist is the domain this planner reimplements).
var knownPlatforms = []Platform{
	{Triple: "x86_64-unknown-linux-gnu", GOOS: "linux", GOARCH: "amd64", Runner: "ubuntu-latest"},
	{Triple: "aarch64-unknown-linux-gnu", GOOS: "linux", GOARCH: "arm64", Runner: "ubuntu-latest"},
	{Triple: "x86_64-apple-darwin", GOOS: "darwin", GOARCH: "amd64", Runner: "macos-latest"},
	{Triple: "aarch64-apple-darwin", GOOS: "darwin", GOARCH: "arm64", Runner: "macos-latest"},
	{Triple: "x86_64-pc-windows-msvc", GOOS: "windows", GOARCH: "amd64", Runner: "windows-latest"},
	{Triple: "aarch64-pc-windows-msvc", GOOS: "windows", GOARCH: "arm64", Runner: "windows-latest"},
	// No CI vendor ships a native runner for these; they're built by
	// cross-compiling from the Linux runner above.
	{Triple: "x86_64-unknown-linux-musl", GOOS: "linux", GOARCH: "amd64"},
	{Triple: "aarch64-pc-windows-gnullvm", GOOS: "windows", GOARCH: "arm64"},
}

// lookupPlatform returns the closed-table entry for t, if any.
func lookupPlatform(t Triple) (Platform, bool) {
	for _, p := range knownPlatforms {
		if p.Triple == t {
			return p, true
		}
	}
	return Platform{}, false
}

// hostPlatform returns the closed-table entry matching goos/goarch, used
// to resolve the "host" mode triple for the machine running the planner.
func hostPlatform(goos, goarch string) (Platform, bool) {
	for _, p := range knownPlatforms {
		if p.GOOS == goos && p.GOARCH == goarch {
			return p, true
		}
	}
	return Platform{}, false
}

// extFor returns the executable filename suffix for goos: ".exe" on
// Windows, no suffix elsewhere. Artifact Planner uses
// the archive extension separately (zip on Windows, tar.xz elsewhere).
func extFor(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}
