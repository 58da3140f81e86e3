package linkage

import (
	"os/exec"
	"regexp"
	"strings"
)

// lddLine matches a single "ldd" output row: "name => /resolved/path (0xaddr)"
// or an unresolved "name => not found". The resolved path group is empty
// for unresolved entries.
var lddLine = regexp.MustCompile(`^\s*(\S+)\s*=>\s*(\S+)?`)

// probeELF invokes the platform linker-loader tool (ldd) to resolve a
// Linux binary's shared library dependencies, then attributes each
// resolved path to its owning apt package when dpkg is available.
// Unresolved entries ("not found") go to the System bucket by name.
// Resolved paths go to the Other bucket, as "<package>: <path>" when dpkg
// names an owner and as the bare path otherwise. Rows without "=>" (the
// vDSO and the dynamic linker itself) are not listed.
func probeELF(path string) (res *Result) {
	res = &Result{}
	defer recoverInto(res, "elf probe panicked")

	if _, err := exec.LookPath("ldd"); err != nil {
		res.addError("ldd not available: %v", err)
		return res
	}

	out, err := exec.Command("ldd", path).Output()
	if err != nil {
		res.addError("run ldd on %s: %v", path, err)
		return res
	}

	haveDpkg := false
	if _, err := exec.LookPath("dpkg"); err == nil {
		haveDpkg = true
	}

	for _, line := range strings.Split(string(out), "\n") {
		m := lddLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, resolved := m[1], m[2]
		if resolved == "" || resolved == "not" {
			res.System = append(res.System, name)
			continue
		}
		if !haveDpkg {
			res.Other = append(res.Other, resolved)
			continue
		}
		pkg, err := dpkgOwner(resolved)
		if err != nil {
			res.addError("resolve apt package for %s: %v", resolved, err)
			res.Other = append(res.Other, resolved)
			continue
		}
		res.Other = append(res.Other, pkg+": "+resolved)
	}
	return res
}

// dpkgOwner queries dpkg for the package that installed libPath.
func dpkgOwner(libPath string) (string, error) {
	out, err := exec.Command("dpkg", "-S", libPath).Output()
	if err != nil {
		return "", err
	}
	pkg, _, found := strings.Cut(string(out), ":")
	if !found {
		return "", err
	}
	return strings.TrimSpace(pkg), nil
}
