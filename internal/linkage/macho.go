package linkage

import (
	"debug/macho"
	"os"
	"os/exec"
	"strings"
)

// probeMachO walks a Mach-O binary's load commands, collecting
// LC_LOAD_DYLIB entries and classifying each path. When a dependency is
// under the detected Homebrew prefix, the owning formula is looked up and
// attached as "<formula>: <path>".
func probeMachO(path string) (res *Result) {
	res = &Result{}
	defer recoverInto(res, "macho probe panicked")

	f, err := macho.Open(path)
	if err != nil {
		res.addError("open mach-o %s: %v", path, err)
		return res
	}
	defer f.Close()

	prefix := homebrewPrefix()

	for _, load := range f.Loads {
		dylib, ok := load.(*macho.Dylib)
		if !ok {
			continue
		}
		classifyMachODylib(res, dylib.Name, prefix)
	}
	return res
}

func classifyMachODylib(res *Result, name, brewPrefix string) {
	switch {
	case strings.Contains(name, ".framework/") && strings.HasPrefix(name, "/System/Library/Frameworks"):
		res.PublicFramework = append(res.PublicFramework, name)
	case strings.HasPrefix(name, "/usr/lib/") || strings.HasPrefix(name, "/System/"):
		res.System = append(res.System, name)
	case brewPrefix != "" && strings.HasPrefix(name, brewPrefix):
		formula, err := brewFormulaFor(name)
		if err != nil {
			res.addError("resolve homebrew formula for %s: %v", name, err)
			res.Homebrew = append(res.Homebrew, name)
			return
		}
		res.Homebrew = append(res.Homebrew, formula+": "+name)
	default:
		res.Other = append(res.Other, name)
	}
}

// homebrewPrefix returns the Homebrew install prefix, or "" if brew is
// not on PATH or the lookup fails — homebrew attribution is best-effort.
func homebrewPrefix() string {
	if _, err := exec.LookPath("brew"); err != nil {
		return ""
	}
	out, err := exec.Command("brew", "--prefix").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// brewFormulaFor queries Homebrew for the formula owning a dylib path.
func brewFormulaFor(dylibPath string) (string, error) {
	out, err := exec.Command("brew", "which-formula", dylibPath).Output()
	if err != nil {
		return "", err
	}
	formula := strings.TrimSpace(string(out))
	if formula == "" {
		return "", os.ErrNotExist
	}
	return formula, nil
}
