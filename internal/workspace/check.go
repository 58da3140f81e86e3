package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckResult holds the result of validating one package against its
// filesystem, the same shape the teacher's manifest.Check produces.
type CheckResult struct {
	Name     string
	Path     string
	Errors   []string
	Warnings []string
}

func (r *CheckResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *CheckResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *CheckResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Check performs referential validation of pkg against its own directory:
// that any include globs could plausibly resolve, and that a binary is
// actually declared.
func Check(pkg Package) CheckResult {
	result := CheckResult{Name: pkg.Name, Path: pkg.Dir}

	if len(pkg.Binaries) == 0 {
		result.AddError("package declares no binaries")
	}

	for _, pattern := range pkg.Config.Include {
		matches, err := filepath.Glob(filepath.Join(pkg.Dir, pattern))
		if err != nil {
			result.AddError(fmt.Sprintf("include pattern %q is invalid: %v", pattern, err))
			continue
		}
		if len(matches) == 0 {
			result.AddWarning(fmt.Sprintf("include pattern %q matched no files", pattern))
		}
	}

	if _, err := os.Stat(pkg.Dir); os.IsNotExist(err) {
		result.AddError("package directory does not exist")
	}

	return result
}

// CheckAll validates every package in a workspace.
func CheckAll(ws *Workspace) []CheckResult {
	results := make([]CheckResult, 0, len(ws.Packages))
	for _, pkg := range ws.Packages {
		results = append(results, Check(pkg))
	}
	return results
}
