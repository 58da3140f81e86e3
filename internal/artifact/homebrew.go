package artifact

import (
	"fmt"

	"github.com/distplan/distplan/internal/target"
)

// PlanHomebrewFormula plans the global Homebrew formula artifact. Only
// called when the package's Tap config key is set. Targets other than
// darwin/linux are skipped here, so callers may pass the full target
// list. Rendering the formula's
// Ruby source is a downstream tap-publishing concern; the planner only
// validates archive coverage and records which archives and checksums the
// formula would reference.
func PlanHomebrewFormula(appName, version, urlBase string, targets []target.Target, archives []Artifact, checksums map[string]string) (*Artifact, error) {
	byTriple := make(map[target.Triple]string, len(archives))
	for _, a := range archives {
		if len(a.TargetTriples) == 1 {
			byTriple[a.TargetTriples[0]] = a.Name
		}
	}

	var missing, refs []string
	for _, t := range targets {
		if t.GOOS != "darwin" && t.GOOS != "linux" {
			continue
		}
		name, ok := byTriple[t.Triple]
		if !ok {
			missing = append(missing, string(t.Triple))
			continue
		}
		refs = append(refs, name)
	}
	if len(missing) > 0 {
		return nil, &ReferenceNotSatisfied{Installer: appName + ".rb", Missing: missing}
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no macOS/Linux targets for homebrew formula")
	}

	return &Artifact{
		Name:               appName + ".rb",
		Kind:               KindHomebrew,
		Description:        "Homebrew formula",
		ReferencesArchives: refs,
	}, nil
}
