package artifact

import (
	"fmt"

	"github.com/distplan/distplan/internal/target"
)

// PlanNPMPackage plans the global npm wrapper tarball artifact: a thin
// package that resolves the platform triple at install time and execs the
// fetched binary. Rendering the wrapper script and package.json is a
// downstream npm-publishing concern; the planner only validates archive
// coverage and records references. It fails with *ReferenceNotSatisfied
// if any target lacks a corresponding archive in archives.
func PlanNPMPackage(appName, version string, targets []target.Target, archives []Artifact) (*Artifact, error) {
	byTriple := make(map[target.Triple]string, len(archives))
	for _, a := range archives {
		if len(a.TargetTriples) == 1 {
			byTriple[a.TargetTriples[0]] = a.Name
		}
	}

	var missing, refs []string
	for _, t := range targets {
		name, ok := byTriple[t.Triple]
		if !ok {
			missing = append(missing, string(t.Triple))
			continue
		}
		refs = append(refs, name)
	}
	if len(missing) > 0 {
		return nil, &ReferenceNotSatisfied{Installer: appName + "-" + version + ".tgz", Missing: missing}
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no targets with archives for npm package")
	}

	return &Artifact{
		Name:               appName + "-" + version + ".tgz",
		Kind:               KindNPM,
		Description:        "npm wrapper package",
		ReferencesArchives: refs,
	}, nil
}
