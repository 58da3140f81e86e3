package artifact

import (
	"fmt"

	"github.com/distplan/distplan/internal/target"
)

// PlanMSI plans the per-Windows-target MSI artifacts. The MSI's bytes are
// produced at build time by a bundled installer compiler job (see
// internal/jobgraph); the planner only records the artifact's name,
// target, and the archive it wraps.
func PlanMSI(appName, version string, targets []target.Target, archives []Artifact) ([]Artifact, error) {
	byTriple := make(map[target.Triple]string, len(archives))
	for _, a := range archives {
		if len(a.TargetTriples) == 1 {
			byTriple[a.TargetTriples[0]] = a.Name
		}
	}

	var out []Artifact
	for _, t := range targets {
		if t.GOOS != "windows" {
			continue
		}
		archiveName, ok := byTriple[t.Triple]
		if !ok {
			return nil, &ReferenceNotSatisfied{Installer: fmt.Sprintf("%s-%s.msi", appName, t.Triple), Missing: []string{string(t.Triple)}}
		}
		out = append(out, Artifact{
			Name:               fmt.Sprintf("%s-%s-%s.msi", appName, version, t.Triple),
			Kind:               KindMSI,
			TargetTriples:      []target.Triple{t.Triple},
			Description:        "Windows MSI installer",
			ReferencesArchives: []string{archiveName},
		})
	}
	return out, nil
}
