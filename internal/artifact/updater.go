package artifact

import (
	"fmt"

	"github.com/distplan/distplan/internal/target"
)

// PlanUpdater plans the per-target updater artifact: a secondary
// executable bundling an update-checker, attached as an asset of its
// archive and also exposed standalone. It is only planned when the
// package config enables install-updater.
func PlanUpdater(appName, version string, targets []target.Target) []Artifact {
	var out []Artifact
	for _, t := range targets {
		name := fmt.Sprintf("%s-update-%s", appName, t.Triple)
		out = append(out, Artifact{
			Name:          target.BinaryFilename(name, t),
			Kind:          KindUpdater,
			TargetTriples: []target.Triple{t.Triple},
			Description:   "standalone update checker",
			Assets: []Asset{
				{Name: target.BinaryFilename(name, t), Path: name, Kind: AssetBinary},
			},
		})
	}
	return out
}

// AttachUpdaterAssets folds each updater artifact into the matching
// executable archive's asset list, per the "also attached as an asset of
// the executable archive" rule.
func AttachUpdaterAssets(archives []Artifact, updaters []Artifact) {
	byTriple := make(map[target.Triple]*Artifact, len(archives))
	for i := range archives {
		if len(archives[i].TargetTriples) == 1 {
			byTriple[archives[i].TargetTriples[0]] = &archives[i]
		}
	}
	for _, u := range updaters {
		if len(u.TargetTriples) != 1 {
			continue
		}
		if arc, ok := byTriple[u.TargetTriples[0]]; ok {
			arc.Assets = append(arc.Assets, u.Assets...)
		}
	}
}
