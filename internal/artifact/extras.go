package artifact

import "github.com/distplan/distplan/internal/workspace"

// PlanExtraArtifacts records the user-declared extra artifacts. Their
// contents come from an external command run by a build-global job
// (internal/jobgraph); the planner only records the declaration.
func PlanExtraArtifacts(cfg workspace.DistConfig) []Artifact {
	var out []Artifact
	for _, extra := range cfg.ExtraArtifacts {
		out = append(out, Artifact{
			Name:        extra.Name,
			Kind:        KindExtra,
			Description: "produced by task " + extra.Task,
		})
	}
	return out
}
