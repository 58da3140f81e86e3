package artifact

import (
	"bytes"
	"fmt"

	"github.com/distplan/distplan/internal/gitops"
)

// PlanSourceTarball asks the VCS to archive the tagged commit, producing
// the global source-tarball artifact. repoDir is the workspace root; ref
// is the announcement's tag (HEAD is used when ref is "" — a fully
// implicit announcement). Returns nil, nil when repoDir is not a git
// repository, since the family is skipped rather than failed when no VCS
// is available.
func PlanSourceTarball(repoDir, appName, version, ref string) (*Artifact, error) {
	if !gitops.IsRepo(repoDir) {
		return nil, nil
	}

	var buf bytes.Buffer
	prefix := fmt.Sprintf("%s-%s", appName, version)
	if err := gitops.Archive(repoDir, ref, prefix, &buf); err != nil {
		return nil, fmt.Errorf("source tarball: %w", err)
	}

	return &Artifact{
		Name:        fmt.Sprintf("%s-%s-src.tar.gz", appName, version),
		Kind:        KindSourceTarball,
		Description: "source tarball",
		Body:        buf.Bytes(),
	}, nil
}
