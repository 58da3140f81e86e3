package artifact

import (
	"fmt"

	"github.com/distplan/distplan/internal/target"
)

// PlanShellInstaller plans the global POSIX shell installer artifact. The
// installer script's content is a downstream rendering concern, not the
// planner's job; here we only validate that every unix-family target has a
// matching archive and record which archives the installer references.
// It fails with *ReferenceNotSatisfied if any unix-family target lacks a
// corresponding archive in archives.
func PlanShellInstaller(appName, version, urlBase, installPath, checksumAlgo string, targets []target.Target, archives []Artifact) (*Artifact, error) {
	byTriple := make(map[target.Triple]string, len(archives))
	for _, a := range archives {
		if len(a.TargetTriples) == 1 {
			byTriple[a.TargetTriples[0]] = a.Name
		}
	}

	var missing, refs []string
	for _, t := range targets {
		if t.GOOS == "windows" {
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
		return nil, &ReferenceNotSatisfied{Installer: appName + "-installer.sh", Missing: missing}
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no unix targets for shell installer")
	}

	return &Artifact{
		Name:               appName + "-installer.sh",
		Kind:               KindInstaller,
		Description:        "POSIX shell installer",
		ReferencesArchives: refs,
		InstallPath:        installPath,
	}, nil
}
