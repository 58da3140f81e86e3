package artifact

import (
	"fmt"

	"github.com/distplan/distplan/internal/target"
)

// PlanPowerShellInstaller plans the global PowerShell installer artifact
// for Windows targets, analogous to PlanShellInstaller: the script content
// itself is a downstream rendering concern, the planner only validates
// archive coverage and records references.
func PlanPowerShellInstaller(appName, version, urlBase, installPath, checksumAlgo string, targets []target.Target, archives []Artifact) (*Artifact, error) {
	byTriple := make(map[target.Triple]string, len(archives))
	for _, a := range archives {
		if len(a.TargetTriples) == 1 {
			byTriple[a.TargetTriples[0]] = a.Name
		}
	}

	var missing, refs []string
	for _, t := range targets {
		if t.GOOS != "windows" {
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
		return nil, &ReferenceNotSatisfied{Installer: appName + "-installer.ps1", Missing: missing}
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no windows targets for powershell installer")
	}

	return &Artifact{
		Name:               appName + "-installer.ps1",
		Kind:               KindInstaller,
		Description:        "PowerShell installer",
		ReferencesArchives: refs,
		InstallPath:        installPath,
	}, nil
}
