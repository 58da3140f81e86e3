package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/a8m/envsubst"

	"github.com/distplan/distplan/internal/release"
	"github.com/distplan/distplan/internal/target"
)

// Options parameterizes planning for one release.
type Options struct {
	Targets []target.Target
	RepoDir string
	RepoURL string
}

// Plan enumerates every artifact for one release's config, wiring
// inter-artifact references and checksums deterministically.
func Plan(rel release.Release, ann *release.Announcement, opts Options) (*Plan, error) {
	cfg := rel.Package.Config
	appName := rel.Package.Name
	version := rel.Version

	archives, err := planExecutableArchives(rel.Package, version, opts.Targets)
	if err != nil {
		return nil, err
	}

	plan := &Plan{AppName: appName, Version: version}
	plan.Artifacts = append(plan.Artifacts, archives...)

	if cfg.InstallUpdater {
		updaters := PlanUpdater(appName, version, opts.Targets)
		AttachUpdaterAssets(plan.Artifacts, updaters)
		plan.Artifacts = append(plan.Artifacts, updaters...)
	}

	urlBase := URLBase(cfg.ArtifactURLBase, cfg.Hosting, opts.RepoURL, ann.Tag)
	installPath, err := resolveInstallPaths(cfg.InstallPath, appName)
	if err != nil {
		return nil, err
	}

	for _, installer := range cfg.Installers {
		switch installer {
		case "shell":
			art, err := PlanShellInstaller(appName, version, urlBase, installPath, cfg.Checksum, opts.Targets, archives)
			if err != nil {
				return nil, err
			}
			plan.Artifacts = append(plan.Artifacts, *art)
		case "powershell":
			art, err := PlanPowerShellInstaller(appName, version, urlBase, installPath, cfg.Checksum, opts.Targets, archives)
			if err != nil {
				return nil, err
			}
			plan.Artifacts = append(plan.Artifacts, *art)
		case "npm":
			art, err := PlanNPMPackage(appName, version, opts.Targets, archives)
			if err != nil {
				return nil, err
			}
			plan.Artifacts = append(plan.Artifacts, *art)
		case "homebrew":
			if cfg.Tap == "" {
				continue
			}
			art, err := PlanHomebrewFormula(appName, version, urlBase, opts.Targets, archives, map[string]string{})
			if err != nil {
				return nil, err
			}
			plan.Artifacts = append(plan.Artifacts, *art)
		case "msi":
			msis, err := PlanMSI(appName, version, opts.Targets, archives)
			if err != nil {
				return nil, err
			}
			plan.Artifacts = append(plan.Artifacts, msis...)
		default:
			return nil, fmt.Errorf("unknown installer kind %q", installer)
		}
	}

	if !ann.TagIsImplicit {
		tarball, err := PlanSourceTarball(opts.RepoDir, appName, version, ann.Tag)
		if err != nil {
			return nil, err
		}
		if tarball != nil {
			plan.Artifacts = append(plan.Artifacts, *tarball)
		}
	}

	plan.Artifacts = append(plan.Artifacts, PlanExtraArtifacts(cfg)...)

	if err := planChecksums(plan, cfg.Checksum); err != nil {
		return nil, err
	}

	return plan, nil
}

// planChecksums attaches a checksum entry to every archive-family
// artifact matching the checksum policy. Checksums are not computed here;
// archives, MSIs, and the source tarball get their digests filled in
// after the build phase via Checksum(). Installers, the Homebrew formula,
// and the npm package are rendered downstream and never checksummed by
// distplan.
func planChecksums(plan *Plan, algorithm string) error {
	if algorithm == "" || algorithm == "false" {
		return nil
	}
	if _, err := hasherFor(algorithm); err != nil {
		return err
	}
	for i := range plan.Artifacts {
		a := &plan.Artifacts[i]
		switch a.Kind {
		case KindExecutableZip, KindMSI, KindSourceTarball:
			a.Checksums = map[string]string{algorithm: ""}
		}
	}
	return nil
}

// envVarRefPattern matches the env-var reference inside a "$VAR/bin" or
// "${VAR}/bin" install-path candidate.
var envVarRefPattern = regexp.MustCompile(`\$\{?([A-Za-z_][A-Za-z0-9_]*)\}?`)

// bareAliasPattern matches a well-known bare alias like "CARGO_HOME" with
// no leading "$" and no path separator.
var bareAliasPattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)

// resolveInstallPaths probes an ordered list of install-path candidates
// and returns the first viable one's expanded form, same fallback
// semantics the generated installers apply at install time: a candidate
// naming an env var (via "$VAR", "${VAR}", or a bare alias like
// "CARGO_HOME") is only viable when that var is set in the environment;
// a "~"-relative or literal path is always viable. Defaults to
// "~/.<app>/bin" (XDG-adjacent convention) when the config sets no
// candidates at all.
func resolveInstallPaths(candidates []string, appName string) (string, error) {
	if len(candidates) == 0 {
		candidates = []string{filepath.Join("~", "."+appName, "bin")}
	}

	var tried []string
	for _, raw := range candidates {
		expanded, ok, err := probeInstallPath(raw)
		if err != nil {
			return "", err
		}
		if ok {
			return expanded, nil
		}
		tried = append(tried, raw)
	}
	return "", fmt.Errorf("no viable install-path candidate among %v", tried)
}

// probeInstallPath reports whether one install-path candidate is usable
// in the current environment and, if so, its expanded form.
func probeInstallPath(raw string) (string, bool, error) {
	if bareAliasPattern.MatchString(raw) {
		home, set := os.LookupEnv(raw)
		if !set {
			return "", false, nil
		}
		return filepath.Join(home, "bin"), true, nil
	}

	path := raw
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, fmt.Errorf("resolve install-path: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	} else if m := envVarRefPattern.FindStringSubmatch(path); m != nil {
		if _, set := os.LookupEnv(m[1]); !set {
			return "", false, nil
		}
	}

	expanded, err := envsubst.String(path)
	if err != nil {
		return "", false, fmt.Errorf("expand install-path %q: %w", raw, err)
	}
	return expanded, true, nil
}
