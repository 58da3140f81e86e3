package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/artifact"
	"github.com/distplan/distplan/internal/gitops"
	"github.com/distplan/distplan/internal/hostprovider"
	"github.com/distplan/distplan/internal/workspace"
)

var hostFlagsV planFlags
var hostDryRun bool

// HostCmd drives the job graph's host phase: it plans a release, then
// creates a draft on the hosting provider and uploads every artifact
// asset it can find on disk.
var HostCmd = &cobra.Command{
	Use:   "host",
	Short: "Create a draft release and upload planned artifacts",
	Long: `Plans a release and then drives the hosting provider: creates a
draft release for the announcement tag and uploads every asset the plan
names that exists on disk. Assets the plan names but that haven't been
built locally are reported and skipped rather than failing the run,
since distplan does not build binaries itself.

Requires GITHUB_TOKEN in the environment and a git remote pointing at
GitHub, from which the owner/repo is read.

Examples:
  distplan host --tag v1.2.3
  distplan host --tag v1.2.3 --dry-run`,
	RunE: runHost,
}

func init() {
	addPlanFlags(HostCmd, &hostFlagsV)
	HostCmd.Flags().BoolVar(&hostDryRun, "dry-run", false, "plan and list assets without creating a draft release")
}

func runHost(cmd *cobra.Command, args []string) error {
	result, err := buildPlan(&hostFlagsV, version)
	if err != nil {
		reportError(hostFlagsV.outputFormat, err)
		return err
	}

	if result.ann.TagIsImplicit {
		return fmt.Errorf("cannot host an implicit dry-run announcement, pass --tag")
	}

	owner, repo, err := resolveHostRepo(result.ws)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if hostDryRun {
		for name, plan := range result.plans {
			fmt.Printf("release %s: %d artifact(s) would upload to %s/%s@%s\n", name, len(plan.Artifacts), owner, repo, *result.manifest.AnnouncementTag)
			for _, a := range plan.Artifacts {
				for _, asset := range a.Assets {
					fmt.Printf("  - %s (%s)\n", asset.Name, asset.Path)
				}
			}
		}
		return nil
	}

	provider := hostprovider.NewGitHubProvider(os.Getenv("GITHUB_TOKEN"))
	draft, err := provider.CreateDraft(ctx, owner, repo, *result.manifest.AnnouncementTag, hostprovider.ReleaseOptions{
		Name:       *result.manifest.AnnouncementTag,
		Body:       result.manifest.AnnouncementGithubBody,
		Prerelease: result.manifest.AnnouncementIsPrerelease,
	})
	if err != nil {
		return fmt.Errorf("creating draft release: %w", err)
	}
	fmt.Printf("created draft release %s\n", draft.HTMLURL)

	for _, plan := range result.plans {
		for _, a := range plan.Artifacts {
			for _, asset := range a.Assets {
				f, err := os.Open(asset.Path)
				if err != nil {
					fmt.Printf("skipping %s: %v\n", asset.Name, err)
					continue
				}
				info, statErr := f.Stat()
				if statErr != nil {
					f.Close()
					return fmt.Errorf("stat %s: %w", asset.Path, statErr)
				}
				uploaded, err := provider.Upload(ctx, owner, repo, draft, asset.Name, f, info.Size())
				f.Close()
				if err != nil {
					return fmt.Errorf("uploading %s: %w", asset.Name, err)
				}
				fmt.Printf("uploaded %s -> %s\n", uploaded.Name, uploaded.DownloadURL)
			}
		}
	}
	return nil
}

// resolveHostRepo derives the owner/repo slug a hosting provider call
// needs by parsing the workspace's git remote.
func resolveHostRepo(ws *workspace.Workspace) (owner, repo string, err error) {
	remoteURL, err := gitops.RemoteURL(ws.Root)
	if err != nil {
		return "", "", fmt.Errorf("could not determine owner/repo from the git remote: %w", err)
	}
	slug := artifact.GithubRepoSlug(remoteURL)
	if slug == "" {
		return "", "", fmt.Errorf("could not determine owner/repo: run inside a git clone with a GitHub remote")
	}
	return hostprovider.RepoSlug(slug)
}
