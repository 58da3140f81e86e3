package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/hostprovider"
)

var announceFlagsV planFlags
var announceReleaseID int64

// AnnounceCmd flips an existing draft release to visible, the final
// transition in the announcement state machine.
var AnnounceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Publish a draft release created by \"distplan host\"",
	Long: `Plans a release to resolve the hosting repo and tag, then
publishes the draft release identified by --release-id, moving the
announcement from hosted(draft) to announced.

Examples:
  distplan announce --tag v1.2.3 --release-id 123456789`,
	RunE: runAnnounce,
}

func init() {
	addPlanFlags(AnnounceCmd, &announceFlagsV)
	AnnounceCmd.Flags().Int64Var(&announceReleaseID, "release-id", 0, "provider-native release id returned by \"distplan host\"")
	AnnounceCmd.MarkFlagRequired("release-id")
}

func runAnnounce(cmd *cobra.Command, args []string) error {
	result, err := buildPlan(&announceFlagsV, version)
	if err != nil {
		reportError(announceFlagsV.outputFormat, err)
		return err
	}

	if result.ann.TagIsImplicit {
		return fmt.Errorf("cannot announce an implicit dry-run announcement, pass --tag")
	}

	owner, repo, err := resolveHostRepo(result.ws)
	if err != nil {
		return err
	}

	provider := hostprovider.NewGitHubProvider(os.Getenv("GITHUB_TOKEN"))
	draft := &hostprovider.DraftRelease{ID: announceReleaseID, Tag: *result.manifest.AnnouncementTag}
	if err := provider.Publish(context.Background(), owner, repo, draft); err != nil {
		return fmt.Errorf("publishing release: %w", err)
	}

	fmt.Printf("announced %s/%s@%s\n", owner, repo, draft.Tag)
	return nil
}
