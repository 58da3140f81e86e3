package cmd

import (
	"github.com/spf13/cobra"
)

var planFlagsV planFlags

// PlanCmd resolves a workspace and tag into a full artifact plan and
// prints the resulting manifest.
var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan releases for a workspace",
	Long: `Loads the workspace, resolves --tag (or an implicit dry-run
announcement if omitted) into an announcement, expands target platforms,
plans every artifact each release produces, and prints the resulting
manifest.

Examples:
  distplan plan                          # dry-run plan for the current dir
  distplan plan --tag v1.2.3             # plan for an explicit tag
  distplan plan --target x86_64-unknown-linux-gnu --target aarch64-apple-darwin
  distplan plan --output-format json`,
	RunE: runPlan,
}

func init() {
	addPlanFlags(PlanCmd, &planFlagsV)
}

func runPlan(cmd *cobra.Command, args []string) error {
	result, err := buildPlan(&planFlagsV, version)
	if err != nil {
		reportError(planFlagsV.outputFormat, err)
		return err
	}
	return printManifest(result.manifest, planFlagsV.outputFormat)
}
