// distplan plans cross-platform release artifacts for a workspace:
// discovering packages, selecting an announcement from a tag, expanding
// target platforms, enumerating artifacts, and emitting the canonical
// dist-manifest.json consumed by CI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/cmd/distplan/cmd"
	_ "github.com/distplan/distplan/internal/bootstrap"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "distplan",
		Short: "Plan cross-platform release artifacts",
		Long: `distplan plans releases for a workspace of one or more packages:
it discovers packages, resolves a git tag into an announcement, expands
target platforms, enumerates the artifacts each release produces, and
emits the canonical dist-manifest.json that CI jobs read and merge.`,
	}

	cmd.SetVersion(Version)

	rootCmd.AddCommand(cmd.VersionCmd)
	rootCmd.AddCommand(cmd.PlanCmd)
	rootCmd.AddCommand(cmd.BuildCmd)
	rootCmd.AddCommand(cmd.ManifestCmd)
	rootCmd.AddCommand(cmd.ManifestSchemaCmd)
	rootCmd.AddCommand(cmd.HostCmd)
	rootCmd.AddCommand(cmd.AnnounceCmd)
	rootCmd.AddCommand(cmd.SelfUpdateCmd)
	rootCmd.AddCommand(cmd.LinkageCmd)
	rootCmd.AddCommand(cmd.GenerateCmd)
	rootCmd.AddCommand(cmd.InitCmd)
	rootCmd.AddCommand(cmd.MCPCmd)
	rootCmd.AddCommand(cmd.HookRunCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
