package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/updater"
)

var selfUpdateCheck bool
var selfUpdateForce bool

// SelfUpdateCmd installs the latest distplan release at the canonical
// binary location.
var SelfUpdateCmd = &cobra.Command{
	Use:   "selfupdate",
	Short: "Update distplan to the latest release",
	Long: `Checks the distplan GitHub releases for a newer version and, unless
--check is given, downloads it and atomically replaces the binary at the
canonical install location (~/.local/bin/distplan).

Examples:
  distplan selfupdate --check   # report whether an update is available
  distplan selfupdate           # update if one is available
  distplan selfupdate --force   # reinstall the latest release regardless`,
	RunE: runSelfUpdate,
}

func init() {
	SelfUpdateCmd.Flags().BoolVar(&selfUpdateCheck, "check", false, "only check for an update, don't install it")
	SelfUpdateCmd.Flags().BoolVar(&selfUpdateForce, "force", false, "reinstall the latest release even if already up to date")
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if selfUpdateCheck {
		latest, err := updater.GetLatestVersion(ctx)
		if err != nil {
			return fmt.Errorf("checking latest version: %w", err)
		}
		if version == "dev" || updater.NeedsUpdate(version, latest) {
			fmt.Printf("%s available (current: %s)\n", latest, version)
		} else {
			fmt.Printf("up to date (%s)\n", version)
		}
		return nil
	}

	newVersion, err := updater.Update(ctx, version, selfUpdateForce)
	if err != nil {
		return fmt.Errorf("updating: %w", err)
	}
	if newVersion == version {
		fmt.Printf("already up to date (%s)\n", version)
		return nil
	}
	fmt.Printf("updated distplan to %s\n", newVersion)
	return nil
}
