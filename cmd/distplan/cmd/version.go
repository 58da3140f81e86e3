package cmd

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/updater"
)

var version = "dev"

// SetVersion sets the version string, called from main.
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version.
func GetVersion() string {
	return version
}

var versionVerbose bool

// VersionCmd prints the distplan version.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print distplan version",
	Long: `Print distplan version information.

Examples:
  distplan version      # show version
  distplan version -v   # show verbose info with update check`,
	Run: runVersion,
}

func init() {
	VersionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "show verbose information including update check")
}

func runVersion(cmd *cobra.Command, args []string) {
	if !versionVerbose {
		fmt.Println(version)
		return
	}

	fmt.Printf("distplan %s\n", version)
	fmt.Printf("  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go:       %s\n", runtime.Version())

	fmt.Print("  Update:   ")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	latest, err := updater.GetLatestVersion(ctx)
	if err != nil {
		fmt.Printf("check failed (%v)\n", err)
		return
	}

	if version == "dev" || version != latest {
		fmt.Printf("%s available (run: distplan selfupdate)\n", latest)
		return
	}
	fmt.Println("up to date")
}
