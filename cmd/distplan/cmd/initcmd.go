package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/config"
	"github.com/distplan/distplan/internal/workspace"
)

var initDir string
var initForce bool

// initWorkspaceToml mirrors the unexported shape workspace.Load reads,
// just enough to round-trip a freshly written default config.
type initWorkspaceToml struct {
	Dist workspace.DistConfig `toml:"dist"`
}

// InitCmd writes a default dist-workspace.toml for the current
// directory, a non-interactive stand-in for cargo-dist's init wizard.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default dist-workspace.toml",
	Long: `Writes a default dist-workspace.toml for the workspace rooted at
--dir, picking installers and hosting defaults the same way
workspace.DefaultDistConfig does for a workspace with no existing
config. Does not prompt for anything; edit the file afterward for
anything beyond the defaults.

Examples:
  distplan init
  distplan init --dir ./my-workspace`,
	RunE: runInit,
}

func init() {
	InitCmd.Flags().StringVar(&initDir, "dir", ".", "workspace root directory")
	InitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing dist-workspace.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(initDir, config.DefaultWorkspaceConfig)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	doc := initWorkspaceToml{Dist: workspace.DefaultDistConfig()}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	if err := os.WriteFile(path, data, config.DefaultFilePerms); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Println(path)
	return nil
}
