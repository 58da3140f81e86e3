package cmd

import (
	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/hook"
)

var hookRunDir string

// HookRunCmd is distplan's own re-entry point for running one hook job
// from inside a generated process-compose config: each hook job in the
// graph shells out to "distplan __hook-run <name>" rather than embedding
// the Task executor directly in the process-compose command line.
var HookRunCmd = &cobra.Command{
	Use:    "__hook-run <identifier>",
	Short:  "Run one hook job (internal, used by generated process-compose configs)",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE:   runHookRun,
}

func init() {
	HookRunCmd.Flags().StringVar(&hookRunDir, "dir", ".", "workspace root directory")
}

func runHookRun(cmd *cobra.Command, args []string) error {
	id := hook.Parse(args[0])
	runner := hook.NewRunner(hookRunDir)
	return runner.Run(cmd.Context(), id, nil)
}
