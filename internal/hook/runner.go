package hook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-task/task/v3"
	"github.com/go-task/task/v3/taskfile/ast"

	"github.com/distplan/distplan/internal/config"
)

// Runner executes well-known hooks through the embedded Task runner, the
// same runtime xplat's own `task` command wraps, rather than shelling
// out to a standalone `task` binary.
type Runner struct {
	// WorkDir is the directory the hook's Taskfile is resolved from.
	WorkDir string

	// Taskfile optionally pins a specific Taskfile path; empty lets Task
	// discover it the usual way (Taskfile.yml in WorkDir or a parent).
	Taskfile string

	// Timeout bounds a single hook invocation.
	Timeout time.Duration
}

// NewRunner builds a Runner with distplan's opinionated hook defaults.
func NewRunner(workDir string) *Runner {
	defaults := config.GetHookDefaults()
	return &Runner{WorkDir: workDir, Timeout: defaults.Timeout}
}

// Run executes id with vars available to the task as CLI-style
// variables. A workflow-file identifier is validated for existence and
// otherwise left alone: distplan never invokes CI workflow files itself.
func (r *Runner) Run(ctx context.Context, id Identifier, vars map[string]string) error {
	if id.Kind == KindWorkflowFile {
		return r.validateWorkflowFile(id.Path)
	}

	e := task.NewExecutor(task.WithVersionCheck(false))
	e.Dir = r.WorkDir
	e.Entrypoint = r.Taskfile
	e.Timeout = r.Timeout
	e.Silent = false

	if err := e.Setup(); err != nil {
		return fmt.Errorf("hook %q: setting up task runner: %w", id.Name, err)
	}

	taskVars := &ast.Vars{}
	for k, v := range vars {
		taskVars.Set(k, ast.Var{Value: v})
	}

	call := &task.Call{Task: id.Name, Vars: taskVars}
	if err := e.Run(ctx, call); err != nil {
		return fmt.Errorf("hook %q failed: %w", id.Name, err)
	}
	return nil
}

// validateWorkflowFile confirms a "./"-prefixed hook identifier points
// at a file that exists in WorkDir, so a typo surfaces at plan time
// instead of when CI first reaches that job.
func (r *Runner) validateWorkflowFile(relPath string) error {
	path := relPath
	if r.WorkDir != "" {
		path = filepath.Join(r.WorkDir, relPath)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("workflow file hook %q: %w", relPath, err)
	}
	return nil
}
