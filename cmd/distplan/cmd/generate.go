package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/config"
)

var generateFlagsV planFlags

// GenerateCmd writes the process-compose config the job graph implies
// to disk, without running it.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the planned job graph as a process-compose config",
	Long: `Plans a release and writes the resulting job graph to
.dist/process-compose.generated.yaml, the same config "distplan build"
runs. Useful for reviewing or checking in the generated file without
starting process-compose.

Examples:
  distplan generate
  distplan generate --tag v1.2.3`,
	RunE: runGenerate,
}

func init() {
	addPlanFlags(GenerateCmd, &generateFlagsV)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	result, err := buildPlan(&generateFlagsV, version)
	if err != nil {
		reportError(generateFlagsV.outputFormat, err)
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		exe = "distplan"
	}

	yamlText := generateProcessComposeYAML(result.graph, exe, generateFlagsV.dir)

	distDir := config.Dist(result.ws.Root)
	if err := os.MkdirAll(distDir, config.DefaultDirPerms); err != nil {
		return fmt.Errorf("creating %s: %w", distDir, err)
	}
	configPath := filepath.Join(distDir, "process-compose.generated.yaml")
	if err := os.WriteFile(configPath, []byte(yamlText), config.DefaultFilePerms); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	fmt.Println(configPath)
	return nil
}
