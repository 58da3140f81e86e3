package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/linkage"
)

var linkageOutputFormat string

// LinkageCmd probes a built executable's dynamic library dependencies,
// the same report the manifest emitter attaches to each binary asset.
var LinkageCmd = &cobra.Command{
	Use:   "linkage <binary>",
	Short: "Report a binary's dynamic library dependencies",
	Long: `Inspects a single built executable and classifies its dynamic
library dependencies into the manifest's system/homebrew/public-framework/
other buckets. Supports Mach-O, PE, and ELF binaries.

Examples:
  distplan linkage ./dist/myapp
  distplan linkage --output-format json ./dist/myapp.exe`,
	Args: cobra.ExactArgs(1),
	RunE: runLinkage,
}

func init() {
	LinkageCmd.Flags().StringVar(&linkageOutputFormat, "output-format", "human", "output format: human|json")
}

func runLinkage(cmd *cobra.Command, args []string) error {
	result := linkage.Probe(args[0])

	if linkageOutputFormat == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printBucket := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("%s:\n", label)
		for _, item := range items {
			fmt.Printf("  %s\n", item)
		}
	}
	printBucket("system", result.System)
	printBucket("homebrew", result.Homebrew)
	printBucket("public framework", result.PublicFramework)
	printBucket("other", result.Other)
	printBucket("errors", result.Errors)
	return nil
}
