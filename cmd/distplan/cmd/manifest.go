package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/distmanifest"
)

// ManifestCmd is the parent command for operations on an existing
// dist-manifest.json, as opposed to planning a fresh one.
var ManifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect and merge dist-manifest.json files",
}

var manifestQueryRaw bool

// ManifestQueryCmd runs a jq expression over an existing manifest, an
// operator convenience for inspecting a plan without a second tool.
var ManifestQueryCmd = &cobra.Command{
	Use:   "query <expr> [manifest.json]",
	Short: "Run a jq expression over a manifest",
	Long: `Reads a dist-manifest.json (from a file argument or stdin) and
evaluates a jq expression against it.

Examples:
  distplan manifest query '.releases[].app_name' dist-manifest.json
  distplan manifest query -r '.dist_version' < dist-manifest.json
  distplan manifest query '.artifacts | keys'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runManifestQuery,
}

// ManifestMergeCmd merges several per-job manifests produced by parallel
// CI runners into one with distmanifest.Merge.
var ManifestMergeCmd = &cobra.Command{
	Use:   "merge <manifest.json>...",
	Short: "Merge per-job manifests into one",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runManifestMerge,
}

func init() {
	ManifestCmd.AddCommand(ManifestQueryCmd)
	ManifestCmd.AddCommand(ManifestMergeCmd)

	ManifestQueryCmd.Flags().BoolVarP(&manifestQueryRaw, "raw-output", "r", false, "output raw strings without quotes")
}

func runManifestQuery(cmd *cobra.Command, args []string) error {
	query, err := gojq.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("compiling query: %w", err)
	}

	var data []byte
	if len(args) > 1 {
		data, err = os.ReadFile(args[1])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing manifest json: %w", err)
	}

	iter := code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return err
		}
		if manifestQueryRaw {
			if s, ok := v.(string); ok {
				fmt.Println(s)
				continue
			}
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Println(string(out))
	}
	return nil
}

func runManifestMerge(cmd *cobra.Command, args []string) error {
	inputs := make([]distmanifest.Input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		m, err := distmanifest.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		inputs = append(inputs, distmanifest.Input{Manifest: m, SystemID: path})
	}

	merged, err := distmanifest.Merge(inputs)
	if err != nil {
		return fmt.Errorf("merging manifests: %w", err)
	}

	data, err := distmanifest.Marshal(merged)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
