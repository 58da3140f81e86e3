package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/distmanifest"
)

// ManifestSchemaCmd prints the schema version this build of distplan
// writes and reads, so CI can assert compatibility without parsing a
// manifest first.
var ManifestSchemaCmd = &cobra.Command{
	Use:   "manifest-schema",
	Short: "Print the dist-manifest schema version",
	RunE:  runManifestSchema,
}

func runManifestSchema(cmd *cobra.Command, args []string) error {
	data, err := json.MarshalIndent(map[string]string{
		"schema_version": distmanifest.SchemaVersion,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
