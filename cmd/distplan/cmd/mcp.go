package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/itchyny/gojq"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/distmanifest"
	"github.com/distplan/distplan/internal/linkage"
)

// MCPCmd exposes distplan's own planning operations as MCP tools: a
// fixed set of tools rather than a discovered task list, since distplan
// doesn't run arbitrary tasks the way a Taskfile-backed server would.
var MCPCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP (Model Context Protocol) server",
	Long: `Starts an MCP server exposing distplan's plan, manifest query, and
linkage probe operations as tools, so an AI assistant can inspect a
workspace's release plan without shelling out to the CLI.

Examples:
  distplan mcp serve`,
}

var MCPServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	RunE:  runMCPServe,
}

func init() {
	MCPCmd.AddCommand(MCPServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	mcpServer := server.NewMCPServer(
		"distplan-mcp",
		version,
		server.WithToolCapabilities(false),
	)

	mcpServer.AddTool(planTool(), planToolHandler)
	mcpServer.AddTool(manifestQueryTool(), manifestQueryToolHandler)
	mcpServer.AddTool(linkageTool(), linkageToolHandler)

	return server.ServeStdio(mcpServer)
}

func planTool() mcp.Tool {
	return mcp.NewTool("plan",
		mcp.WithDescription("Plan releases for a workspace and return the dist-manifest.json"),
		mcp.WithString("dir", mcp.Description("workspace root directory (default .)")),
		mcp.WithString("tag", mcp.Description("announcement tag to plan; omit for an implicit dry-run")),
	)
}

func planToolHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	f := &planFlags{dir: ".", artifacts: "all", outputFormat: "json"}
	if v, ok := args["dir"].(string); ok && v != "" {
		f.dir = v
	}
	if v, ok := args["tag"].(string); ok {
		f.tagRaw = v
	}

	result, err := buildPlan(f, version)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := distmanifest.Marshal(result.manifest)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func manifestQueryTool() mcp.Tool {
	return mcp.NewTool("manifest_query",
		mcp.WithDescription("Run a jq expression over a dist-manifest.json file"),
		mcp.WithString("path", mcp.Required(), mcp.Description("path to dist-manifest.json")),
		mcp.WithString("expr", mcp.Required(), mcp.Description("jq expression")),
	)
}

func manifestQueryToolHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, _ := args["path"].(string)
	expr, _ := args["expr"].(string)

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %s: %v", path, err)), nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parsing manifest: %v", err)), nil
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid query: %v", err)), nil
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compiling query: %v", err)), nil
	}

	var results []any
	iter := code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if qerr, ok := v.(error); ok {
			return mcp.NewToolResultError(qerr.Error()), nil
		}
		results = append(results, v)
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func linkageTool() mcp.Tool {
	return mcp.NewTool("linkage_probe",
		mcp.WithDescription("Probe a built binary's dynamic library dependencies"),
		mcp.WithString("path", mcp.Required(), mcp.Description("path to the binary")),
	)
}

func linkageToolHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, _ := args["path"].(string)

	result := linkage.Probe(path)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
