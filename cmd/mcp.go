package cmd

import (
	"github.com/huangsam/churnlens/internal/loader"
	"github.com/huangsam/churnlens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the churnlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to score customers and inspect the model via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep setup quiet in MCP mode to avoid polluting stdio
		// which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, loader.FileLoader{})
	},
}
