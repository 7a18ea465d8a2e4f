package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nodeboxhq/nodebox/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets MCP clients scaffold, import, and inspect nodebox projects
natively. Configure a client with:

  {
    "mcpServers": {
      "nodebox": { "command": "nodebox", "args": ["mcp"] }
    }
  }

Available tools: nodebox_list_projects, nodebox_create_project,
nodebox_import_repo, nodebox_classify_output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getCoordinator()
		if err != nil {
			return err
		}
		s, err := getStore()
		if err != nil {
			return err
		}

		srv := mcp.NewServer(s, c)
		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
