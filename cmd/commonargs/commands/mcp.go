package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/logger"
	"github.com/teranos/commonargs/server"
	"github.com/teranos/commonargs/tables"
)

// McpCmd serves argument modules to MCP clients
var McpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve argument modules over the Model Context Protocol (stdio)",
	Long: `Start an MCP server on stdin/stdout exposing the tools
list_modules, argument_names and argument_declarations.

Additional tables given with --table are served next to the built-in
modules; a table whose module name matches a built-in one replaces it.

Example:
  commonargs mcp --table ./fortran.toml`,
	Args: cobra.NoArgs,
	RunE: runMcp,
}

var mcpTables []string

func init() {
	McpCmd.Flags().StringSliceVarP(&mcpTables, "table", "t", nil, "Extra table file paths or URLs (repeatable)")
}

func runMcp(cmd *cobra.Command, args []string) error {
	log := logger.ComponentLogger("tables")

	extra := make([]argdecl.Table, 0, len(mcpTables))
	for _, input := range mcpTables {
		src, err := tables.Resolve(contextOf(cmd), input, log)
		if err != nil {
			return err
		}
		table, err := tables.Load(src.Path)
		src.Close()
		if err != nil {
			return err
		}
		extra = append(extra, table)
	}

	logger.Infow("Starting MCP server", "tables", len(extra))
	return server.NewMCPServer(extra...).Serve()
}
