package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/commonargs/cmd/commonargs/commands"
	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
)

var rootCmd = &cobra.Command{
	Use:   "commonargs",
	Short: "commonargs - Common build-tool argument declarations",
	Long: `commonargs - Declarations of common build-tool arguments.

commonargs knows the arguments build tools commonly accept (CC, CFLAGS,
AR, prefix, bindir, ...) and projects each one onto a construction
environment key, a command-line variable and a command-line option.

Available commands:
  modules    - List built-in argument modules
  names      - List the argument names of a module
  declare    - Print argument declarations (optionally watching table files)
  resolve    - Resolve argument values from options, NAME=value variables and the environment
  help-vars  - Print help for every argument with its default and actual value
  am         - Manage commonargs configuration ("I am")
  mcp        - Serve modules over the Model Context Protocol (stdio)
  version    - Show version information

Examples:
  commonargs names -m cc --without flags
  commonargs declare -m gnudirs --var-prefix GNU_ --format json
  commonargs resolve -m cc --cc=clang CXX=clang++ --format sh
  commonargs declare --table ./fortran.toml --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.InitLogger(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as structured JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: nearest commonargs.toml)")

	rootCmd.AddCommand(commands.ModulesCmd)
	rootCmd.AddCommand(commands.NamesCmd)
	rootCmd.AddCommand(commands.DeclareCmd)
	rootCmd.AddCommand(commands.ResolveCmd)
	rootCmd.AddCommand(commands.HelpVarsCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.McpCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
