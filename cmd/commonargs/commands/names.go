package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/display"
)

var namesSel selection

// NamesCmd lists argument names of a module
var NamesCmd = &cobra.Command{
	Use:   "names",
	Short: "List the argument names of a module",
	Long: `List the argument names of a module, in table order, after family
switches and the name filter are applied.

Examples:
  commonargs names -m cc
  commonargs names -m cc --without progs
  commonargs names -m gnudirs -n prefix,bindir,mandir`,
	Args: cobra.NoArgs,
	RunE: runNames,
}

func init() {
	namesSel.register(NamesCmd.Flags())
}

func runNames(cmd *cobra.Command, args []string) error {
	cfg, lt, opts, err := prepare(cmd, &namesSel, cmd.Flags())
	if err != nil {
		return err
	}
	defer lt.Close()

	names, err := argdecl.Names(lt.table, opts)
	if err != nil {
		return err
	}

	format, err := display.FormatFromCommand(cmd, cfg.Format)
	if err != nil {
		return err
	}
	return display.Names(cmd.OutOrStdout(), names, format)
}
