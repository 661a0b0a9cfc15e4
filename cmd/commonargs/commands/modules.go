package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/commonargs/am"
	"github.com/teranos/commonargs/common"
	"github.com/teranos/commonargs/display"
)

// ModulesCmd lists the built-in modules
var ModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List built-in argument modules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := display.FormatFromCommand(cmd, am.DefaultFormat)
		if err != nil {
			return err
		}
		return display.Modules(cmd.OutOrStdout(), common.Describe(), format)
	},
}

func init() {
	ModulesCmd.Flags().StringP("format", "f", "", "Output format: json, yaml, toml, table, sh")
}
